package provider

import "strings"

// RemotePath returns the path part of `name:path`, or the whole remote if it has no colon
func RemotePath(remote string) string {
	if _, path, found := strings.Cut(remote, ":"); found {
		return path
	}

	return remote
}
