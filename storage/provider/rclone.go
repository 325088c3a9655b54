package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	fs "github.com/dreitier/treelist/storage/fs"
	log "github.com/sirupsen/logrus"
)

const DefaultRcloneBinary = "rclone"

// RcloneClient lists a remote by running `rclone lsjson --recursive`
type RcloneClient struct {
	Binary string
	// additional arguments, appended after --recursive
	Flags []string
}

func (c *RcloneClient) binary() string {
	if c.Binary == "" {
		return DefaultRcloneBinary
	}

	return c.Binary
}

func (c *RcloneClient) List(ctx context.Context, remote string) ([]fs.Entry, error) {
	args := append([]string{"lsjson", remote, "--recursive"}, c.Flags...)

	cmd := exec.CommandContext(ctx, c.binary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("Running %s %s", c.binary(), strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())

		if message == "" {
			message = err.Error()
		}

		return nil, fmt.Errorf("rclone failed to list %s: %s", remote, message)
	}

	var entries []fs.Entry

	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode rclone output for %s: %w", remote, err)
	}

	for i := range entries {
		// rclone reports -1 if a backend cannot tell the size
		if entries[i].Size < 0 {
			log.Debugf("Size of %s is unknown, counting it as 0", entries[i].Path)
			entries[i].Size = 0
		}
	}

	log.Debugf("Retrieved %d entries from %s", len(entries), remote)

	return entries, nil
}
