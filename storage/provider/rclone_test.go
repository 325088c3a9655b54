package provider

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeRclone writes a shell script which stands in for the rclone binary
func fakeRclone(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake rclone binary requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "rclone")
	assert.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))

	return path
}

func Test_RcloneClient_List_decodesOutput(t *testing.T) {
	assertion := assert.New(t)

	binary := fakeRclone(t, `cat <<'EOF'
[
{"Path":"a/b","Name":"b","Size":-1,"MimeType":"inode/directory","ModTime":"2024-01-02T03:04:05Z","IsDir":true},
{"Path":"a/b/f1.txt","Name":"f1.txt","Size":100,"MimeType":"text/plain","ModTime":"2024-01-02T03:04:05.123456789Z","IsDir":false},
{"Path":"a/c/f2.txt","Name":"f2.txt","Size":50,"IsDir":false},
{"Path":"unknown.bin","Name":"unknown.bin","Size":-1,"IsDir":false}
]
EOF
`)

	sut := &RcloneClient{Binary: binary}
	entries, err := sut.List(context.Background(), "remote:path")

	assertion.NoError(err)
	assertion.Len(entries, 4)
	assertion.Equal("a/b", entries[0].Path)
	assertion.True(entries[0].IsDir)
	assertion.Equal(int64(0), entries[0].Size)
	assertion.Equal(int64(100), entries[1].Size)
	assertion.Equal("text/plain", entries[1].MimeType)
	assertion.Equal(2024, entries[1].ModTime.Year())
	assertion.False(entries[2].IsDir)
	assertion.Equal(int64(0), entries[3].Size)
}

func Test_RcloneClient_List_passesArguments(t *testing.T) {
	assertion := assert.New(t)

	argsFile := filepath.Join(t.TempDir(), "args")
	binary := fakeRclone(t, `echo "$@" > `+argsFile+`
echo '[]'
`)

	sut := &RcloneClient{Binary: binary, Flags: []string{"--fast-list", "--max-depth", "3"}}
	entries, err := sut.List(context.Background(), "gdrive:photos")

	assertion.NoError(err)
	assertion.Empty(entries)

	args, err := os.ReadFile(argsFile)
	assertion.NoError(err)
	assertion.Equal("lsjson gdrive:photos --recursive --fast-list --max-depth 3\n", string(args))
}

func Test_RcloneClient_List_reportsStderrOnFailure(t *testing.T) {
	assertion := assert.New(t)

	binary := fakeRclone(t, `echo 'Failed to create file system for "nope:": didn'"'"'t find section in config file' >&2
exit 1
`)

	sut := &RcloneClient{Binary: binary}
	entries, err := sut.List(context.Background(), "nope:")

	assertion.Nil(entries)
	assertion.ErrorContains(err, "rclone failed to list nope:")
	assertion.ErrorContains(err, "didn't find section in config file")
}

func Test_RcloneClient_List_invalidJson(t *testing.T) {
	assertion := assert.New(t)

	binary := fakeRclone(t, `echo 'not json'
`)

	sut := &RcloneClient{Binary: binary}
	_, err := sut.List(context.Background(), "remote:")

	assertion.ErrorContains(err, "failed to decode rclone output")
}

func Test_RcloneClient_List_missingBinary(t *testing.T) {
	assertion := assert.New(t)

	sut := &RcloneClient{Binary: filepath.Join(t.TempDir(), "does-not-exist")}
	_, err := sut.List(context.Background(), "remote:")

	assertion.ErrorContains(err, "rclone failed to list remote:")
}

func Test_RcloneClient_binary_defaultsToRclone(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal(DefaultRcloneBinary, (&RcloneClient{}).binary())
	assertion.Equal("/opt/rclone", (&RcloneClient{Binary: "/opt/rclone"}).binary())
}
