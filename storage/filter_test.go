package storage

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/dreitier/treelist/config"
	fs "github.com/dreitier/treelist/storage/fs"
	"github.com/stretchr/testify/assert"
)

func filterEntries() []fs.Entry {
	return []fs.Entry{
		{Path: "photos", IsDir: true},
		{Path: "photos/a.jpg", Size: 2048},
		{Path: "photos/tiny.jpg", Size: 10},
		{Path: "tmp/cache.bin", Size: 4096},
		{Path: "backup-2023/db.sql", Size: 1024},
	}
}

func paths(entries []fs.Entry) []string {
	var result []string

	for _, entry := range entries {
		result = append(result, entry.Path)
	}

	return result
}

func Test_Filter_withoutFilterKeepsEverything(t *testing.T) {
	assertion := assert.New(t)

	entries := filterEntries()
	sut := Filter(entries, nil, 0)

	assertion.Equal(entries, sut)
}

func Test_Filter_appliesPathPolicies(t *testing.T) {
	assertion := assert.New(t)

	raw, err := config.ParseFromString(`
exclude:
  - tmp
  - /^backup-/
`)
	assertion.NoError(err)

	sut := Filter(filterEntries(), config.ParsePathsSection(raw), 0)

	assertion.Equal([]string{"photos", "photos/a.jpg", "photos/tiny.jpg"}, paths(sut), spew.Sdump(sut))
}

func Test_Filter_dropsSmallFilesButKeepsDirectories(t *testing.T) {
	assertion := assert.New(t)

	sut := Filter(filterEntries(), nil, 1024)

	assertion.Equal([]string{"photos", "photos/a.jpg", "tmp/cache.bin", "backup-2023/db.sql"}, paths(sut), spew.Sdump(sut))
}
