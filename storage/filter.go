package storage

import (
	"github.com/dreitier/treelist/config"
	fs "github.com/dreitier/treelist/storage/fs"
	log "github.com/sirupsen/logrus"
)

// Filter drops entries whose top-level segment is excluded by paths and files smaller than minSize. A nil filter
// includes every path.
func Filter(entries []fs.Entry, paths *config.PathFilter, minSize uint64) []fs.Entry {
	if paths == nil && minSize == 0 {
		return entries
	}

	result := make([]fs.Entry, 0, len(entries))
	decisions := make(map[string]bool)
	var skippedBySize int

	for _, entry := range entries {
		topLevel := entry.TopLevel()

		included, known := decisions[topLevel]
		if !known {
			included = paths.IsIncluded(topLevel)
			decisions[topLevel] = included

			if !included {
				log.Debugf("Skipping path %s, because it is excluded", topLevel)
			}
		}

		if !included {
			continue
		}

		if !entry.IsDir && entry.Size < int64(minSize) {
			skippedBySize++
			continue
		}

		result = append(result, entry)
	}

	if skippedBySize > 0 {
		log.Debugf("Skipped %d files smaller than %d bytes", skippedBySize, minSize)
	}

	return result
}
