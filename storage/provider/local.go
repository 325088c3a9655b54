package provider

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	fs "github.com/dreitier/treelist/storage/fs"
	log "github.com/sirupsen/logrus"
)

// LocalClient lists a directory of the local filesystem in the same shape rclone does
type LocalClient struct {
}

func (c *LocalClient) List(ctx context.Context, remote string) ([]fs.Entry, error) {
	root := RemotePath(remote)

	if root == "" {
		root = "."
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var entries []fs.Entry

	err = scanDir(ctx, root, "", &entries)
	if err != nil {
		return nil, err
	}

	log.Debugf("Retrieved %d entries from %s", len(entries), root)

	return entries, nil
}

func scanDir(ctx context.Context, root string, subdirectoryPath string, entries *[]fs.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absoluteSubdirectoryPath := filepath.Join(root, filepath.FromSlash(subdirectoryPath))
	dirEntries, err := os.ReadDir(absoluteSubdirectoryPath)

	if err != nil {
		log.Errorf("Failed to scan directory %s, %v", absoluteSubdirectoryPath, err)
		return fmt.Errorf("failed to scan directory %s: %w", absoluteSubdirectoryPath, err)
	}

	for _, dirEntry := range dirEntries {
		relativePath := dirEntry.Name()

		if subdirectoryPath != "" {
			relativePath = subdirectoryPath + fs.Separator + dirEntry.Name()
		}

		fileInfo, err := dirEntry.Info()

		if err != nil {
			log.Errorf("Failed to get file info for %s, %v", relativePath, err)
			continue
		}

		// if current item is a directory, scanning it recursively
		if dirEntry.IsDir() {
			*entries = append(*entries, fs.Entry{
				Path:     relativePath,
				Name:     dirEntry.Name(),
				MimeType: "inode/directory",
				ModTime:  fileInfo.ModTime(),
				IsDir:    true,
			})

			if err := scanDir(ctx, root, relativePath, entries); err != nil {
				return err
			}

			continue
		}

		if !fileInfo.Mode().IsRegular() {
			log.Debugf("Skipping %s, because it is not a regular file", relativePath)
			continue
		}

		*entries = append(*entries, fs.Entry{
			Path:     relativePath,
			Name:     dirEntry.Name(),
			Size:     fileInfo.Size(),
			MimeType: mime.TypeByExtension(filepath.Ext(dirEntry.Name())),
			ModTime:  fileInfo.ModTime(),
		})
	}

	return nil
}
