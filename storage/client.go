package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreitier/treelist/config"
	fs "github.com/dreitier/treelist/storage/fs"
	"github.com/dreitier/treelist/storage/provider"
)

var ErrUnknownProvider = errors.New("unknown provider")

// Client lists every file and directory below a remote path in a single call
type Client interface {
	List(ctx context.Context, remote string) ([]fs.Entry, error)
}

func NewClient(cfg *config.Client) (Client, error) {
	switch cfg.Provider {
	case "", config.ProviderRclone:
		return &provider.RcloneClient{
			Binary: cfg.Binary,
			Flags:  cfg.Flags,
		}, nil
	case config.ProviderLocal:
		return &provider.LocalClient{}, nil
	case config.ProviderS3:
		return &provider.S3Client{
			Region:         cfg.Region,
			AccessKey:      cfg.AccessKey,
			SecretKey:      cfg.SecretKey,
			Endpoint:       cfg.Endpoint,
			ForcePathStyle: cfg.ForcePathStyle,
			Token:          cfg.Token,
		}, nil
	}

	return nil, fmt.Errorf("%w %#q, expected one of rclone, local, s3", ErrUnknownProvider, cfg.Provider)
}
