package config

const (
	ProviderRclone = "rclone"
	ProviderLocal  = "local"
	ProviderS3     = "s3"
)

// Client configures the collaborator which lists the remote storage
type Client struct {
	Provider string

	// rclone
	Binary string
	Flags  []string

	// s3
	Region         string
	AccessKey      string
	SecretKey      string
	Endpoint       string
	ForcePathStyle bool
	Token          string
}
