package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

type configuration struct {
	global *GlobalConfiguration
	client *Client
	paths  *PathFilter
	source string
}

var (
	configSearchDirectories []string
)

const (
	CfgFileName = "treelist.yaml"
	PathLocal   = "."
	PathGlobal  = "/etc/treelist"
)

func init() {
	configSearchDirectories = append(configSearchDirectories, PathLocal)

	userHome, err := os.UserHomeDir()

	if err == nil {
		userHome = fmt.Sprintf("%s%c%s", userHome, os.PathSeparator, ".treelist")
		configSearchDirectories = append(configSearchDirectories, userHome)
	}

	configSearchDirectories = append(configSearchDirectories, PathGlobal)
}

func (c *configuration) Global() *GlobalConfiguration {
	return c.global
}

func (c *configuration) Client() *Client {
	return c.client
}

func (c *configuration) Paths() *PathFilter {
	return c.paths
}

// Source is the path of the parsed configuration file or "" if built-in defaults are used
func (c *configuration) Source() string {
	return c.source
}

// Load parses the configuration file at explicitPath. Without an explicit path the search directories are checked
// and, if none of them contains a configuration file, the built-in defaults are used.
func Load(explicitPath string) (*configuration, error) {
	var file *os.File = nil
	var err error = nil

	if explicitPath != "" {
		file, err = os.Open(explicitPath)

		if err != nil {
			return nil, fmt.Errorf("could not open configuration file: %w", err)
		}
	} else {
		for _, directory := range configSearchDirectories {
			var possibleConfigPath = filepath.Join(directory, CfgFileName)
			log.Debugf("Checking for configuration file at %s", possibleConfigPath)

			file, err = os.Open(possibleConfigPath)

			if err == nil {
				break
			}
		}
	}

	if file == nil {
		log.Debugf("No configuration file found, using defaults")
		return NewConfigurationInstance(nil), nil
	}

	defer file.Close()
	log.Infof("Found configuration file at location %s", file.Name())

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", file.Name(), err)
	}

	instance := NewConfigurationInstance(cfg)
	instance.source = file.Name()

	return instance, nil
}

// NewConfigurationInstance builds the configuration from an already parsed document; nil yields the defaults
func NewConfigurationInstance(cfg Raw) *configuration {
	return &configuration{
		global: parseGlobal(cfg),
		client: parseClient(cfg),
		paths:  ParsePathsSection(cfg.Sub("paths")),
	}
}

func parseGlobal(cfg Raw) *GlobalConfiguration {
	logLevel := log.InfoLevel
	hasLogLevel := false
	if cfg.Has("log_level") {
		parsedLevel, err := log.ParseLevel(cfg.String("log_level"))
		if err == nil {
			logLevel = parsedLevel
			hasLogLevel = true
		} else {
			log.Warnf("Cannot parse log level, defaulting to 'info': %s", err)
		}
	}

	template := DefaultTemplate
	if cfg.Has("template") {
		template = cfg.String("template")
	}

	htmlOutput := DefaultHtmlOutput
	if cfg.Has("html_output") {
		htmlOutput = cfg.String("html_output")
	}

	unit := DefaultUnit
	if cfg.Has("unit") {
		unit = strings.ToLower(cfg.String("unit"))
	}

	depth := DefaultDepth
	if cfg.Has("depth") {
		depth = int(cfg.Int64("depth"))
	}

	if depth < 0 {
		log.Warnf("Depth must not be negative, defaulting to %d.", DefaultDepth)
		depth = DefaultDepth
	}

	var minSize uint64
	if cfg.Has("min_size") {
		minSize = cfg.Bytes("min_size")
	}

	return &GlobalConfiguration{
		logLevel:    logLevel,
		hasLogLevel: hasLogLevel,
		template:    template,
		htmlOutput:  htmlOutput,
		unit:        unit,
		depth:       depth,
		minSize:     minSize,
	}
}

func parseClient(cfg Raw) *Client {
	const paramRegion = "region"
	const paramForcePathStyle = "force_path_style"
	const paramAccessKeyId = "access_key_id"
	const paramSecretAccessKey = "secret_access_key"
	const paramEndpoint = "endpoint"
	const paramToken = "token"

	c := &Client{
		Provider: ProviderRclone,
		Binary:   "rclone",
		Region:   "eu-central-1",
	}

	if cfg.Has("provider") {
		c.Provider = strings.ToLower(cfg.String("provider"))
	}

	if rclone := cfg.Sub("rclone"); rclone != nil {
		if rclone.Has("binary") {
			c.Binary = rclone.String("binary")
		}

		c.Flags = rclone.StringSlice("flags")
	}

	if s3 := cfg.Sub("s3"); s3 != nil {
		if s3.Has(paramRegion) {
			c.Region = s3.String(paramRegion)
		}

		c.ForcePathStyle = s3.Bool(paramForcePathStyle)
		c.AccessKey = s3.String(paramAccessKeyId)
		c.SecretKey = s3.String(paramSecretAccessKey)
		c.Endpoint = s3.String(paramEndpoint)
		c.Token = s3.String(paramToken)
	}

	return c
}
