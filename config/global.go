package config

import (
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTemplate   = "template.html"
	DefaultHtmlOutput = "treelist.html"
	DefaultUnit       = "bytes"
	DefaultDepth      = 1
)

type GlobalConfiguration struct {
	logLevel    log.Level
	hasLogLevel bool
	template    string
	htmlOutput  string
	unit        string
	depth       int
	minSize     uint64
}

func (config *GlobalConfiguration) LogLevel() log.Level {
	return config.logLevel
}

// HasLogLevel reports whether the configuration file has set `log_level`
func (config *GlobalConfiguration) HasLogLevel() bool {
	return config.hasLogLevel
}

func (config *GlobalConfiguration) Template() string {
	return config.template
}

func (config *GlobalConfiguration) HtmlOutput() string {
	return config.htmlOutput
}

func (config *GlobalConfiguration) Unit() string {
	return config.unit
}

func (config *GlobalConfiguration) Depth() int {
	return config.depth
}

// MinSize is the size in bytes below which files are left out of every report
func (config *GlobalConfiguration) MinSize() uint64 {
	return config.minSize
}
