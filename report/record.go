package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fs "github.com/dreitier/treelist/storage/fs"
	"gopkg.in/yaml.v3"
)

var ErrMissingFiles = errors.New("report is missing 'files' key; generate it with --generate-tree")

// AggregateRecord is the persisted outcome of a depth aggregation
type AggregateRecord struct {
	Remote      string `json:"remote" yaml:"remote"`
	Unit        string `json:"unit" yaml:"unit"`
	Directories Groups `json:"directories" yaml:"directories"`
}

// TreeRecord is the persisted raw listing, used to render the tree
type TreeRecord struct {
	Remote string     `json:"remote" yaml:"remote"`
	Unit   string     `json:"unit" yaml:"unit"`
	Files  []fs.Entry `json:"files" yaml:"files"`
}

// storedTreeRecord differs from TreeRecord only in being able to tell a missing `files` key from an empty one
type storedTreeRecord struct {
	Remote string      `json:"remote" yaml:"remote"`
	Unit   string      `json:"unit" yaml:"unit"`
	Files  *[]fs.Entry `json:"files" yaml:"files"`
}

// RemoteName returns the part of the remote path in front of the first colon
func RemoteName(remote string) string {
	name, _, _ := strings.Cut(remote, ":")
	return name
}

func isYaml(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}

	return false
}

// Encode serializes a record as YAML for .yaml/.yml paths and as JSON indented by four spaces otherwise
func Encode(path string, record interface{}) ([]byte, error) {
	if isYaml(path) {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(4)

		if err := encoder.Encode(record); err != nil {
			return nil, err
		}

		if err := encoder.Close(); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// Save writes the record to path. The file is either written completely or left untouched.
func Save(path string, record interface{}) error {
	data, err := Encode(path, record)
	if err != nil {
		return fmt.Errorf("failed to encode report for %s: %w", path, err)
	}

	return fs.WriteFileAtomic(path, data)
}

// LoadTree reads a tree record written by Save
func LoadTree(path string) (*TreeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	stored := &storedTreeRecord{}

	if isYaml(path) {
		err = yaml.Unmarshal(data, stored)
	} else {
		err = json.Unmarshal(data, stored)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}

	if stored.Files == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingFiles)
	}

	return &TreeRecord{Remote: stored.Remote, Unit: stored.Unit, Files: *stored.Files}, nil
}
