package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Read reads a scene from the given file, substituting ${VAR} references from the environment first.
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a scene from the given reader and specifies where, if applicable, the file the
// reader originated from. The path's extension selects the format. The scene is validated.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if isYAML(originalPath) {
		if data, err = yamlToJSON(data); err != nil {
			return nil, errors.Wrap(err, "failed to decode Config from yaml")
		}
	}

	cfg := Config{ConfigFilePath: originalPath}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to validate Config")
	}
	return &cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON re-encodes a YAML document as JSON so that both formats share one set of decoders.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}
