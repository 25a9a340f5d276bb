package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// Format is the encoding of a config file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the file extension; unknown extensions
// are sniffed: a document starting with '{' is JSON, anything else YAML.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// ParseBytes decodes a config document. YAML is converted to JSON first so
// both formats go through the same strict decoder: unknown keys and
// trailing documents are errors.
func ParseBytes(name string, data []byte) (*Config, error) {
	format := DetectFormat(name, data)
	if format == FormatYAML {
		j, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = j
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s config: %w", format, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid config: trailing data")
		}
		return nil, fmt.Errorf("%s config: %w", format, err)
	}
	return &cfg, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml config: %w", err)
	}
	if v == nil {
		// empty document
		return []byte("{}"), nil
	}
	j, err := json.Marshal(jsonCompatible(v))
	if err != nil {
		return nil, fmt.Errorf("yaml config: %w", err)
	}
	return j, nil
}

// jsonCompatible rewrites non-string map keys, which encoding/json rejects.
func jsonCompatible(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = jsonCompatible(v)
		}
		return m
	case map[string]any:
		for k, v := range x {
			x[k] = jsonCompatible(v)
		}
		return x
	case []any:
		for i := range x {
			x[i] = jsonCompatible(x[i])
		}
		return x
	default:
		return in
	}
}
