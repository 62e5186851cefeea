package templateconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Download filenames.
const (
	JSONFilename = "email-config.json"
	YAMLFilename = "email-config.yaml"
)

// Filename returns the download filename for f.
func (f Format) Filename() string {
	if f == FormatYAML {
		return YAMLFilename
	}
	return JSONFilename
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromFilename picks the format from a file extension, defaulting to JSON.
func FormatFromFilename(name string) Format {
	f, err := ParseFormat(filepath.Ext(name))
	if err != nil {
		return FormatJSON
	}
	return f
}

// Encode serializes cfg.
func Encode(cfg TemplateConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode parses a possibly partial config. Unknown top-level keys are
// ignored; syntax and type errors yield ErrMalformedConfig. Values are kept
// verbatim; Merge validates them with the same rules as Store.Set.
func Decode(data []byte, format Format) (TemplateConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return TemplateConfig{}, fmt.Errorf("%w: empty file", ErrMalformedConfig)
	}

	var cfg TemplateConfig
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return TemplateConfig{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return TemplateConfig{}, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	return cfg, nil
}
