package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/pagemarks/pkg/errors"
)

// Format identifies a scene encoding.
type Format string

// Supported scene encodings.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath derives the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := perrors.ValidateScenePath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Decode parses a scene in the given format without validating it.
func Decode(r io.Reader, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode json scene")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode toml scene")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode yaml scene")
		}
	default:
		return nil, perrors.New(perrors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	return &s, nil
}

// Encode writes s in the given format.
func Encode(w io.Writer, s *Scene, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(s)
	}
	return perrors.New(perrors.ErrCodeUnsupported, "unsupported scene format %q", format)
}
