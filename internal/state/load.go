package state

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/conn-castle/imctl/internal/messages"
)

// ErrValidation is a sentinel that wraps desired-state validation failures
// so callers can tell them apart from read or syntax errors with
// errors.Is(err, ErrValidation).
var ErrValidation = errors.New("desired-state validation failed")

const (
	// LocalFile is the state file looked for in the working directory.
	LocalFile = "imctl.toml"
	// SystemFile is the host-wide fallback location.
	SystemFile = "/etc/imctl/imctl.toml"
)

// Find resolves the desired-state file path: the --file flag when given,
// then ./imctl.toml, then /etc/imctl/imctl.toml.
func Find(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	for _, p := range []string{LocalFile, SystemFile} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.New(messages.StateMissing)
}

// Load reads and validates the desired-state file at path. The format is
// chosen by extension: .toml, .yaml, or .yml.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.StateReadFmt, path, err)
	}
	return Parse(data, path)
}

// LoadLenient reads the desired-state file without validation.
func LoadLenient(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.StateReadFmt, path, err)
	}
	return ParseLenient(data, path)
}

// Parse parses and validates desired-state data. source is the file path,
// used for format detection and error messages.
func Parse(data []byte, source string) (*Document, error) {
	doc, err := ParseLenient(data, source)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict(data, source); err != nil {
		return nil, fmt.Errorf(messages.StateUnknownKeysFmt, ErrValidation, source, err)
	}
	if err := doc.Validate(source); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseLenient parses desired-state data without validation. It fails only
// on syntax errors, so repair tools (doctor, add) can read partially valid
// files.
func ParseLenient(data []byte, source string) (*Document, error) {
	var doc Document
	switch {
	case isYAML(source):
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf(messages.StateDecodeFmt, source, err)
		}
	case isTOML(source):
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf(messages.StateDecodeFmt, source, err)
		}
	default:
		return nil, fmt.Errorf(messages.StateUnsupportedExtFmt, filepath.Ext(source))
	}
	return &doc, nil
}

// decodeStrict re-decodes the data with unknown-field rejection. This
// catches keys the lenient pass silently ignores (typos like "verison").
func decodeStrict(data []byte, source string) error {
	var doc Document
	if isYAML(source) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(&doc)
}

func isYAML(source string) bool {
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".yaml" || ext == ".yml"
}

func isTOML(source string) bool {
	return strings.ToLower(filepath.Ext(source)) == ".toml"
}
