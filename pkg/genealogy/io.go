package genealogy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/evotree/pkg/errors"
)

// Supported tree file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatForPath infers the file format from the path's extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported tree file %q (want .json, .yaml or .yml)", path)
	}
}

// ReadFile loads and validates a tree from a JSON or YAML file.
func ReadFile(path string) (*Node, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Read decodes and validates a tree in the given format.
func Read(r io.Reader, format string) (*Node, error) {
	var root Node
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown tree format %q", format)
	}
	if err := Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Write encodes the tree rooted at n in the given format.
func Write(w io.Writer, n *Node, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(n)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown tree format %q", format)
	}
}

// Marshal is Write into a byte slice.
func Marshal(n *Node, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, n, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
