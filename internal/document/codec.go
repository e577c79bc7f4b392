package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// Codec converts between file contents and a generic tree
type Codec interface {
	// Name identifies the format in diagnostics
	Name() string
	// Decode parses data into a tree
	Decode(data []byte) (any, error)
	// Encode renders a tree pretty-printed
	Encode(root any) ([]byte, error)
}

// CodecFor picks a codec from the file extension. JSON is the default.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	case ".toml":
		return TOMLCodec{}
	default:
		return JSONCodec{}
	}
}

// File is a decoded document together with where it came from
type File struct {
	Path  string
	Root  any
	codec Codec
	mode  os.FileMode
}

// Load reads and decodes the file at path
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, shipiterrors.NewDocumentError(path, "read", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shipiterrors.NewDocumentError(path, "read", err)
	}

	codec := CodecFor(path)
	root, err := codec.Decode(data)
	if err != nil {
		return nil, shipiterrors.NewDocumentError(path, "decode "+codec.Name(), err)
	}

	return &File{
		Path:  path,
		Root:  root,
		codec: codec,
		mode:  info.Mode().Perm(),
	}, nil
}

// Format returns the codec name of the file
func (f *File) Format() string {
	return f.codec.Name()
}

// Save encodes the tree and writes it back with the original permissions
func (f *File) Save() error {
	data, err := f.codec.Encode(f.Root)
	if err != nil {
		return shipiterrors.NewDocumentError(f.Path, "encode "+f.codec.Name(), err)
	}
	if err := os.WriteFile(f.Path, data, f.mode); err != nil {
		return shipiterrors.NewDocumentError(f.Path, "write", err)
	}
	return nil
}

// numberValue converts a json.Number into int64 when integral, float64 otherwise
func numberValue(n json.Number) (any, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", n, err)
	}
	return f, nil
}
