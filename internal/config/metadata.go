package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/document"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/pathexpr"
	"shipit.dev/shipit/internal/version"
)

// Defaults for locating the version declared in project metadata
const (
	DefaultMetadataFile = "package.json"
	DefaultMetadataKey  = "$.version"
)

// ReadMetadataVersion reads the version declared at key in the metadata file.
// It is the fallback when no usable release tag exists.
func ReadMetadataVersion(path, key string) (*semver.Version, error) {
	file, err := document.Load(path)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, err)
	}

	expr, err := pathexpr.Parse(key)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, err)
	}
	values, err := pathexpr.Get(file.Root, expr)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, err)
	}
	if len(values) != 1 {
		return nil, shipiterrors.NewConfigError(path, fmt.Errorf("%s matches %d values, expected one", key, len(values)))
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, shipiterrors.NewConfigError(path, fmt.Errorf("%s is not a string", key))
	}
	v, err := version.Parse(raw)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, fmt.Errorf("%s: invalid version %q: %w", key, raw, err))
	}
	return v, nil
}
