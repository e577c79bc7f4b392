package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/pathexpr"
	"shipit.dev/shipit/internal/policy"
)

// Target is a file that receives the release version
type Target struct {
	// Name is the manifest key of the entry
	Name string
	// File is the path relative to the project root
	File string
	// VersionKeys are path expression templates, applied in order
	VersionKeys []string
	// Prefix writes the version with a leading "v"
	Prefix bool
	// CreateMissing creates absent object members instead of failing
	CreateMissing bool
}

// Path returns the absolute location of the target under root
func (t Target) Path(root string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(t.File, "/")))
}

// Manifest is the ordered list of release targets
type Manifest struct {
	Path    string
	Targets []Target
}

type manifestEntry struct {
	Dir           string   `yaml:"dir"`
	Prefix        bool     `yaml:"prefix"`
	VersionKeys   []string `yaml:"versionKeys"`
	CreateMissing bool     `yaml:"createMissing"`
}

// LoadManifest reads a release target manifest. The file may be YAML or JSON;
// entries are returned in the order they are declared.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, err)
	}

	targets, err := parseManifest(data)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, err)
	}
	return &Manifest{Path: path, Targets: targets}, nil
}

func parseManifest(data []byte) ([]Target, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("manifest is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest must be a mapping of target name to target")
	}

	targets := make([]Target, 0, len(root.Content)/2)
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if seen[name] {
			return nil, fmt.Errorf("target %q is declared twice", name)
		}
		seen[name] = true

		var entry manifestEntry
		if err := root.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("target %q: %w", name, err)
		}

		target := Target{
			Name:          name,
			File:          entry.Dir,
			VersionKeys:   entry.VersionKeys,
			Prefix:        entry.Prefix,
			CreateMissing: entry.CreateMissing,
		}
		if err := target.validate(); err != nil {
			return nil, fmt.Errorf("target %q: %w", name, err)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// validate checks that every version key expands and parses on every release branch
func (t Target) validate() error {
	if strings.TrimSpace(t.File) == "" {
		return fmt.Errorf("dir is required")
	}
	if len(t.VersionKeys) == 0 {
		return fmt.Errorf("versionKeys must list at least one path")
	}
	for _, key := range t.VersionKeys {
		for _, branch := range policy.Branches() {
			path, err := pathexpr.ParseTemplate(key, pathexpr.Vars{pathexpr.VarBranch: branch})
			if err != nil {
				return err
			}
			if len(path.Segments()) == 0 {
				return fmt.Errorf("version key %q selects the document root", key)
			}
		}
	}
	return nil
}
