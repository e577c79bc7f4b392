// Package config loads what a release is driven by.
//
// It handles:
//   - The release manifest listing version targets
//   - The project metadata file holding the fallback version
//   - Optional shipit settings files, environment overrides and flag bindings
package config
