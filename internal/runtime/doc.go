// Package runtime provides the execution context for a shipit run.
//
// It bundles the dependencies a release needs, such as the logger, the
// resolved settings, the repository root and the git client.
package runtime
