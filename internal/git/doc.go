// Package git provides the Git operations a release needs.
//
// Reads (current branch, tags) go through go-git. Mutations (fetch, pull,
// commit, tag, push, checkout) shell out to the git binary through
// CommandRunner so that hooks, credentials and signing behave exactly as
// they do for the user.
//
// This package should be the only place where git commands are executed.
package git
