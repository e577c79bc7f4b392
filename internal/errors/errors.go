// Package errors provides sentinel errors and custom error types for the shipit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each failure class
var (
	// ErrConfig indicates a missing flag or an unreadable/invalid manifest, metadata or settings file
	ErrConfig = errors.New("configuration error")

	// ErrInvalidBranch indicates that the current branch has no release policy
	ErrInvalidBranch = errors.New("invalid branch")

	// ErrGit indicates that a version-control command failed
	ErrGit = errors.New("git command failed")

	// ErrPathNotFound indicates that a path expression matched nothing in a document
	ErrPathNotFound = errors.New("path not found")

	// ErrDocument indicates that a target document could not be read, decoded or written
	ErrDocument = errors.New("document error")

	// ErrInvalidBump indicates a manual bump outside patch, minor and major
	ErrInvalidBump = errors.New("invalid bump")

	// ErrNonMonotonicVersion indicates that a computed version is not greater than its predecessor
	ErrNonMonotonicVersion = errors.New("next version is not greater than current version")

	// ErrVersionOverflow indicates that a version component cannot be incremented any further
	ErrVersionOverflow = errors.New("version component overflow")

	// ErrDeclined indicates that the user declined the release. It is not a failure.
	ErrDeclined = errors.New("release declined")
)

// Exit codes returned by the CLI for each failure class
const (
	ExitOK         = 0
	ExitUnexpected = 1
	ExitConfig     = 2
	ExitPolicy     = 3
	ExitGit        = 4
	ExitData       = 5
)

// ConfigError represents a configuration problem detected before any mutation
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid configuration: %s", e.Source)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Source, e.Err)
}

// Is returns true if the target error is ErrConfig
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(source string, err error) *ConfigError {
	return &ConfigError{Source: source, Err: err}
}

// InvalidBranchError represents an error when the current branch is outside the release policy
type InvalidBranchError struct {
	BranchName string
	Allowed    []string
	Suggestion string
}

func (e *InvalidBranchError) Error() string {
	msg := fmt.Sprintf("branch %s is not allowed (expected one of %s)", e.BranchName, strings.Join(e.Allowed, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %s?", e.Suggestion)
	}
	return msg
}

// Is returns true if the target error is ErrInvalidBranch
func (e *InvalidBranchError) Is(target error) bool {
	return target == ErrInvalidBranch
}

// NewInvalidBranchError creates a new InvalidBranchError
func NewInvalidBranchError(branchName string, allowed []string, suggestion string) *InvalidBranchError {
	return &InvalidBranchError{
		BranchName: branchName,
		Allowed:    allowed,
		Suggestion: suggestion,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrGit
func (e *GitCommandError) Is(target error) bool {
	return target == ErrGit
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// PathNotFoundError represents a path expression that matched nothing in a document
type PathNotFoundError struct {
	File       string
	Expression string
	Segment    string
}

func (e *PathNotFoundError) Error() string {
	msg := fmt.Sprintf("path %s not found", e.Expression)
	if e.Segment != "" {
		msg += fmt.Sprintf(" (no match for %s)", e.Segment)
	}
	if e.File != "" {
		msg += fmt.Sprintf(" in %s", e.File)
	}
	return msg
}

// Is returns true if the target error is ErrPathNotFound
func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// NewPathNotFoundError creates a new PathNotFoundError
func NewPathNotFoundError(expression, segment string) *PathNotFoundError {
	return &PathNotFoundError{Expression: expression, Segment: segment}
}

// DocumentError represents a failure reading, decoding, encoding or writing a target file
type DocumentError struct {
	File string
	Op   string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.File, e.Err)
}

// Is returns true if the target error is ErrDocument
func (e *DocumentError) Is(target error) bool {
	return target == ErrDocument
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError
func NewDocumentError(file, op string, err error) *DocumentError {
	return &DocumentError{File: file, Op: op, Err: err}
}

// StepError records the release stage in which an error happened
type StepError struct {
	Stage string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(stage string, err error) *StepError {
	return &StepError{Stage: stage, Err: err}
}

// IsDeclined reports whether err is a benign stop caused by the user declining the release
func IsDeclined(err error) bool {
	return errors.Is(err, ErrDeclined)
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrDeclined):
		return ExitOK
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrInvalidBranch):
		return ExitPolicy
	case errors.Is(err, ErrGit):
		return ExitGit
	case errors.Is(err, ErrPathNotFound), errors.Is(err, ErrDocument), errors.Is(err, ErrVersionOverflow):
		return ExitData
	default:
		return ExitUnexpected
	}
}
