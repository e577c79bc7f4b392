package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/version"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via SHIPIT_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (SHIPIT_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled
func checkInteractiveAllowed() error {
	if os.Getenv("SHIPIT_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// SurveyPrompter asks release questions on the terminal
type SurveyPrompter struct {
	// Before runs ahead of every question, e.g. to stop a spinner
	Before func()
	opts   []survey.AskOpt
}

// NewSurveyPrompter creates a prompter. opts are passed to every survey.AskOne call.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// Confirm asks a yes/no question, defaulting to no. Ctrl+C answers no.
func (p *SurveyPrompter) Confirm(question string) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	p.before()
	var answer bool
	prompt := &survey.Confirm{
		Message: question,
		Default: false,
	}
	if err := survey.AskOne(prompt, &answer, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return answer, nil
}

// SelectBump asks which version component opens the new train. Ctrl+C
// declines the release.
func (p *SurveyPrompter) SelectBump(defaultBump version.Bump) (version.Bump, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	options := make([]string, 0, len(version.Bumps()))
	for _, b := range version.Bumps() {
		options = append(options, string(b))
	}

	p.before()
	var selected string
	prompt := &survey.Select{
		Message: "Which version should the new alpha train start from?",
		Options: options,
		Default: string(defaultBump),
	}
	if err := survey.AskOne(prompt, &selected, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", shipiterrors.ErrDeclined
		}
		return "", fmt.Errorf("bump prompt failed: %w", err)
	}
	return version.ParseBump(selected)
}

func (p *SurveyPrompter) before() {
	if p.Before != nil {
		p.Before()
	}
}
