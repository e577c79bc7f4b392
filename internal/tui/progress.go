package tui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"

	"shipit.dev/shipit/internal/release"
)

// Progress renders release stages. On a terminal the running stage is shown
// with a spinner; finished stages are always printed as one line each.
type Progress struct {
	splog   *Splog
	spinner *spinner.Spinner
}

// NewProgress creates a progress reporter. The spinner is only used when interactive.
func NewProgress(splog *Splog, interactive bool) *Progress {
	p := &Progress{splog: splog}
	if interactive {
		p.spinner = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(splog.Writer()))
		_ = p.spinner.Color("cyan")
	}
	return p
}

// Report implements release.Reporter
func (p *Progress) Report(stage release.Stage, status release.Status, detail string) {
	if status == release.StatusRunning {
		if p.spinner != nil {
			p.spinner.Suffix = " " + stage.Description() + "..."
			p.spinner.Start()
		} else {
			p.splog.Debug("%s...", stage.Description())
		}
		return
	}

	p.Stop()
	if status == release.StatusSkipped && (detail == release.DetailDeclined || stage == release.StageAborted) {
		// a decline ends the run without further output
		p.splog.Debug("%s: %s", stage.Description(), release.DetailDeclined)
		return
	}
	if line := FormatStatusLine(stage, status, detail); line != "" {
		p.splog.Info(line)
	}
}

// Stop halts the spinner if it is running
func (p *Progress) Stop() {
	if p.spinner != nil && p.spinner.Active() {
		p.spinner.Stop()
	}
}

// FormatStatusLine renders the line printed when a stage finishes
func FormatStatusLine(stage release.Stage, status release.Status, detail string) string {
	switch stage {
	case release.StageDone:
		return fmt.Sprintf("🚀 %s %s", stage.Description(), Bold(detail))
	case release.StageAborted:
		return ""
	}

	var glyph string
	switch status {
	case release.StatusDone:
		glyph = ColorGreen("✓")
	case release.StatusSkipped:
		glyph = ColorYellow("↷")
	case release.StatusFailed:
		glyph = ColorRed("✗")
	default:
		glyph = " "
	}

	line := glyph + " " + stage.Description()
	if detail != "" {
		line += " " + ColorDim(detail)
	}
	return line
}

// Info stops the spinner and logs an info message
func (p *Progress) Info(format string, args ...interface{}) {
	p.Stop()
	p.splog.Info(format, args...)
}

// Warn stops the spinner and logs a warning
func (p *Progress) Warn(format string, args ...interface{}) {
	p.Stop()
	p.splog.Warn(format, args...)
}

// Debug logs a debug message without interrupting the spinner
func (p *Progress) Debug(format string, args ...interface{}) {
	p.splog.Debug(format, args...)
}
