package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/release"
	"shipit.dev/shipit/internal/runtime"
	"shipit.dev/shipit/internal/tui"
	"shipit.dev/shipit/internal/version"
)

type rootOptions struct {
	root        string
	configPath  string
	metadata    string
	metadataKey string
	remote      string
	bump        string
	yes         bool
	verbose     bool
	quiet       bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(buildVersion, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "shipit --root <path> --config <path>",
		Short: "Version, tag and push a release from develop, stage or master",
		Long: `shipit reads the current version from the release tags, computes the next one
from the branch you are on, writes it into every file listed in the release
manifest and then commits, tags and pushes.

  develop  opens or continues an alpha train   (2.0.0 -> 2.0.1-alpha.0)
  stage    continues a beta train              (2.0.0-beta.1 -> 2.0.0-beta.2)
  master   releases a patch                    (2.0.0 -> 2.0.1)`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", buildVersion, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRelease(cmd, opts)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return shipiterrors.NewConfigError("flags", err)
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", "", "Project root containing the release targets (required)")
	flags.StringVar(&opts.configPath, "config", "", "Release manifest, YAML or JSON (required)")
	flags.StringVar(&opts.metadata, "metadata", config.DefaultMetadataFile, "Project metadata file holding the fallback version, relative to root")
	flags.StringVar(&opts.metadataKey, "metadata-key", config.DefaultMetadataKey, "Path expression of the version in the metadata file")
	flags.StringVar(&opts.remote, "remote", "origin", "Remote to sync with and push to")
	flags.StringVar(&opts.bump, "bump", "", "Bump used when develop opens a new train: patch, minor or major")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print debug output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Only print errors and prompts")

	_ = cmd.RegisterFlagCompletionFunc("bump", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		bumps := make([]string, 0, len(version.Bumps()))
		for _, b := range version.Bumps() {
			bumps = append(bumps, string(b))
		}
		return bumps, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// NormalizeRoot strips trailing slashes, keeping a bare "/" intact
func NormalizeRoot(root string) string {
	trimmed := strings.TrimRight(root, "/")
	if trimmed == "" && strings.HasPrefix(root, "/") {
		return "/"
	}
	return trimmed
}

func runRelease(cmd *cobra.Command, opts *rootOptions) (err error) {
	root := NormalizeRoot(opts.root)
	if root == "" {
		return shipiterrors.NewConfigError("--root", errors.New("flag is required"))
	}
	if opts.configPath == "" {
		return shipiterrors.NewConfigError("--config", errors.New("flag is required"))
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return shipiterrors.NewConfigError("--root", err)
	}

	v := config.NewSettingsViper(root)
	bindings := map[string]string{
		"remote":       "remote",
		"metadata":     "metadata",
		"metadata_key": "metadata-key",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return shipiterrors.NewConfigError("--"+flag, err)
		}
	}
	settings, err := config.LoadSettings(v)
	if err != nil {
		return err
	}

	splog, logErr := tui.NewSplogWithConfig(tui.GetLogFilePath(settings.LogFile), opts.verbose)
	if logErr != nil {
		splog = tui.NewSplog()
		splog.Warn("File logging disabled: %v", logErr)
	}
	defer splog.Close()
	splog.SetQuiet(opts.quiet)
	defer func() {
		if err != nil {
			splog.Debug("release failed: %v", err)
		}
	}()

	manifestPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return shipiterrors.NewConfigError("--config", err)
	}
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	splog.Debug("Loaded %d targets from %s", len(manifest.Targets), manifest.Path)

	fallback, err := readFallback(root, settings)
	if err != nil {
		return err
	}
	if fallback == nil {
		splog.Debug("No metadata file at %s", settings.Metadata)
	}

	rc, err := runtime.NewContext(cmd.Context(), root, settings, splog)
	if err != nil {
		return err
	}

	interactive := tui.IsTTY() && !opts.quiet
	progress := tui.NewProgress(splog, interactive)
	defer progress.Stop()

	prompter := tui.NewSurveyPrompter()
	prompter.Before = progress.Stop

	orchestrator := release.New(rc.Git, progress, prompter, progress, release.Options{
		Root:            root,
		Remote:          settings.Remote,
		ReturnBranch:    settings.ReturnBranch,
		StagePattern:    settings.StagePattern,
		CommitMessage:   settings.CommitMessage,
		Bump:            version.Bump(opts.bump),
		AssumeYes:       opts.yes,
		FallbackVersion: fallback,
		Targets:         manifest.Targets,
		ShowTags: func(tags []version.Tag) {
			progress.Stop()
			splog.Page(tui.RenderTagTable(tags))
		},
	})

	result, err := orchestrator.Run(rc)
	if err != nil {
		return err
	}
	for _, c := range result.Changes {
		splog.Debug("%s %s = %s", c.File, c.Expression, c.Value)
	}
	return nil
}

// readFallback reads the metadata version. A missing metadata file is not an
// error; the run only fails later if no release tag exists either.
func readFallback(root string, settings config.Settings) (*semver.Version, error) {
	path := settings.Metadata
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return config.ReadMetadataVersion(path, settings.MetadataKey)
}
