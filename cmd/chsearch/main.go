package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pengelbrecht/chsearch/internal/config"
	"github.com/pengelbrecht/chsearch/internal/logging"
	"github.com/pengelbrecht/chsearch/internal/registry"
	"github.com/pengelbrecht/chsearch/internal/render"
	"github.com/pengelbrecht/chsearch/internal/telemetry"
	"github.com/pengelbrecht/chsearch/internal/tui"
	"github.com/pengelbrecht/chsearch/internal/update"
)

var version = "dev"

const shutdownTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:   "chsearch",
	Short: "Search the Companies House register from the terminal",
	Long: `chsearch is an interactive browser for the UK Companies House register.
Search for a company by name, pick one from the results and page through its
profile, filing history and persons with significant control.

The API key is read from COMPANIES_HOUSE_API_KEY.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade chsearch to the latest release",
	Long:  `Downloads the latest GitHub release and replaces the running binary.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		method := update.DetectInstallMethod()
		if method == update.InstallHomebrew {
			fmt.Fprintln(out, "chsearch was installed via Homebrew.")
			fmt.Fprintln(out, update.Instructions(method))
			return nil
		}

		updater, err := update.New(version, nil, slog.Default())
		if err != nil {
			return err
		}
		return runUpgrade(cmd.Context(), out, updater)
	},
}

// upgrader is the part of *update.Updater used by the upgrade command.
type upgrader interface {
	Current() string
	Check(ctx context.Context) (*update.Release, bool, error)
	Apply(ctx context.Context, release *update.Release) error
}

func runUpgrade(ctx context.Context, out io.Writer, u upgrader) error {
	fmt.Fprintf(out, "Current version: v%s\n", u.Current())
	fmt.Fprintln(out, "Checking for updates...")

	release, newer, err := u.Check(ctx)
	if err != nil {
		return err
	}
	if release == nil {
		return errors.New("no releases found")
	}
	if !newer {
		fmt.Fprintf(out, "Already up to date (v%s)\n", u.Current())
		return nil
	}

	fmt.Fprintf(out, "Updating to v%s...\n", release.Version)
	if err := u.Apply(ctx, release); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated to v%s\n", release.Version)
	return nil
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

// credentialError is reported to the user before the TUI starts.
type credentialError struct{ err error }

func (e *credentialError) Error() string { return "API Key Error: " + e.err.Error() }
func (e *credentialError) Unwrap() error { return e.err }

// registryConfig leaves HTTPClient unset: requests run on the default
// client with no deadline and no retries.
func registryConfig(cfg config.Config, logger *slog.Logger, tracing *telemetry.Provider) registry.Config {
	return registry.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Logger:  logger,
		Tracer:  tracing.Tracer("github.com/pengelbrecht/chsearch/internal/registry"),
	}
}

func newClient(cfg config.Config, logger *slog.Logger, tracing *telemetry.Provider) (*registry.Client, error) {
	client, err := registry.NewClient(registryConfig(cfg, logger, tracing))
	if registry.IsMissingCredential(err) {
		return nil, &credentialError{err: err}
	}
	return client, err
}

func runTUI(ctx context.Context) error {
	cfg, cfgErr := config.Load()

	logger, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()
	if cfgErr != nil {
		logger.Warn("invalid configuration, using defaults", "error", cfgErr)
	}

	tracing, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Version:     version,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("flushing traces", "error", err)
		}
	}()

	client, err := newClient(cfg, logger, tracing)
	if err != nil {
		return err
	}

	app := tui.New(tui.Config{
		Source:   client,
		Renderer: render.New(true),
		Logger:   logger,
		Context:  ctx,
	})

	logger.Info("starting", "version", version, "base_url", cfg.BaseURL)
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
