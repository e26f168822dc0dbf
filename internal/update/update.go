// Package update implements "chsearch upgrade" on top of GitHub releases.
package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	repoOwner = "pengelbrecht"
	repoName  = "chsearch"
	brewTap   = "pengelbrecht/tap/chsearch"
)

// ErrDevBuild is returned when the running binary carries no release version.
var ErrDevBuild = errors.New("cannot update dev builds")

// InstallMethod represents how chsearch was installed.
type InstallMethod int

const (
	// InstallUnknown means the binary path could not be resolved.
	InstallUnknown InstallMethod = iota
	// InstallHomebrew means the binary lives in a Homebrew prefix.
	InstallHomebrew
	// InstallDirect means a release binary or go install.
	InstallDirect
)

func (m InstallMethod) String() string {
	switch m {
	case InstallHomebrew:
		return "homebrew"
	case InstallDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// DetectInstallMethod inspects the running executable's resolved path.
func DetectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallUnknown
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return InstallUnknown
	}
	return classifyPath(exe)
}

func classifyPath(exe string) InstallMethod {
	if exe == "" {
		return InstallUnknown
	}
	if strings.Contains(exe, "/Cellar/") ||
		strings.HasPrefix(exe, "/opt/homebrew/") ||
		strings.HasPrefix(exe, "/usr/local/Homebrew/") ||
		strings.Contains(exe, "linuxbrew") {
		return InstallHomebrew
	}
	return InstallDirect
}

// Release describes the newest published release.
type Release struct {
	Version    string
	ReleaseURL string

	latest *selfupdate.Release
}

// Updater checks and applies releases.
type Updater struct {
	current string
	logger  *slog.Logger
	updater *selfupdate.Updater
	repo    selfupdate.Repository
}

// New creates an Updater for the running version. A nil source reads
// GitHub releases. Dev builds are rejected.
func New(currentVersion string, source selfupdate.Source, logger *slog.Logger) (*Updater, error) {
	current := normalize(currentVersion)
	if current == "" || current == "dev" {
		return nil, ErrDevBuild
	}
	if logger == nil {
		logger = slog.Default()
	}

	if source == nil {
		gh, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
		if err != nil {
			return nil, fmt.Errorf("creating GitHub source: %w", err)
		}
		source = gh
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("creating updater: %w", err)
	}

	return &Updater{
		current: current,
		logger:  logger,
		updater: updater,
		repo:    selfupdate.NewRepositorySlug(repoOwner, repoName),
	}, nil
}

func normalize(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}

// Current returns the running version without a "v" prefix.
func (u *Updater) Current() string { return u.current }

// Check reports the latest release and whether it is newer than the
// running version. A repository without releases yields (nil, false, nil).
func (u *Updater) Check(ctx context.Context) (*Release, bool, error) {
	latest, found, err := u.updater.DetectLatest(ctx, u.repo)
	if err != nil {
		return nil, false, fmt.Errorf("detecting latest version: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	release := &Release{Version: latest.Version(), ReleaseURL: latest.URL, latest: latest}
	newer := latest.GreaterThan(u.current)
	u.logger.Debug("update check", "current", u.current, "latest", release.Version, "newer", newer)
	return release, newer, nil
}

// Apply replaces the running executable with a release returned by Check.
func (u *Updater) Apply(ctx context.Context, release *Release) error {
	if release == nil || release.latest == nil {
		return errors.New("no release to apply")
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	u.logger.Info("applying update", "from", u.current, "to", release.Version, "path", exe)
	if err := u.updater.UpdateTo(ctx, release.latest, exe); err != nil {
		return fmt.Errorf("updating: %w", err)
	}
	return nil
}

// Instructions returns the upgrade command for an install method.
func Instructions(method InstallMethod) string {
	if method == InstallHomebrew {
		return "Run: brew upgrade " + brewTap
	}
	return "Run: chsearch upgrade"
}
