package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pengelbrecht/chsearch/internal/config"
	"github.com/pengelbrecht/chsearch/internal/registry"
	"github.com/pengelbrecht/chsearch/internal/update"
)

// TestCommands tests that the CLI commands are registered.
func TestCommands(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command has no version")
	}

	cmd, _, err := rootCmd.Find([]string{"upgrade"})
	if err != nil || cmd != upgradeCmd {
		t.Fatalf("upgrade command not registered: %v", err)
	}
}

func TestRootRejectsArguments(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{"acme"}); err == nil {
		t.Error("expected positional arguments to be rejected")
	}
}

func TestUpgradeRejectsDevBuild(t *testing.T) {
	var out bytes.Buffer
	upgradeCmd.SetOut(&out)
	t.Cleanup(func() { upgradeCmd.SetOut(nil) })

	err := upgradeCmd.RunE(upgradeCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "dev builds") {
		t.Errorf("error = %v, want dev build refusal", err)
	}
}

func TestNewClient_MissingCredential(t *testing.T) {
	t.Setenv(registry.APIKeyEnv, "")

	_, err := newClient(config.Config{BaseURL: registry.DefaultBaseURL}, nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	want := "API Key Error: API key not found. Please provide it or set the COMPANIES_HOUSE_API_KEY environment variable"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	var missing *registry.MissingCredentialError
	if !errors.As(err, &missing) {
		t.Error("expected a wrapped *registry.MissingCredentialError")
	}
}

func TestNewClient_WithKey(t *testing.T) {
	client, err := newClient(config.Config{APIKey: "secret"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected a client")
	}
}

func TestRegistryConfig_NoRequestTimeout(t *testing.T) {
	rc := registryConfig(config.Config{APIKey: "secret"}, nil, nil)
	if rc.HTTPClient != nil && rc.HTTPClient.Timeout != 0 {
		t.Errorf("HTTP client timeout = %v, want none", rc.HTTPClient.Timeout)
	}
	if rc.Tracer == nil {
		t.Error("expected a tracer")
	}
}

// fakeUpgrader records Apply calls.
type fakeUpgrader struct {
	current  string
	release  *update.Release
	newer    bool
	checkErr error
	applyErr error

	applied *update.Release
}

func (f *fakeUpgrader) Current() string { return f.current }

func (f *fakeUpgrader) Check(context.Context) (*update.Release, bool, error) {
	return f.release, f.newer, f.checkErr
}

func (f *fakeUpgrader) Apply(_ context.Context, release *update.Release) error {
	f.applied = release
	return f.applyErr
}

func TestRunUpgrade(t *testing.T) {
	latest := &update.Release{Version: "1.3.0"}

	tests := []struct {
		name      string
		upgrader  *fakeUpgrader
		wantErr   string
		wantOut   string
		wantApply bool
	}{
		{
			name:     "already up to date",
			upgrader: &fakeUpgrader{current: "1.3.0", release: latest},
			wantOut:  "Already up to date (v1.3.0)",
		},
		{
			name:      "newer release",
			upgrader:  &fakeUpgrader{current: "1.2.0", release: latest, newer: true},
			wantOut:   "Updated to v1.3.0",
			wantApply: true,
		},
		{
			name:     "no releases",
			upgrader: &fakeUpgrader{current: "1.2.0"},
			wantErr:  "no releases found",
		},
		{
			name:     "check fails",
			upgrader: &fakeUpgrader{current: "1.2.0", checkErr: errors.New("rate limited")},
			wantErr:  "rate limited",
		},
		{
			name:      "apply fails",
			upgrader:  &fakeUpgrader{current: "1.2.0", release: latest, newer: true, applyErr: errors.New("permission denied")},
			wantErr:   "permission denied",
			wantApply: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runUpgrade(context.Background(), &out, tt.upgrader)

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want %q", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			if applied := tt.upgrader.applied != nil; applied != tt.wantApply {
				t.Errorf("applied = %v, want %v", applied, tt.wantApply)
			}
		})
	}
}
