package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/PalletStack/internal/project"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2026-01-01" {
		t.Errorf("date = %q, want %q", date, "2026-01-01")
	}
}

// isolateConfig points the config file into a fresh temp directory and
// returns that directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(project.ConfigEnv, filepath.Join(dir, "config.json"))
	return dir
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandListsSubcommands(t *testing.T) {
	isolateConfig(t)
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}
	for _, name := range []string{"pack", "compare", "validate", "export", "strategies", "pallets", "template", "config"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output should list %q", name)
		}
	}
}

func TestConfigFlagOverridesEnvironment(t *testing.T) {
	isolateConfig(t)
	other := filepath.Join(t.TempDir(), "other.json")

	if _, err := runCLI(t, "--config", other, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !fileExists(other) {
		t.Error("config init should write the --config path")
	}
	if !fileExists(filepath.Join(filepath.Dir(other), "inventory.json")) {
		t.Error("inventory should be written next to the config")
	}
}

func TestStrategiesCommand(t *testing.T) {
	isolateConfig(t)
	out, err := runCLI(t, "strategies")
	if err != nil {
		t.Fatalf("strategies failed: %v", err)
	}
	for _, id := range []string{"column", "type-group", "bin-packing-3d", "material-grouping"} {
		if !strings.Contains(out, id) {
			t.Errorf("strategies output should contain %q:\n%s", id, out)
		}
	}
}
