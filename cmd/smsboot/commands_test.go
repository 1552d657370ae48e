// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sms-launcher/internal/config"
	"sms-launcher/internal/scaffold"
	"sms-launcher/internal/testutil"
)

func executeCommand(t *testing.T, deps Dependencies, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	deps.Stdout = &outBuf
	deps.Stderr = &errBuf
	if deps.Stdin == nil {
		deps.Stdin = strings.NewReader("")
	}

	rootCmd := newRootCommand(NewApp(deps))
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func TestScaffoldCommand(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	out, _, err := executeCommand(t, Dependencies{}, "scaffold", base)
	if err != nil {
		t.Fatalf("scaffold error = %v", err)
	}
	root := filepath.Join(base, scaffold.DefaultRoot)
	if !strings.Contains(out, "Project structure created successfully at "+root) {
		t.Errorf("stdout = %q", out)
	}
	if !testutil.Exists(t, filepath.Join(root, "src", "__init__.py")) {
		t.Error("src/__init__.py not created")
	}

	// Running again keeps the tree and succeeds.
	if _, _, err := executeCommand(t, Dependencies{}, "scaffold", base); err != nil {
		t.Errorf("second scaffold error = %v", err)
	}
}

func TestScaffoldCommand_Blocked(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(base, scaffold.DefaultRoot), "not a directory")

	_, stderr, err := executeCommand(t, Dependencies{}, "scaffold", base)
	if exitCodeOf(t, err) != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(stderr, "failed to create project structure") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Launcher.Title = "Branch Office Sales"
	provider := &stubProvider{cfg: cfg, path: "/etc/smsboot.cue"}

	out, _, err := executeCommand(t, Dependencies{Config: provider}, "--project-dir", t.TempDir(), "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.HasPrefix(out, "// Source: /etc/smsboot.cue\n") {
		t.Errorf("stdout does not start with source line: %q", out)
	}
	if !strings.Contains(out, `"Branch Office Sales"`) {
		t.Errorf("stdout missing title: %q", out)
	}
}

func TestConfigInit_ProjectScope(t *testing.T) {
	t.Parallel()

	projectDir := t.TempDir()
	out, _, err := executeCommand(t, Dependencies{}, "--project-dir", projectDir, "config", "init", "--project")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	path := filepath.Join(projectDir, config.ProjectConfigFileName)
	if !strings.Contains(out, "Created default configuration at "+path) {
		t.Errorf("stdout = %q", out)
	}

	testutil.MustWriteFile(t, path, "launcher: title: \"kept\"\n")
	out, _, err = executeCommand(t, Dependencies{}, "--project-dir", projectDir, "config", "init", "--project")
	if err != nil {
		t.Fatalf("second config init error = %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("stdout = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("existing configuration was overwritten")
	}
}

func TestConfigInit_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "custom.cue")
	if _, _, err := executeCommand(t, Dependencies{}, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !testutil.Exists(t, path) {
		t.Errorf("%s not created", path)
	}
}

func TestConfigInit_UnwritableTarget(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	testutil.MustWriteFile(t, blocker, "")

	_, stderr, err := executeCommand(t, Dependencies{}, "--config", filepath.Join(blocker, "smsboot.cue"), "config", "init")
	if exitCodeOf(t, err) != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(stderr, "failed to create configuration file") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigPath_MissingProjectDir(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope")
	_, stderr, err := executeCommand(t, Dependencies{}, "--project-dir", missing, "config", "path")
	if exitCodeOf(t, err) != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(stderr, "failed to locate project directory") {
		t.Errorf("stderr = %q", stderr)
	}
}
