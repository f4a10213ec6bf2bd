package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"immichstack/internal/testsupport"
)

type cliTestEnv struct {
	server     *testsupport.ImmichServer
	configPath string
	stateDir   string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("IMMICH_URL", "")
	t.Setenv("IMMICH_API_KEY", "")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LC_ALL", "en_US.UTF-8")

	env := &cliTestEnv{
		server:     testsupport.NewImmichServer(t, "cli-key"),
		configPath: filepath.Join(base, "config.toml"),
		stateDir:   filepath.Join(base, "state"),
		baseDir:    base,
	}
	writeTestConfig(t, env.configPath, env.server.URL, "cli-key", env.stateDir)
	return env
}

func writeTestConfig(t *testing.T, path, url, apiKey, stateDir string) {
	t.Helper()
	content := fmt.Sprintf(
		"[immich]\nurl = %q\napi_key = %q\nmax_retries = 0\nconcurrency = 2\n\n[paths]\nstate_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"warn\"\n",
		url,
		apiKey,
		stateDir,
		filepath.Join(stateDir, "logs"),
	)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

func seedDuplicates(env *cliTestEnv) {
	env.server.AddDuplicate("d1",
		testsupport.FakeAsset{ID: "r1", OriginalPath: "/lib/IMG_0001.CR2", OriginalFileName: "IMG_0001.CR2"},
		testsupport.FakeAsset{ID: "j1", OriginalPath: "/lib/IMG_0001.JPG", OriginalFileName: "IMG_0001.JPG"},
	)
	env.server.AddDuplicate("d2",
		testsupport.FakeAsset{ID: "x1", OriginalPath: "/lib/a.jpg"},
		testsupport.FakeAsset{ID: "x2", OriginalPath: "/lib/b.jpg"},
	)
}
