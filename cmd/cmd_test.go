package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TFMV/orbitgraph/config"
)

const statsFixture = `{
	"domain": "example.com",
	"visited": 10,
	"queue": 2,
	"links": [
		{"from": "golang.org", "weight": 5},
		{"from": "go.dev", "weight": 2}
	]
}`

// execute runs the command tree with an isolated config directory
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRenderToFile(t *testing.T) {
	in := writeFixture(t, "stats.json", statsFixture)
	out := filepath.Join(t.TempDir(), "graph.svg")

	stdout, err := execute(t, "render", in, "-f", "svg", "-o", out, "--theme", "dark", "--seed", "3")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stdout, "Rendered example.com") {
		t.Errorf("unexpected status line %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "golang.org") {
		t.Error("expected an svg with node labels")
	}
}

func TestRenderToStdout(t *testing.T) {
	in := writeFixture(t, "links.csv", "from,weight\na.com,3\nb.com,1\n")

	stdout, err := execute(t, "render", in, "--domain", "hub.com", "-f", "dot")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(stdout, `digraph "hub.com" {`) {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestRenderErrors(t *testing.T) {
	in := writeFixture(t, "stats.json", statsFixture)

	if _, err := execute(t, "render", in, "-f", "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing input")
	}
	if _, err := execute(t, "render"); err == nil {
		t.Error("expected error without an input file")
	}
	if _, err := execute(t, "--log-level", "loud", "formats"); err == nil {
		t.Error("expected error for an invalid log level")
	}
}

func TestFormats(t *testing.T) {
	stdout, err := execute(t, "formats")
	if err != nil {
		t.Fatalf("formats failed: %v", err)
	}
	for _, f := range []string{"svg", "png", "ascii", "json", "dot", "html"} {
		if !strings.Contains(stdout, f) {
			t.Errorf("missing format %q in %q", f, stdout)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.toml")

	if _, err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if _, err := execute(t, "--config", path, "config", "init"); err == nil {
		t.Error("expected init to refuse overwriting")
	}
	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("forced init failed: %v", err)
	}

	t.Setenv("ORBIT_STYLE_THEME", "dark")
	stdout, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(stdout, `theme = "dark"`) || !strings.Contains(stdout, "[physics]") {
		t.Errorf("unexpected config output:\n%s", stdout)
	}

	stdout, err = execute(t, "--config", path, "config", "path")
	if err != nil || strings.TrimSpace(stdout) != path {
		t.Errorf("unexpected path %q (%v)", stdout, err)
	}
}
