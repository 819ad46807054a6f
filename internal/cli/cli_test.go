package cli

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/store"
)

const boardJSON = `{
  "nodes": [
    {"id": 0, "label": "Start", "details": "begin", "x": 100, "y": 100},
    {"id": 1, "label": "Review", "details": "check it", "x": null, "y": null}
  ],
  "links": [{"source": 0, "target": 1}]
}`

// testEnv points every XDG directory at a temp dir and returns its root.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	prev := out
	out = io.Discard
	t.Cleanup(func() { out = prev })
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// storedBoard reads the board the file backend holds.
func storedBoard(t *testing.T, dir string) *flow.Graph {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(dir, "data", appName))
	if err != nil {
		t.Fatal(err)
	}
	data, ok, err := st.Get(context.Background(), graph.StorageKey)
	if err != nil || !ok {
		t.Fatalf("stored board: ok=%v err=%v", ok, err)
	}
	g, err := graph.Unmarshal(data)
	if err != nil {
		t.Fatalf("stored board is invalid: %v", err)
	}
	return g
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"edit", "view", "export", "import", "render", "layout", "clear", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q (have %v)", want, names)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil || root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing persistent flags")
	}
}

func TestImportExport(t *testing.T) {
	dir := testEnv(t)
	in := writeFile(t, dir, "board.json", boardJSON)

	if err := runCLI(t, "", "import", in); err != nil {
		t.Fatalf("import: %v", err)
	}
	g := storedBoard(t, dir)
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("stored %d nodes, %d links", g.NodeCount(), g.EdgeCount())
	}

	out := filepath.Join(dir, "out.json")
	if err := runCLI(t, "", "export", "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"nodes\"") {
		t.Errorf("export is not indented:\n%s", data)
	}
	exported, err := graph.Unmarshal(data)
	if err != nil {
		t.Fatalf("exported file is invalid: %v", err)
	}
	if n, _ := exported.Node(1); n == nil || n.Label != "Review" {
		t.Errorf("exported node 1 = %+v", n)
	}
}

func TestImportInvalidKeepsBoard(t *testing.T) {
	dir := testEnv(t)
	if err := runCLI(t, "", "import", writeFile(t, dir, "board.json", boardJSON)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{nodes"},
		{"missing links", `{"nodes": []}`},
		{"dangling link", `{"nodes": [{"id": 0, "label": "A", "details": ""}], "links": [{"source": 0, "target": 9}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, "", "import", writeFile(t, dir, "bad.json", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Fatalf("import error = %v, want invalid document", err)
			}
			if g := storedBoard(t, dir); g.NodeCount() != 2 {
				t.Errorf("stored board changed: %d nodes", g.NodeCount())
			}
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	dir := testEnv(t)
	if err := runCLI(t, "", "import", filepath.Join(dir, "nope.json")); err == nil {
		t.Error("import of a missing file succeeded")
	}
}

func TestClear(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		stdin     string
		wantNodes int
	}{
		{"confirmed flag", []string{"clear", "--yes"}, "", 1},
		{"confirmed prompt", []string{"clear"}, "y\n", 1},
		{"declined", []string{"clear"}, "n\n", 2},
		{"no answer", []string{"clear"}, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testEnv(t)
			if err := runCLI(t, "", "import", writeFile(t, dir, "board.json", boardJSON)); err != nil {
				t.Fatal(err)
			}
			if err := runCLI(t, tt.stdin, tt.args...); err != nil {
				t.Fatalf("clear: %v", err)
			}
			g := storedBoard(t, dir)
			if g.NodeCount() != tt.wantNodes {
				t.Fatalf("NodeCount = %d, want %d", g.NodeCount(), tt.wantNodes)
			}
			if tt.wantNodes == 1 {
				if n, _ := g.Node(0); n.Label != "Start" {
					t.Errorf("seed label = %q", n.Label)
				}
			}
		})
	}
}

func TestLayoutPlacesNodes(t *testing.T) {
	dir := testEnv(t)
	if err := runCLI(t, "", "import", writeFile(t, dir, "board.json", boardJSON)); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "", "layout"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	for _, n := range storedBoard(t, dir).Nodes() {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			t.Errorf("node %d still unplaced", n.ID)
		}
	}
}

func TestLayoutReset(t *testing.T) {
	dir := testEnv(t)
	pinned := `{"nodes": [{"id": 0, "label": "A", "details": "", "x": 50, "y": 50, "fx": 50, "fy": 50}], "links": []}`
	if err := runCLI(t, "", "import", writeFile(t, dir, "board.json", pinned)); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "", "layout", "--reset"); err != nil {
		t.Fatalf("layout --reset: %v", err)
	}
	if n, _ := storedBoard(t, dir).Node(0); n.Pinned() {
		t.Error("node still pinned after --reset")
	}
}

func TestBadConfig(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "config.toml", "[force]\ncharge = 10\n")

	err := runCLI(t, "", "--config", cfg, "export", "-o", filepath.Join(dir, "out.json"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want invalid config", err)
	}
}

func TestViewRejectsBadURL(t *testing.T) {
	testEnv(t)
	err := runCLI(t, "", "view", "ftp://example.com/board.json")
	if err == nil {
		t.Fatal("view accepted an ftp URL")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out strings.Builder
		if got := confirm(strings.NewReader(tt.in), &out, "Clear?"); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var buf strings.Builder
		root.SetOut(&buf)
		root.SetArgs([]string{"completion", shell})
		testEnv(t)
		if err := root.Execute(); err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(buf.String(), appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}
	if err := runCLI(t, "", "completion", "tcsh"); err == nil {
		t.Error("completion accepted tcsh")
	}
}
