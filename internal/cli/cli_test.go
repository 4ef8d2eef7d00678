package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/craftlens/craftlens/pkg/relation"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"serve", "build", "export", "browse", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  relation.Selection
	}{
		{name: "unset flag means no filtering", value: "", set: false, want: nil},
		{name: "set but empty hides all", value: "", set: true, want: relation.NewSelection()},
		{name: "csv list", value: "craft,recycle", set: true, want: relation.NewSelection("craft", "recycle")},
		{name: "whitespace and blanks trimmed", value: " craft , ,trade ", set: true, want: relation.NewSelection("craft", "trade")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.value, tt.set)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("nil mismatch: got %v, want %v", got, tt.want)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for cat := range tt.want {
				if _, ok := got[cat]; !ok {
					t.Errorf("missing category %q", cat)
				}
			}
		})
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(tmp, appName) {
		t.Errorf("cacheDir() = %q, want under %q", dir, tmp)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatDOT, FormatSVG, FormatPNG} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	if err := validateFormat("pdf"); err == nil {
		t.Error("validateFormat(pdf) should fail")
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Power Rod", "power_rod"},
		{"  Quartermaster ", "quartermaster"},
		{"Mk-2 Coil", "mk_2_coil"},
	}
	for _, tt := range tests {
		if got := safeFileName(tt.in); got != tt.want {
			t.Errorf("safeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWritePayloadToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := writePayload([]byte(`{"nodes":[]}`), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"nodes":[]}` {
		t.Errorf("file content = %q", data)
	}
}
