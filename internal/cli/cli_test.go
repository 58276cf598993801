package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/onewire-tools/owctl/internal/owclient"
)

func TestParseDefaults(t *testing.T) {
	cfg, paths, err := Parse("owdir", "list a 1-wire directory", []string{"/"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server != "" {
		t.Fatalf("server should default empty (client falls back): %q", cfg.Server)
	}
	if cfg.Temperature != owclient.Celsius || cfg.Pressure != owclient.Mbar {
		t.Fatalf("scale defaults wrong: %+v", cfg)
	}
	if len(paths) != 1 || paths[0] != "/" {
		t.Fatalf("paths: %v", paths)
	}
}

func TestParseOptions(t *testing.T) {
	argv := []string{
		"-s", "owhost:4304", "-K", "-psi", "-d", "fic",
		"-hex", "-dir", "-size", "8", "-offset", "4",
		"/10.AAAA/temperature", "/12.BBBB/temperature",
	}
	cfg, paths, err := Parse("owread", "read a 1-wire property", argv)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server != "owhost:4304" {
		t.Fatalf("server: %q", cfg.Server)
	}
	if cfg.Temperature != owclient.Kelvin || cfg.Pressure != owclient.Psi || cfg.Format != owclient.FIC {
		t.Fatalf("scales not applied: %+v", cfg)
	}
	if !cfg.Hex || !cfg.Slash {
		t.Fatalf("bool options not applied: %+v", cfg)
	}
	if cfg.ReadSize != 8 || cfg.ReadOffset != 4 {
		t.Fatalf("read range not applied: %+v", cfg)
	}
	if len(paths) != 2 {
		t.Fatalf("paths: %v", paths)
	}
}

func TestParsePruneImpliesBare(t *testing.T) {
	cfg, _, err := Parse("owtree", "print the 1-wire tree", []string{"-prune", "/"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.Prune || !cfg.Bare {
		t.Fatalf("prune should imply bare: %+v", cfg)
	}
}

func TestParseRejectsBadFormat(t *testing.T) {
	if _, _, err := Parse("owdir", "", []string{"-d", "cif", "/"}); err == nil {
		t.Fatalf("expected error for bad format")
	}
}

func TestParseConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owctl.toml")
	body := "server = \"filehost:4304\"\ntemperature = \"F\"\nhex = true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Parse("owread", "", []string{"-config", path, "-s", "flaghost:4304", "/"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server != "flaghost:4304" {
		t.Fatalf("flag should override file: %q", cfg.Server)
	}
	if cfg.Temperature != owclient.Fahrenheit || !cfg.Hex {
		t.Fatalf("file settings lost: %+v", cfg)
	}
}

type fakeLister map[string][]string

func (f fakeLister) DirAllSlash(path string) ([]string, error) {
	return f[path], nil
}

func TestTree(t *testing.T) {
	l := fakeLister{
		"/": {"/10.AAAA/", "/05.BBBB/"},
		"/10.AAAA/": {
			"/10.AAAA/temperature",
			"/10.AAAA/errata/",
		},
		"/10.AAAA/errata/": {"/10.AAAA/errata/die"},
		"/05.BBBB/":        {"/05.BBBB/PIO"},
	}

	var buf bytes.Buffer
	if err := Tree(&buf, l, "/"); err != nil {
		t.Fatalf("tree: %v", err)
	}

	want := `/
├── 10.AAAA
│   ├── temperature
│   └── errata
│       └── die
└── 05.BBBB
    └── PIO
`
	if buf.String() != want {
		t.Fatalf("tree output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}
