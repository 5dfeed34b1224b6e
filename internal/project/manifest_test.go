package project

import (
	"os"
	"path/filepath"
	"testing"

	"rdmd/internal/convert"
	"rdmd/internal/driver"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"x\"\n")
	nested := filepath.Join(root, "man", "macros")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Errorf("path = %q", path)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("ok = true in empty tree")
	}
}

func TestLoadAndApply(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `
[package]
name = "mypkg"
input = "man"
output = "reference"
extension = "md"

[convert]
exec-dontrun = true
exec-donttest = false
quarto-code-blocks = false
include-internal = true
arguments-format = "grid"
unresolved-link-url = "https://rdrr.io/r/{topic}.html"

[packages]
cli = "https://cli.r-lib.org/reference/"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != root || m.Config.Package.Name != "mypkg" {
		t.Fatalf("manifest = %+v", m)
	}

	opts := driver.Options{Convert: convert.DefaultOptions()}
	m.Apply(&opts)

	if opts.InputDir != filepath.Join(root, "man") {
		t.Errorf("InputDir = %q", opts.InputDir)
	}
	if opts.OutputDir != filepath.Join(root, "reference") {
		t.Errorf("OutputDir = %q", opts.OutputDir)
	}
	if opts.Extension != "md" || opts.Convert.LinkExtension != "md" {
		t.Errorf("extension = %q link = %q", opts.Extension, opts.Convert.LinkExtension)
	}
	if !opts.Convert.ExecDontrun || opts.Convert.ExecDonttest || opts.Convert.QuartoCodeBlocks {
		t.Errorf("exec flags = %+v", opts.Convert)
	}
	if !opts.IncludeInternal {
		t.Error("IncludeInternal not applied")
	}
	if opts.Convert.ArgumentsFormat != convert.ArgumentsGrid {
		t.Errorf("ArgumentsFormat = %v", opts.Convert.ArgumentsFormat)
	}
	if opts.Convert.UnresolvedLinkURL != "https://rdrr.io/r/{topic}.html" {
		t.Errorf("UnresolvedLinkURL = %q", opts.Convert.UnresolvedLinkURL)
	}
	if opts.Convert.ExternalPackageURLs["cli"] != "https://cli.r-lib.org/reference/" {
		t.Errorf("packages = %v", opts.Convert.ExternalPackageURLs)
	}
}

func TestApplyLeavesAbsentKeys(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[package]\nname = \"x\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := driver.Options{Convert: convert.DefaultOptions(), FrontMatter: true}
	m.Apply(&opts)

	if !opts.Convert.ExecDonttest || !opts.Convert.QuartoCodeBlocks {
		t.Errorf("defaults clobbered: %+v", opts.Convert)
	}
	if !opts.FrontMatter {
		t.Error("FrontMatter clobbered")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad arguments format", "[convert]\narguments-format = \"fancy\"\n"},
		{"bad extension", "[package]\nextension = \"html\"\n"},
		{"bad toml", "[package\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			if _, err := Load(path); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestStarterRoundTrips(t *testing.T) {
	path := writeManifest(t, t.TempDir(), Starter("demo"))
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	if m.Config.Convert.ExecDonttest == nil || !*m.Config.Convert.ExecDonttest {
		t.Error("starter exec-donttest should be true")
	}
}
