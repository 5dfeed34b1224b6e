// Package project loads the rdmd.toml manifest: discovery up the
// directory tree, TOML decoding, and merging into driver options. CLI
// flags override manifest values; the merge order is manifest first,
// changed flags second.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rdmd/internal/convert"
	"rdmd/internal/driver"
)

// ManifestName is the file looked up by FindManifest.
const ManifestName = "rdmd.toml"

// Manifest is a loaded rdmd.toml with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the rdmd.toml structure.
type Config struct {
	Package  PackageConfig     `toml:"package"`
	Convert  ConvertConfig     `toml:"convert"`
	Packages map[string]string `toml:"packages"`
}

// PackageConfig is the [package] table. Input and Output are resolved
// relative to the manifest's directory.
type PackageConfig struct {
	Name      string `toml:"name"`
	Input     string `toml:"input"`
	Output    string `toml:"output"`
	Extension string `toml:"extension"`
}

// ConvertConfig is the [convert] table. Pointer fields distinguish
// absent keys from explicit false.
type ConvertConfig struct {
	ExecDontrun       *bool  `toml:"exec-dontrun"`
	ExecDonttest      *bool  `toml:"exec-donttest"`
	QuartoCodeBlocks  *bool  `toml:"quarto-code-blocks"`
	IncludeInternal   *bool  `toml:"include-internal"`
	FrontMatter       *bool  `toml:"front-matter"`
	Recursive         *bool  `toml:"recursive"`
	ArgumentsFormat   string `toml:"arguments-format"`
	UnresolvedLinkURL string `toml:"unresolved-link-url"`
}

// FindManifest walks up from startDir to locate rdmd.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, cfg); err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadFromDir finds and loads the nearest manifest above startDir.
// ok is false when no manifest exists; that is not an error.
func LoadFromDir(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func validate(path string, cfg Config) error {
	switch strings.TrimSpace(cfg.Convert.ArgumentsFormat) {
	case "", "pipe", "grid":
	default:
		return fmt.Errorf("%s: [convert].arguments-format must be \"pipe\" or \"grid\", got %q", path, cfg.Convert.ArgumentsFormat)
	}
	switch strings.TrimSpace(cfg.Package.Extension) {
	case "", "qmd", "md":
	default:
		return fmt.Errorf("%s: [package].extension must be \"qmd\" or \"md\", got %q", path, cfg.Package.Extension)
	}
	return nil
}

// Apply copies manifest values into driver options. Only keys present
// in the manifest are applied; the caller layers changed CLI flags on
// top afterwards.
func (m *Manifest) Apply(opts *driver.Options) {
	pkg := m.Config.Package
	if pkg.Input != "" {
		opts.InputDir = m.resolve(pkg.Input)
	}
	if pkg.Output != "" {
		opts.OutputDir = m.resolve(pkg.Output)
	}
	if pkg.Extension != "" {
		opts.Extension = pkg.Extension
		opts.Convert.LinkExtension = pkg.Extension
	}

	conv := m.Config.Convert
	if conv.ExecDontrun != nil {
		opts.Convert.ExecDontrun = *conv.ExecDontrun
	}
	if conv.ExecDonttest != nil {
		opts.Convert.ExecDonttest = *conv.ExecDonttest
	}
	if conv.QuartoCodeBlocks != nil {
		opts.Convert.QuartoCodeBlocks = *conv.QuartoCodeBlocks
	}
	if conv.IncludeInternal != nil {
		opts.IncludeInternal = *conv.IncludeInternal
	}
	if conv.FrontMatter != nil {
		opts.FrontMatter = *conv.FrontMatter
	}
	if conv.Recursive != nil {
		opts.Recursive = *conv.Recursive
	}
	if conv.ArgumentsFormat == "grid" {
		opts.Convert.ArgumentsFormat = convert.ArgumentsGrid
	} else if conv.ArgumentsFormat == "pipe" {
		opts.Convert.ArgumentsFormat = convert.ArgumentsPipe
	}
	if conv.UnresolvedLinkURL != "" {
		opts.Convert.UnresolvedLinkURL = conv.UnresolvedLinkURL
	}

	if len(m.Config.Packages) > 0 {
		if opts.Convert.ExternalPackageURLs == nil {
			opts.Convert.ExternalPackageURLs = make(map[string]string, len(m.Config.Packages))
		}
		for name, url := range m.Config.Packages {
			opts.Convert.ExternalPackageURLs[name] = url
		}
	}
}

func (m *Manifest) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}

// Starter returns the rdmd.toml template written by `rdmd init`.
func Starter(name string) string {
	return fmt.Sprintf(`[package]
name = %q
input = "man"
output = "reference"
extension = "qmd"

[convert]
exec-dontrun = false
exec-donttest = true
quarto-code-blocks = true
arguments-format = "pipe"
include-internal = false
front-matter = true

# External package documentation bases for \link[pkg]{topic}.
[packages]
# cli = "https://cli.r-lib.org/reference/"
`, name)
}
