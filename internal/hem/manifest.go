package hem

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hem/config"
	herrors "hem/internal/errors"
)

// Manifest is a project's slug file.  slug.json is read through the
// YAML decoder, which accepts JSON as-is, so slug.yml works too.
type Manifest struct {
	Paths   []string `yaml:"paths"`   // module roots bundled into the JS package
	Libs    []string `yaml:"libs"`    // files concatenated ahead of the modules
	CSS     string   `yaml:"css"`     // stylesheet entry, extension optional
	Public  string   `yaml:"public"`  // output and static directory
	JSPath  string   `yaml:"jsPath"`  // URL / file name of the JS package
	CSSPath string   `yaml:"cssPath"` // URL / file name of the CSS package

	// Root is the directory the manifest was loaded from; every
	// relative path above resolves against it.
	Root string `yaml:"-"`
}

// FindManifest returns the first of config.ManifestNames present in dir.
func FindManifest(dir string) (string, error) {
	for _, name := range config.ManifestNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %v)", herrors.ErrNoManifest, dir, config.ManifestNames)
}

// LoadManifest reads and decodes path, fills defaults and resolves
// relative paths against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", herrors.ErrNoManifest, path)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	m.Root = root
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Paths == nil {
		m.Paths = []string{"app"}
	}
	if m.CSS == "" {
		m.CSS = "css"
	}
	if m.Public == "" {
		m.Public = "public"
	}
	if m.JSPath == "" {
		m.JSPath = "/application.js"
	}
	if m.CSSPath == "" {
		m.CSSPath = "/application.css"
	}
	m.JSPath = urlPath(m.JSPath)
	m.CSSPath = urlPath(m.CSSPath)
}

// urlPath turns a package name such as "application.js" or
// "/assets/../app.css" into a clean absolute URL path.
func urlPath(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}

// Validate checks that the package paths can be served side by side:
// each names a file, they differ, and neither shadows MetricsPath.
func (m *Manifest) Validate() error {
	for _, p := range []struct{ field, value string }{
		{"jsPath", m.JSPath},
		{"cssPath", m.CSSPath},
	} {
		switch {
		case p.value == "/" || !strings.HasPrefix(p.value, "/"):
			return fmt.Errorf("%w: %s %q must name a file", herrors.ErrInvalidManifest, p.field, p.value)
		case strings.ContainsAny(p.value, " \t{}"):
			return fmt.Errorf("%w: %s %q contains whitespace or braces", herrors.ErrInvalidManifest, p.field, p.value)
		case p.value == MetricsPath:
			return fmt.Errorf("%w: %s %q is reserved", herrors.ErrInvalidManifest, p.field, p.value)
		}
	}
	if m.JSPath == m.CSSPath {
		return fmt.Errorf("%w: jsPath and cssPath are both %q", herrors.ErrInvalidManifest, m.JSPath)
	}
	return nil
}

// Abs resolves p against the manifest root.
func (m *Manifest) Abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

// PublicDir is the absolute output directory.
func (m *Manifest) PublicDir() string { return m.Abs(m.Public) }

// WatchDirs returns every directory whose contents feed a package.
func (m *Manifest) WatchDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	for _, p := range m.Paths {
		add(m.Abs(p))
	}
	for _, l := range m.Libs {
		add(filepath.Dir(m.Abs(l)))
	}
	css := m.Abs(m.CSS)
	if fi, err := os.Stat(css); err == nil && fi.IsDir() {
		add(css)
	} else {
		add(filepath.Dir(css))
	}
	return dirs
}
