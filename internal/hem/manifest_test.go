package hem

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	herrors "hem/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slug.json"), `{
  "paths": ["./app", "./shared"],
  "libs": ["lib/jquery.js"],
  "css": "./css/index.less",
  "public": "./dist"
}`)

	m, err := LoadManifest(filepath.Join(dir, "slug.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Paths, []string{"./app", "./shared"}) {
		t.Errorf("Paths = %v", m.Paths)
	}
	if !reflect.DeepEqual(m.Libs, []string{"lib/jquery.js"}) {
		t.Errorf("Libs = %v", m.Libs)
	}
	if m.CSS != "./css/index.less" {
		t.Errorf("CSS = %q", m.CSS)
	}
	if got, want := m.PublicDir(), filepath.Join(m.Root, "dist"); got != want {
		t.Errorf("PublicDir() = %q, want %q", got, want)
	}
	if m.JSPath != "/application.js" || m.CSSPath != "/application.css" {
		t.Errorf("default package paths = %q, %q", m.JSPath, m.CSSPath)
	}
}

func TestLoadManifest_YAMLDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slug.yml"), "libs:\n  - vendor/spine.js\n")

	m, err := LoadManifest(filepath.Join(dir, "slug.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Paths, []string{"app"}) {
		t.Errorf("Paths default = %v", m.Paths)
	}
	if m.CSS != "css" || m.Public != "public" {
		t.Errorf("defaults: CSS=%q Public=%q", m.CSS, m.Public)
	}
}

func TestLoadManifest_EmptyPathsKept(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slug.json"), `{"paths": []}`)

	m, err := LoadManifest(filepath.Join(dir, "slug.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Paths) != 0 {
		t.Errorf("explicit empty paths should stay empty, got %v", m.Paths)
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "slug.json"))
	if !herrors.Is(err, herrors.ErrNoManifest) {
		t.Errorf("err = %v, want ErrNoManifest", err)
	}
}

func TestLoadManifest_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slug.json"), `{"paths": [`)

	if _, err := LoadManifest(filepath.Join(dir, "slug.json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadManifest_PackagePathsNormalized(t *testing.T) {
	tests := []struct {
		name, jsPath, cssPath string
		wantJS, wantCSS       string
	}{
		{"no leading slash", "application.js", "style.css", "/application.js", "/style.css"},
		{"dot segments", "./assets/../app.js", "/assets//app.css", "/app.js", "/assets/app.css"},
		{"trailing slash", "/js/app.js/", "css/app.css", "/js/app.js", "/css/app.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "slug.json"),
				`{"jsPath": "`+tt.jsPath+`", "cssPath": "`+tt.cssPath+`"}`)

			m, err := LoadManifest(filepath.Join(dir, "slug.json"))
			if err != nil {
				t.Fatal(err)
			}
			if m.JSPath != tt.wantJS {
				t.Errorf("JSPath = %q, want %q", m.JSPath, tt.wantJS)
			}
			if m.CSSPath != tt.wantCSS {
				t.Errorf("CSSPath = %q, want %q", m.CSSPath, tt.wantCSS)
			}
		})
	}
}

func TestLoadManifest_InvalidPackagePaths(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"same path", `{"jsPath": "/app.bundle", "cssPath": "app.bundle"}`},
		{"same after cleaning", `{"jsPath": "/a/../bundle", "cssPath": "/bundle"}`},
		{"metrics path", `{"cssPath": "/__hem/metrics"}`},
		{"root", `{"jsPath": "/"}`},
		{"cleans to root", `{"jsPath": "./"}`},
		{"braces", `{"cssPath": "/{name}.css"}`},
		{"whitespace", `{"jsPath": "/app .js"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "slug.json"), tt.slug)

			_, err := LoadManifest(filepath.Join(dir, "slug.json"))
			if !herrors.Is(err, herrors.ErrInvalidManifest) {
				t.Errorf("err = %v, want ErrInvalidManifest", err)
			}
		})
	}
}

func TestFindManifest(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindManifest(dir); !herrors.Is(err, herrors.ErrNoManifest) {
		t.Errorf("empty dir: err = %v, want ErrNoManifest", err)
	}

	writeFile(t, filepath.Join(dir, "slug.yaml"), "{}")
	got, err := FindManifest(dir)
	if err != nil || filepath.Base(got) != "slug.yaml" {
		t.Errorf("FindManifest = %q, %v", got, err)
	}

	writeFile(t, filepath.Join(dir, "slug.json"), "{}")
	got, _ = FindManifest(dir)
	if filepath.Base(got) != "slug.json" {
		t.Errorf("slug.json should win, got %q", got)
	}
}

func TestManifest_WatchDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "css"), 0o755); err != nil {
		t.Fatal(err)
	}
	m := &Manifest{
		Paths: []string{"app"},
		Libs:  []string{"lib/a.js", "lib/b.js"},
		CSS:   "css",
		Root:  dir,
	}

	want := []string{
		filepath.Join(dir, "app"),
		filepath.Join(dir, "lib"),
		filepath.Join(dir, "css"),
	}
	if got := m.WatchDirs(); !reflect.DeepEqual(got, want) {
		t.Errorf("WatchDirs() = %v, want %v", got, want)
	}
}
