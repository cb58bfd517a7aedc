package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devnought/sc-util/failure"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "cache", "sc-util", "config.json"))
}

func TestLoad_NotInitialized(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load()
	if !failure.Is(err, failure.NotInitialized) {
		t.Fatalf("Expected NotInitialized, got %v", err)
	}
	if err.Error() != "Configuration file was never initialized" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       "root_path = /games/sc",
		"wrong type":     `{"root_path": 42}`,
		"missing field":  `{}`,
		"empty root":     `{"root_path": ""}`,
		"truncated json": `{"root_path": "/games`,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.MkdirAll(filepath.Dir(s.Path()), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(s.Path(), []byte(contents), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := s.Load()
			if !failure.Is(err, failure.MalformedConfig) {
				t.Errorf("Expected MalformedConfig, got %v", err)
			}
		})
	}
}

func TestLoad_IgnoresUnknownFields(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	contents := `{"root_path": "/games/sc", "theme": "dark"}`
	if err := os.WriteFile(s.Path(), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.RootPath != "/games/sc" {
		t.Errorf("Expected /games/sc, got %q", config.RootPath)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()

	saved, err := s.Save(root)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	if saved.RootPath != want {
		t.Errorf("Expected saved root %q, got %q", want, saved.RootPath)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RootPath != saved.RootPath {
		t.Errorf("Round trip mismatch: saved %q, loaded %q", saved.RootPath, loaded.RootPath)
	}
}

func TestSave_PrettyPrinted(t *testing.T) {
	if filepath.Separator == '\\' {
		t.Skip("backslashes are escaped in JSON")
	}

	s := newTestStore(t)
	root := t.TempDir()

	saved, err := s.Save(root)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	bs, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"root_path\": \"" + saved.RootPath + "\"\n}"
	if string(bs) != want {
		t.Errorf("Unexpected file contents:\n%s\nwant:\n%s", bs, want)
	}
}

func TestSave_Overwrites(t *testing.T) {
	s := newTestStore(t)
	first := t.TempDir()
	second := t.TempDir()

	if _, err := s.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	saved, err := s.Save(second)
	if err != nil {
		t.Fatalf("Save second: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RootPath != saved.RootPath {
		t.Errorf("Expected last write to win (%q), got %q", saved.RootPath, loaded.RootPath)
	}
}

func TestSave_Normalizes(t *testing.T) {
	s := newTestStore(t)
	base := t.TempDir()
	target := filepath.Join(base, "real")
	if err := os.MkdirAll(filepath.Join(target, "LIVE"), 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	saved, err := s.Save(link + string(filepath.Separator) + "LIVE" + string(filepath.Separator) + "..")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatal(err)
	}
	if saved.RootPath != want {
		t.Errorf("Expected %q, got %q", want, saved.RootPath)
	}
}

func TestSave_PathNotFound(t *testing.T) {
	s := newTestStore(t)
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := s.Save(missing)
	if !failure.Is(err, failure.PathNotFound) {
		t.Fatalf("Expected PathNotFound, got %v", err)
	}

	if _, statErr := os.Stat(s.Path()); !os.IsNotExist(statErr) {
		t.Errorf("Expected no configuration file to be written")
	}
}

func TestSave_NotADirectory(t *testing.T) {
	s := newTestStore(t)
	file := filepath.Join(t.TempDir(), "StarCitizen.exe")
	if err := os.WriteFile(file, []byte("MZ"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Save(file)
	if !failure.Is(err, failure.NotADirectory) {
		t.Fatalf("Expected NotADirectory, got %v", err)
	}
}
