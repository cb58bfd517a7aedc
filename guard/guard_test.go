package guard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devnought/sc-util/failure"
	"github.com/devnought/sc-util/store"
)

// newRoot lays out <tmp>/sc/{LIVE,PTU} and returns the canonical root.
func newRoot(t *testing.T) (string, *store.Config) {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(base, "sc")
	for _, env := range []string{"LIVE", "PTU"} {
		if err := os.MkdirAll(filepath.Join(root, env), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return base, &store.Config{RootPath: root}
}

func TestResolveEnvironment(t *testing.T) {
	_, config := newRoot(t)

	for _, env := range []string{"LIVE", "PTU"} {
		got, err := ResolveEnvironment(config, env)
		if err != nil {
			t.Fatalf("ResolveEnvironment(%s): %v", env, err)
		}
		want := filepath.Join(config.RootPath, env)
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

func TestResolveEnvironment_NotFound(t *testing.T) {
	_, config := newRoot(t)

	_, err := ResolveEnvironment(config, "EPTU")
	if !failure.Is(err, failure.PathNotFound) {
		t.Fatalf("Expected PathNotFound, got %v", err)
	}
}

func TestResolveEnvironment_Empty(t *testing.T) {
	_, config := newRoot(t)

	_, err := ResolveEnvironment(config, "")
	if !failure.Is(err, failure.InvalidEnvironment) {
		t.Fatalf("Expected InvalidEnvironment, got %v", err)
	}
}

func TestResolveEnvironment_Traversal(t *testing.T) {
	base, config := newRoot(t)
	if err := os.MkdirAll(filepath.Join(base, "etc"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, "sc2", "LIVE"), 0755); err != nil {
		t.Fatal(err)
	}

	cases := []string{
		"..",
		filepath.Join("..", "etc"),
		filepath.Join("LIVE", "..", "..", "etc"),
		filepath.Join("..", "sc2", "LIVE"),
	}

	for _, env := range cases {
		t.Run(env, func(t *testing.T) {
			_, err := ResolveEnvironment(config, env)
			if !failure.Is(err, failure.PathEscape) {
				t.Errorf("Expected PathEscape, got %v", err)
			}
		})
	}
}

func TestResolveEnvironment_InnerTraversal(t *testing.T) {
	_, config := newRoot(t)

	got, err := ResolveEnvironment(config, filepath.Join("PTU", "..", "LIVE"))
	if err != nil {
		t.Fatalf("ResolveEnvironment: %v", err)
	}
	if want := filepath.Join(config.RootPath, "LIVE"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestResolveEnvironment_SymlinkEscape(t *testing.T) {
	base, config := newRoot(t)
	outside := filepath.Join(base, "elsewhere")
	if err := os.MkdirAll(outside, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(config.RootPath, "TECH-PREVIEW")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := ResolveEnvironment(config, "TECH-PREVIEW")
	if !failure.Is(err, failure.PathEscape) {
		t.Fatalf("Expected PathEscape, got %v", err)
	}
}

func TestResolveEnvironment_SymlinkInside(t *testing.T) {
	_, config := newRoot(t)
	if err := os.Symlink(filepath.Join(config.RootPath, "LIVE"), filepath.Join(config.RootPath, "CURRENT")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := ResolveEnvironment(config, "CURRENT")
	if err != nil {
		t.Fatalf("ResolveEnvironment: %v", err)
	}
	if want := filepath.Join(config.RootPath, "LIVE"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestResolveEnvironment_SymlinkedRoot(t *testing.T) {
	base, config := newRoot(t)
	link := filepath.Join(base, "sc-link")
	if err := os.Symlink(config.RootPath, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := ResolveEnvironment(&store.Config{RootPath: link}, "LIVE")
	if err != nil {
		t.Fatalf("ResolveEnvironment: %v", err)
	}
	if want := filepath.Join(config.RootPath, "LIVE"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestContains(t *testing.T) {
	root := filepath.FromSlash("/games/sc")
	cases := []struct {
		path string
		want bool
	}{
		{"/games/sc", true},
		{"/games/sc/LIVE", true},
		{"/games/sc/LIVE/USER", true},
		{"/games/sc/..data", true},
		{"/games/sc2", false},
		{"/games", false},
		{"/etc", false},
	}

	for _, c := range cases {
		if got := Contains(root, filepath.FromSlash(c.path)); got != c.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", root, c.path, got, c.want)
		}
	}
}
