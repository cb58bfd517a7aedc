package harness

import (
	"os"
	"path/filepath"
	"testing"
)

// GameTree helps create a fake Star Citizen install layout
type GameTree struct {
	t    *testing.T
	root string
}

// NewGameTree creates `<tempDir>/StarCitizen` with the given environments
func NewGameTree(t *testing.T, tempDir string, environments ...string) *GameTree {
	t.Helper()

	root := filepath.Join(tempDir, "StarCitizen")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root dir: %v", err)
	}

	g := &GameTree{t: t, root: root}
	for _, env := range environments {
		g.EnvDir(env)
	}
	return g
}

// Root returns the game root (what `config set` receives)
func (g *GameTree) Root() string {
	return g.root
}

// EnvDir creates (if needed) and returns `<root>/<env>`
func (g *GameTree) EnvDir(env string) string {
	g.t.Helper()

	dir := filepath.Join(g.root, env)
	if err := os.MkdirAll(dir, 0755); err != nil {
		g.t.Fatalf("Failed to create environment dir: %v", err)
	}
	return dir
}

// CreateUserFolder fills `<root>/<env>/USER` with a few profile files
func (g *GameTree) CreateUserFolder(env string) string {
	g.t.Helper()

	userDir := filepath.Join(g.EnvDir(env), "USER")
	files := map[string]string{
		"Client/0/Profiles/default/attributes.xml": "<Attributes/>",
		"Client/0/Profiles/default/actionmaps.xml": "<ActionMaps/>",
		"Client/0/CustomCharacters/face.chf":       "chf",
	}
	for rel, contents := range files {
		g.WriteFile(filepath.Join(userDir, filepath.FromSlash(rel)), contents)
	}
	return userDir
}

// WriteFile writes a file, creating its parents
func (g *GameTree) WriteFile(path, contents string) {
	g.t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		g.t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		g.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// Exists reports whether path exists, without following symlinks
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
