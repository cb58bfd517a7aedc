package native

import (
	"path/filepath"

	"github.com/itchio/ox/macox"
)

func userCacheDir() (string, error) {
	homePath, err := macox.GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(homePath, "Library", "Caches"), nil
}
