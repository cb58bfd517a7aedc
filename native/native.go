package native

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// AppName is the folder sc-util keeps its own state in.
const AppName = "sc-util"

// ShaderFolderName is the game's shader cache folder, directly under the
// user cache root.
const ShaderFolderName = "Star Citizen"

// CacheDirEnv overrides the user cache root when set.
const CacheDirEnv = "SC_UTIL_CACHE_DIR"

// Dirs holds the per-user locations sc-util works with.
type Dirs struct {
	// on Linux, `$XDG_CACHE_HOME` or `~/.cache`
	// on Windows, `%LOCALAPPDATA%`
	// on macOS, `~/Library/Caches`
	UserCache string
}

// GetDirs resolves the user cache root for the running platform.
func GetDirs() (Dirs, error) {
	if override := os.Getenv(CacheDirEnv); override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return Dirs{}, errors.WithMessage(err, "resolving "+CacheDirEnv)
		}
		return Dirs{UserCache: abs}, nil
	}

	userCache, err := userCacheDir()
	if err != nil {
		return Dirs{}, errors.WithMessage(err, "determining user cache directory")
	}
	if userCache == "" {
		return Dirs{}, errors.Errorf("Cannot determine user path")
	}

	return Dirs{UserCache: userCache}, nil
}

func (d Dirs) AppDir() string {
	return filepath.Join(d.UserCache, AppName)
}

func (d Dirs) ConfigFile() string {
	return filepath.Join(d.AppDir(), "config.json")
}

func (d Dirs) LogFile() string {
	return filepath.Join(d.AppDir(), "logs", AppName+".log")
}

func (d Dirs) ShaderCache() string {
	return filepath.Join(d.UserCache, ShaderFolderName)
}
