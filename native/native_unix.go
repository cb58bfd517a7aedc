//go:build !windows && !darwin

package native

import "github.com/kirsle/configdir"

// XDG policy: honors $XDG_CACHE_HOME, falls back to ~/.cache
func userCacheDir() (string, error) {
	return configdir.LocalCache(), nil
}
