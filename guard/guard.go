// Package guard keeps environment-derived paths inside the configured
// Star Citizen root.
package guard

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/devnought/sc-util/failure"
	"github.com/devnought/sc-util/store"
)

// ResolveEnvironment returns the canonical path of the environment folder
// (LIVE, PTU...) under the configured root. It fails with PathNotFound when
// the folder does not exist and with PathEscape when its canonical form
// lands outside the canonical root.
func ResolveEnvironment(config *store.Config, environment string) (string, error) {
	if environment == "" {
		return "", failure.New(failure.InvalidEnvironment, "")
	}

	// The name is used as a literal segment. No lexical cleaning happens
	// before the OS sees it, `..` and symlinks resolve the way a delete would.
	joined := strings.TrimRight(config.RootPath, `/\`) + string(filepath.Separator) + environment

	_, err := os.Stat(joined)
	if err != nil {
		if os.IsNotExist(err) {
			return "", failure.New(failure.PathNotFound, joined)
		}
		return "", failure.Wrap(failure.IoFailure, joined, err)
	}

	resolved, err := store.Normalize(joined)
	if err != nil {
		return "", failure.Wrap(failure.IoFailure, joined, err)
	}

	root, err := store.Normalize(config.RootPath)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return "", failure.New(failure.PathNotFound, config.RootPath)
		}
		return "", failure.Wrap(failure.IoFailure, config.RootPath, err)
	}

	if !Contains(root, resolved) {
		log.Printf("Refusing (%s): resolves outside of root (%s)", joined, root)
		return "", failure.New(failure.PathEscape, resolved)
	}

	return resolved, nil
}

// Contains reports whether path is root or lies below it. Both must be
// canonical. The comparison is per path component, `/games/sc2` is not
// inside `/games/sc`.
func Contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
