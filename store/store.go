package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/dchest/safefile"
	"github.com/pkg/errors"

	"github.com/devnought/sc-util/failure"
)

// Config is the only state sc-util persists.
type Config struct {
	// RootPath is the Star Citizen root directory, holding one folder per
	// environment (LIVE, PTU...). Always absolute and symlink-free.
	RootPath string `json:"root_path"`
}

type Store struct {
	path string
}

// New returns a Store backed by the JSON file at path.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration file.
func (s *Store) Load() (*Config, error) {
	bs, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, failure.New(failure.NotInitialized, s.path)
		}
		return nil, failure.Wrap(failure.IoFailure, s.path, errors.WithMessage(err, "reading configuration file"))
	}

	config := &Config{}
	err = json.Unmarshal(bs, config)
	if err != nil {
		return nil, failure.Wrap(failure.MalformedConfig, s.path, err)
	}

	if config.RootPath == "" {
		return nil, failure.Wrap(failure.MalformedConfig, s.path, errors.New("missing root_path"))
	}

	return config, nil
}

// Save validates and normalizes rootPath, then replaces the configuration
// file with it. It returns the configuration that was written.
func (s *Store) Save(rootPath string) (*Config, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, failure.New(failure.PathNotFound, rootPath)
		}
		return nil, failure.Wrap(failure.IoFailure, rootPath, err)
	}
	if !info.IsDir() {
		return nil, failure.New(failure.NotADirectory, rootPath)
	}

	normRootPath, err := Normalize(rootPath)
	if err != nil {
		return nil, failure.Wrap(failure.IoFailure, rootPath, err)
	}

	config := &Config{RootPath: normRootPath}
	bs, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, failure.Wrap(failure.IoFailure, s.path, errors.WithMessage(err, "marshalling configuration"))
	}

	err = os.MkdirAll(filepath.Dir(s.path), 0755)
	if err != nil {
		return nil, failure.Wrap(failure.IoFailure, s.path, errors.WithMessage(err, "creating folder for configuration file"))
	}

	f, err := safefile.Create(s.path, 0644)
	if err != nil {
		return nil, failure.Wrap(failure.IoFailure, s.path, errors.WithMessage(err, "creating configuration file"))
	}
	defer f.Close()

	_, err = f.Write(bs)
	if err != nil {
		return nil, failure.Wrap(failure.IoFailure, s.path, errors.WithMessage(err, "writing configuration file"))
	}

	err = f.Commit()
	if err != nil {
		return nil, failure.Wrap(failure.IoFailure, s.path, errors.WithMessage(err, "committing configuration file"))
	}

	log.Printf("Root path set to (%s) in (%s)", config.RootPath, s.path)
	return config, nil
}

// Normalize returns the canonical form of an existing path: absolute, with
// every symlink, `.` and `..` resolved.
func Normalize(path string) (string, error) {
	// filepath.Abs would clean `..` lexically before symlinks get a say,
	// so the working directory is prefixed by hand.
	abs := path
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.WithMessage(err, "making path absolute")
		}
		abs = wd + string(filepath.Separator) + path
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.WithMessage(err, "resolving symlinks")
	}

	return resolved, nil
}
