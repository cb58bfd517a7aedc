package actions

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dchest/safefile"
	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"

	"github.com/devnought/sc-util/failure"
	"github.com/devnought/sc-util/guard"
	"github.com/devnought/sc-util/store"
)

const (
	UserFolderName = "USER"
	UserCfgName    = "USER.cfg"
)

// UserCfgContents is what create-cfg writes, byte for byte.
const UserCfgContents = "r_displaySessionInfo = 1\r\nr_displayInfo = 3\r\n"

type ProcessFinder func() (*GameProcess, error)

type Opener func(path string) error

type Settings struct {
	Store *store.Store

	// ShaderCache is `<user cache>/Star Citizen`, independent of the
	// configured root.
	ShaderCache string

	// Out receives command output (config view, dry-run listings).
	Out io.Writer

	DryRun bool
	Force  bool

	// FindGame reports a running game process, defaults to FindGameProcess.
	FindGame ProcessFinder

	// Open shows a folder in the OS file manager, defaults to open.Start.
	Open Opener
}

type Tool struct {
	settings Settings
}

func New(settings Settings) *Tool {
	if settings.Out == nil {
		settings.Out = os.Stdout
	}
	if settings.FindGame == nil {
		settings.FindGame = FindGameProcess
	}
	if settings.Open == nil {
		settings.Open = open.Start
	}
	return &Tool{settings: settings}
}

func (t *Tool) ViewConfig() error {
	config, err := t.settings.Store.Load()
	if err != nil {
		return err
	}

	fmt.Fprintln(t.settings.Out, config.RootPath)
	return nil
}

func (t *Tool) SetConfig(rootPath string) error {
	_, err := t.settings.Store.Save(rootPath)
	return err
}

// ConfigPath prints where the configuration file lives, whether or not it
// exists yet.
func (t *Tool) ConfigPath() error {
	fmt.Fprintln(t.settings.Out, t.settings.Store.Path())
	return nil
}

func (t *Tool) DeleteShaders() error {
	return t.removeTree(t.settings.ShaderCache)
}

func (t *Tool) DeleteUserFolder(environment string) error {
	envPath, err := t.resolve(environment)
	if err != nil {
		return err
	}

	return t.removeTree(filepath.Join(envPath, UserFolderName))
}

func (t *Tool) CreateCfg(environment string, overwrite bool) error {
	envPath, err := t.resolve(environment)
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(envPath, UserCfgName)

	if !overwrite {
		_, err := os.Lstat(cfgPath)
		if err == nil {
			return failure.New(failure.AlreadyExists, UserCfgName)
		}
		if !os.IsNotExist(err) {
			return failure.Wrap(failure.IoFailure, cfgPath, err)
		}
	}

	log.Printf("Writing (%s)", cfgPath)
	err = writeFile(cfgPath, []byte(UserCfgContents))
	if err != nil {
		return failure.Wrap(failure.IoFailure, cfgPath, err)
	}

	return nil
}

// OpenRoot shows the configured root, or one of its environments, in the
// OS file manager.
func (t *Tool) OpenRoot(environment string) error {
	config, err := t.settings.Store.Load()
	if err != nil {
		return err
	}

	target := config.RootPath
	if environment != "" {
		target, err = guard.ResolveEnvironment(config, environment)
		if err != nil {
			return err
		}
	} else if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return failure.New(failure.PathNotFound, target)
		}
		return failure.Wrap(failure.IoFailure, target, err)
	}

	log.Printf("Opening (%s)", target)
	err = t.settings.Open(target)
	if err != nil {
		return failure.Wrap(failure.IoFailure, target, errors.WithMessage(err, "opening file manager"))
	}
	return nil
}

func (t *Tool) resolve(environment string) (string, error) {
	config, err := t.settings.Store.Load()
	if err != nil {
		return "", err
	}

	return guard.ResolveEnvironment(config, environment)
}

func writeFile(path string, contents []byte) error {
	f, err := safefile.Create(path, 0644)
	if err != nil {
		return errors.WithMessage(err, "creating file")
	}
	defer f.Close()

	_, err = f.Write(contents)
	if err != nil {
		return errors.WithMessage(err, "writing file")
	}

	err = f.Commit()
	if err != nil {
		return errors.WithMessage(err, "committing file")
	}

	return nil
}
