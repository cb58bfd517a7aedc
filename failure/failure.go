package failure

import (
	"errors"
	"fmt"
)

// Kind classifies everything that can make an sc-util invocation fail.
type Kind int

const (
	IoFailure Kind = iota
	NotInitialized
	MalformedConfig
	PathNotFound
	NotADirectory
	PathEscape
	AlreadyExists
	InvalidEnvironment
	GameRunning
)

var kindKeys = map[Kind]string{
	IoFailure:          "io_failure",
	NotInitialized:     "not_initialized",
	MalformedConfig:    "malformed_config",
	PathNotFound:       "path_not_found",
	NotADirectory:      "not_a_directory",
	PathEscape:         "path_escape",
	AlreadyExists:      "already_exists",
	InvalidEnvironment: "invalid_environment",
	GameRunning:        "game_running",
}

// Key is the stable identifier of a kind, used for locale lookups.
func (k Kind) Key() string {
	if key, ok := kindKeys[k]; ok {
		return key
	}
	return fmt.Sprintf("kind_%d", int(k))
}

func (k Kind) String() string {
	return k.Key()
}

type Error struct {
	Kind Kind
	// Path the failure is about, may be empty.
	Path string
	// Err is the underlying cause, may be nil.
	Err error
}

func New(kind Kind, path string) *Error {
	return &Error{Kind: kind, Path: path}
}

func Wrap(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Message returns the English message for the kind, without the cause.
func (e *Error) Message() string {
	switch e.Kind {
	case NotInitialized:
		return "Configuration file was never initialized"
	case MalformedConfig:
		return fmt.Sprintf("Configuration file `%s` is malformed", e.Path)
	case PathNotFound:
		return fmt.Sprintf("`%s` does not exist.", e.Path)
	case NotADirectory:
		return fmt.Sprintf("`%s` is not a directory", e.Path)
	case PathEscape:
		return fmt.Sprintf("`%s` is outside of the configured Star Citizen root directory", e.Path)
	case AlreadyExists:
		return fmt.Sprintf("`%s` already exists", e.Path)
	case InvalidEnvironment:
		return "An environment name (LIVE, PTU...) is required"
	case GameRunning:
		return fmt.Sprintf("Star Citizen is running (%s); close it or pass --force", e.Path)
	default:
		return fmt.Sprintf("Filesystem error on `%s`", e.Path)
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %s", e.Message(), e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// As finds the first *Error in err's chain. pkg/errors wrappers implement
// Unwrap, so they are followed too.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Is reports whether err carries a failure of the given kind.
func Is(err error, kind Kind) bool {
	fe, ok := As(err)
	return ok && fe.Kind == kind
}

// KindOf returns the kind carried by err, IoFailure when err is untyped.
func KindOf(err error) Kind {
	if fe, ok := As(err); ok {
		return fe.Kind
	}
	return IoFailure
}
