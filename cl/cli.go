package cl

import "github.com/devnought/sc-util/localize"

// globals, get your globals here!

type CLI struct {
	AppName       string
	VersionString string

	Localizer *localize.Localizer

	Verbose bool

	// clean
	DryRun bool
	Force  bool

	// clean userfolder, create-cfg, open
	Environment string
	Overwrite   bool

	// config set
	RootPath string
}
