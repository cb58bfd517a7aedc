package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/devnought/sc-util/actions"
	"github.com/devnought/sc-util/cl"
	"github.com/devnought/sc-util/data"
	"github.com/devnought/sc-util/failure"
	"github.com/devnought/sc-util/localize"
	"github.com/devnought/sc-util/native"
	"github.com/devnought/sc-util/store"
)

const appName = native.AppName

// set with -ldflags "-X main.version=..."
var version = "head"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type commands struct {
	cleanShaders    *kingpin.CmdClause
	cleanUserFolder *kingpin.CmdClause
	configView      *kingpin.CmdClause
	configSet       *kingpin.CmdClause
	configPath      *kingpin.CmdClause
	createCfg       *kingpin.CmdClause
	open            *kingpin.CmdClause
}

func newApp(cli *cl.CLI, stdout, stderr io.Writer) (*kingpin.Application, *commands) {
	l := cli.Localizer

	app := kingpin.New(cli.AppName, l.T("app.help"))
	app.Version(cli.VersionString)
	app.HelpFlag.Short('h')
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Flag("verbose", l.T("app.verbose")).Short('v').BoolVar(&cli.Verbose)

	c := &commands{}

	clean := app.Command("clean", l.T("cmd.clean"))

	c.cleanShaders = clean.Command("shaders", l.T("cmd.clean.shaders"))
	c.cleanShaders.Flag("dry-run", l.T("flag.dry_run")).BoolVar(&cli.DryRun)
	c.cleanShaders.Flag("force", l.T("flag.force")).Short('f').BoolVar(&cli.Force)

	c.cleanUserFolder = clean.Command("userfolder", l.T("cmd.clean.userfolder")).Alias("user-folder")
	c.cleanUserFolder.Arg("environment", l.T("arg.environment")).Required().StringVar(&cli.Environment)
	c.cleanUserFolder.Flag("dry-run", l.T("flag.dry_run")).BoolVar(&cli.DryRun)
	c.cleanUserFolder.Flag("force", l.T("flag.force")).Short('f').BoolVar(&cli.Force)

	config := app.Command("config", l.T("cmd.config"))

	c.configView = config.Command("view", l.T("cmd.config.view"))

	c.configSet = config.Command("set", l.T("cmd.config.set"))
	c.configSet.Arg("path", l.T("arg.path")).Required().StringVar(&cli.RootPath)

	c.configPath = config.Command("path", l.T("cmd.config.path"))

	c.createCfg = app.Command("create-cfg", l.T("cmd.create_cfg"))
	c.createCfg.Flag("environment", l.T("arg.environment")).Short('e').Required().StringVar(&cli.Environment)
	c.createCfg.Flag("overwrite", l.T("flag.overwrite")).Short('o').BoolVar(&cli.Overwrite)

	c.open = app.Command("open", l.T("cmd.open"))
	c.open.Arg("environment", l.T("arg.environment")).StringVar(&cli.Environment)

	return app, c
}

func run(args []string, stdout, stderr io.Writer) int {
	dirs, dirsErr := native.GetDirs()

	logOutput := io.Discard
	if dirsErr == nil {
		logFile := &lumberjack.Logger{
			Filename:   dirs.LogFile(),
			MaxSize:    1, // megabytes
			MaxBackups: 3,
		}
		defer logFile.Close()
		logOutput = logFile
	}
	log.SetOutput(logOutput)
	defer log.SetOutput(os.Stderr)

	log.Printf("=== %s %s (run %s) %q", appName, version, uuid.New(), args)

	localizer, err := localize.NewLocalizer(data.Asset)
	if err != nil {
		fmt.Fprintf(stderr, "%s: could not load strings: %+v\n", appName, err)
		return 1
	}
	localizer.UseSystemLang()
	log.Printf("Using language (%s)", localizer.Lang())

	cli := &cl.CLI{
		AppName:       appName,
		VersionString: version,
		Localizer:     localizer,
	}

	app, c := newApp(cli, stdout, stderr)
	if !hasCommand(args) {
		app.Errorf("command not specified, try --help")
		return 1
	}

	// --help and --version end the run here instead of exiting the process.
	exitCode := -1
	app.Terminate(func(code int) {
		if exitCode < 0 {
			exitCode = code
		}
	})

	selected, err := app.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		app.Errorf("%s, try --help", err)
		return 1
	}

	if cli.Verbose {
		log.SetOutput(io.MultiWriter(logOutput, stderr))
	}

	err = dispatch(cli, c, selected, dirs, dirsErr, stdout)
	if err != nil {
		log.Printf("Failed (%s): %+v", failure.KindOf(err), err)
		printError(stderr, localizer, err)
		return 1
	}

	return 0
}

// hasCommand reports whether args name a command, or ask for help or the
// version, which do not need one.
func hasCommand(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--help", arg == "-h", arg == "--version",
			strings.HasPrefix(arg, "--help-"):
			return true
		case !strings.HasPrefix(arg, "-"):
			return true
		}
	}
	return false
}

func dispatch(cli *cl.CLI, c *commands, selected string, dirs native.Dirs, dirsErr error, stdout io.Writer) error {
	if dirsErr != nil {
		return dirsErr
	}

	tool := actions.New(actions.Settings{
		Store:       store.New(dirs.ConfigFile()),
		ShaderCache: dirs.ShaderCache(),
		Out:         stdout,
		DryRun:      cli.DryRun,
		Force:       cli.Force,
	})

	switch selected {
	case c.cleanShaders.FullCommand():
		return tool.DeleteShaders()
	case c.cleanUserFolder.FullCommand():
		return tool.DeleteUserFolder(cli.Environment)
	case c.configView.FullCommand():
		return tool.ViewConfig()
	case c.configSet.FullCommand():
		return tool.SetConfig(cli.RootPath)
	case c.configPath.FullCommand():
		return tool.ConfigPath()
	case c.createCfg.FullCommand():
		return tool.CreateCfg(cli.Environment, cli.Overwrite)
	case c.open.FullCommand():
		return tool.OpenRoot(cli.Environment)
	}

	return errors.Errorf("internal error: unhandled command %q", selected)
}

func printError(w io.Writer, l *localize.Localizer, err error) {
	heading := lipgloss.NewRenderer(w).NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Render(l.T("error.heading"))

	fmt.Fprintf(w, "%s %s\n", heading, l.Describe(err))
}
