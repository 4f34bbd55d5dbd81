// stega - hide JSON data in text as invisible characters
//
// Usage:
//
//	stega annotate TEXT --data JSON          Annotate TEXT with JSON data
//	stega retrieve [file] [--all] [--path P] Print annotations as JSON lines
//	stega remove [file] [--all]              Strip annotation symbols
//	stega mark [file]                        Render annotations inline
//	stega locate [file]                      Find annotations in an HTML page
//	stega diff OLD NEW                       Diff the visible text of two files
//	stega version                            Print version info
//
// If no file is given, or the file is "-", reads from stdin. Logs go to
// stderr; see --log-level and --log-format.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

const version = "0.1.0"

// CLI is the command line grammar.
type CLI struct {
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"STEGA_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
	LogFormat string `name:"log-format" default:"console" enum:"console,json" env:"STEGA_LOG_FORMAT" help:"Log format (console, json)."`

	Annotate AnnotateCmd `cmd:"" help:"Annotate text with JSON data."`
	Retrieve RetrieveCmd `cmd:"" help:"Print annotations as JSON lines."`
	Remove   RemoveCmd   `cmd:"" help:"Strip annotation symbols from text."`
	Mark     MarkCmd     `cmd:"" help:"Render annotations inline as visible markers."`
	Locate   LocateCmd   `cmd:"" help:"Find annotations in an HTML document."`
	Diff     DiffCmd     `cmd:"" help:"Show a unified diff of the visible text of two files."`
	Version  VersionCmd  `cmd:"" help:"Print version info."`
}

// Env carries the process streams and logger into commands.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logger *zap.Logger
}

// errDiffers reports that diff found differences. It maps to exit
// status 1 without an error message, like diff(1).
var errDiffers = errors.New("visible text differs")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errDiffers):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "stega: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("stega"),
		kong.Description("Hide JSON data in text as invisible characters."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cli.LogLevel, cli.LogFormat, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("running command", zap.String("command", kctx.Command()))
	return kctx.Run(&Env{Stdin: stdin, Stdout: stdout, Logger: logger})
}

// VersionCmd prints version info.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	_, err := fmt.Fprintf(env.Stdout, "stega %s\n", version)
	return err
}
