package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"iismap/internal/config"
	"iismap/internal/diagnostic"
	"iismap/internal/logging"
	"iismap/internal/schema"
)

const envPrefix = "IISMAP"

var errUsage = errors.New("usage")

// commonFlags are accepted by every translating command.
type commonFlags struct {
	config           *string
	schema           *string
	debug            *bool
	logFile          *string
	warningsAsErrors *bool
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		config:           fs.String("config", "", "YAML run configuration file"),
		schema:           fs.String("schema", "", "element grammar file (default: built-in IIS grammar)"),
		debug:            fs.Bool("debug", false, "verbose development logging"),
		logFile:          fs.String("log-file", "", "also write the log to this rotating file"),
		warningsAsErrors: fs.Bool("warnings-as-errors", false, "treat every warning as an error"),
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("iismap "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

// parse reads flags from args and the IISMAP_ environment.
func parse(fs *flag.FlagSet, args []string) error {
	return ff.Parse(fs, args, ff.WithEnvVarPrefix(envPrefix))
}

// env is what a command runs with once flags and configuration are settled.
type env struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	close  func() error
	stderr io.Writer
}

// setup loads the configuration, lets explicitly set flags override it, and
// builds the logger.
func (f *commonFlags) setup(fs *flag.FlagSet, stderr io.Writer) (*env, error) {
	cfg := config.Default()

	if *f.config != "" {
		loaded, err := config.LoadFile(*f.config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			cfg.Log.Debug = *f.debug
		case "log-file":
			cfg.Log.File = *f.logFile
		case "warnings-as-errors":
			cfg.WarningsAsErrors = *f.warningsAsErrors
		}
	})

	log, closeFn, err := logging.New(logging.Options{
		Debug:      cfg.Log.Debug,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log, close: closeFn, stderr: stderr}
	e.report(config.Validate(cfg))

	return e, nil
}

// finish closes the logger, keeping the first error.
func (e *env) finish(err error) error {
	return multierr.Append(err, e.close())
}

func (f *commonFlags) loadSchema() (*schema.Schema, error) {
	if *f.schema == "" {
		return schema.Default()
	}

	return schema.LoadFile(*f.schema)
}

// report prints diagnostics to stderr, one per line, in source order.
func (e *env) report(diags *diagnostic.Diagnostics) {
	for _, d := range diags.Sorted() {
		fmt.Fprintln(e.stderr, d.String())
	}
}

// settle applies the configured policy, prints what remains and returns
// errFailed when errors are left.
func (e *env) settle(diags *diagnostic.Diagnostics) error {
	diags.Apply(e.cfg.Policy())
	e.report(diags)

	if diags.HasErrors() {
		fmt.Fprintf(e.stderr, "%d error(s), %d warning(s)\n", len(diags.Errors), len(diags.Warnings))
		return errFailed
	}

	return nil
}

// oneArg returns the single positional argument.
func oneArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("%w: expected exactly one %s", errUsage, what)
	}

	return fs.Arg(0), nil
}
