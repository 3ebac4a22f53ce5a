package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/fread"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	// Global flags
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
	quiet      bool

	cfg      *Config
	logger   *slog.Logger
	closeLog func() error
}

// run executes one command line. The log file opened during setup is
// closed on every exit path, including failed commands.
func run(out, errOut io.Writer, args []string) (err error) {
	a := newApp(out, errOut)
	defer func() {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
	}()
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:      out,
		errOut:   errOut,
		cfg:      DefaultConfig(),
		logger:   slog.New(slog.DiscardHandler),
		closeLog: func() error { return nil },
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fread",
		Short: "Read delimited and markup files and print what they hold",
		Long: `fread reads .csv, .tsv, and .xml files through a single dispatcher and
renders the records or element tree in a choice of formats. Delimited rows
can also be wrapped into message envelopes.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file (env FREAD_CONFIG)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only log errors")

	cmd.AddCommand(newReadCmd(a), newMailCmd(a), newFormatsCmd(a))
	return cmd
}

// setup resolves configuration (defaults, file, environment, flags) and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("FREAD_CONFIG")
	}
	if path != "" {
		cfg, err := LoadFile(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	applyEnv(a.cfg)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		a.cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		a.cfg.Log.Format = a.logFormat
	}
	if flags.Changed("log-file") {
		a.cfg.Log.File = a.logFile
	}

	logger, closeLog, err := newLogger(a.cfg.Log, a.quiet, a.errOut)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	a.logger.Debug("configured", "config", path, "log_level", a.cfg.Log.Level)
	return nil
}

func (a *app) dispatcher() *fread.Dispatcher {
	return fread.Default().WithLogger(a.logger)
}
