package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/asciicanvas/internal/app"
	"github.com/dshills/asciicanvas/internal/config"
	"github.com/dshills/asciicanvas/internal/console"
	"github.com/dshills/asciicanvas/internal/preview"
	"github.com/dshills/asciicanvas/internal/renderer/backend"
	"github.com/dshills/asciicanvas/internal/script"
	"github.com/dshills/asciicanvas/internal/session"
	"github.com/dshills/asciicanvas/internal/watch"
)

// cliOptions holds the persistent flags.
type cliOptions struct {
	configPath string
	logLevel   string
	maxWidth   int
	maxHeight  int
	history    int
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "asciicanvas [input-file]",
		Short: "Draw lines, rectangles and fills on a text canvas",
		Long: `asciicanvas reads drawing commands from stdin or a command file and
prints the canvas after every change. Type H at the prompt for the
command list.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.IntVar(&opts.maxWidth, "max-width", 0, "Largest canvas width C may create")
	flags.IntVar(&opts.maxHeight, "max-height", 0, "Largest canvas height C may create")
	flags.IntVar(&opts.history, "history", 0, "Number of undo steps to keep")

	root.AddCommand(
		newScriptCmd(opts),
		newWatchCmd(opts),
		newPreviewCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves defaults, file and environment, then applies any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *cliOptions) (config.Config, error) {
	var loadOpts []config.Option
	if opts.configPath != "" {
		loadOpts = append(loadOpts, config.WithFile(opts.configPath))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("max-width") {
		cfg.Canvas.MaxWidth = opts.maxWidth
	}
	if flags.Changed("max-height") {
		cfg.Canvas.MaxHeight = opts.maxHeight
	}
	if flags.Changed("history") {
		cfg.History.Capacity = opts.history
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func sessionOptions(cfg config.Config, logger *slog.Logger) []session.Option {
	return []session.Option{
		session.WithMaxSize(cfg.Canvas.MaxWidth, cfg.Canvas.MaxHeight),
		session.WithHistorySize(cfg.History.Capacity),
		session.WithLogger(logger),
	}
}

func newConsole(cmd *cobra.Command) *console.System {
	out := cmd.OutOrStdout()
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = console.IsTerminal(f)
	}
	return console.NewWriters(out, cmd.ErrOrStderr(), styled)
}

func runREPL(cmd *cobra.Command, opts *cliOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Logging, cmd.ErrOrStderr())

	var in *app.Input
	if len(args) == 1 {
		in, err = app.OpenInput(args[0])
		if err != nil {
			return err
		}
	} else {
		in = app.StdinInput(cmd.InOrStdin())
	}
	defer in.Close()

	logger.Debug("starting repl", slog.String("input", in.Name), slog.Bool("interactive", in.Interactive))

	application := app.New(app.Options{
		Config:      cfg,
		Input:       in,
		Interactive: in.Interactive,
		Console:     newConsole(cmd),
		Logger:      logger,
	})
	err = application.Run(cmd.Context())
	if errors.Is(err, app.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newScriptCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua drawing script and print the final canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Logging, cmd.ErrOrStderr())
			out := cmd.OutOrStdout()

			sess := session.New(sessionOptions(cfg, logger)...)
			runner := script.NewRunner(sess,
				script.WithOutput(out),
				script.WithTimeout(cfg.Script.Timeout),
			)
			defer runner.Close()

			if err := runner.RunFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = io.WriteString(out, sess.Render())
			return err
		},
	}
}

func newWatchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <command-file>",
		Short: "Replay a command file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Logging, cmd.ErrOrStderr())
			con := newConsole(cmd)

			w, err := watch.New(args[0], func(res watch.Result, err error) {
				if err != nil {
					con.PrintError(err.Error())
					return
				}
				con.Notice(fmt.Sprintf("replayed %s (%d errors)", args[0], len(res.Errors)))
				for _, le := range res.Errors {
					con.PrintError(le.Error())
				}
				con.Print(res.Render())
			},
				watch.WithSessionOptions(sessionOptions(cfg, logger)...),
				watch.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("watch %s: %w", args[0], err)
			}
			return w.Run(cmd.Context())
		},
	}
}

func newPreviewCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [input-file]",
		Short: "Edit a canvas in a full-screen terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Logging, cmd.ErrOrStderr())
			sessOpts := sessionOptions(cfg, logger)

			sess := session.New(sessOpts...)
			if len(args) == 1 {
				res, err := watch.ReplayFile(cmd.Context(), args[0], sessOpts...)
				if err != nil {
					return err
				}
				sess = res.Session
			}

			term, err := backend.NewTerminal()
			if err != nil {
				return fmt.Errorf("failed to create terminal: %w", err)
			}
			if err := term.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal: %w", err)
			}
			defer term.Shutdown()

			err = preview.New(sess, term, preview.WithLogger(logger)).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "asciicanvas %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
