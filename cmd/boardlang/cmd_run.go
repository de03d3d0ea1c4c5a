package main

import (
	"fmt"
	"path/filepath"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/driver"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

type runFlags struct {
	config   string
	maxTurns int
	capture  string
	seed     int64
	moves    []string
	logLevel string
	plain    bool
	format   string
}

func (app *cli) runCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run [program]",
		Short: "Play a program to the end",
		Long: "Play a program to the end and print the final board and status.\n\n" +
			"Without a program argument on a terminal, pick one from the current directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.programPath(args)
			if err != nil {
				return err
			}
			return app.runProgram(cmd, path, flags)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "configuration file (default: $"+driver.ConfigEnv+" or "+driver.ConfigFileName+" next to the program)")
	f.IntVar(&flags.maxTurns, "max-turns", 0, "abort the game after this many turns (0: no limit)")
	f.StringVar(&flags.capture, "capture", "", "capture mode: explicit or implicit")
	f.Int64Var(&flags.seed, "seed", 0, "seed for random(n)")
	f.StringArrayVarP(&flags.moves, "move", "m", nil, "scripted cell choice x,y (repeatable)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")
	f.BoolVar(&flags.plain, "plain", false, "print the board without styling")
	f.StringVar(&flags.format, "format", "text", "output format: text or yaml")
	return cmd
}

func (app *cli) programPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !app.interactive() {
		return "", hostErrorf("run requires a program path")
	}
	return pickProgram(".")
}

// interactive reports whether stdin is a terminal a person can type into.
func (app *cli) interactive() bool {
	f, ok := app.stdin.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (app *cli) runProgram(cmd *cobra.Command, path string, flags runFlags) error {
	if flags.format != "text" && flags.format != "yaml" {
		return hostErrorf("unknown format %q", flags.format)
	}
	cfg, err := driver.LoadConfig(driver.ResolveConfigPath(flags.config, path))
	if err != nil {
		return &hostError{err: err}
	}
	if err := applyRunFlags(cmd, cfg, flags); err != nil {
		return &hostError{err: err}
	}

	logger := log.New()
	logger.SetOutput(app.stderr)
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	root, err := driver.LoadProgram(path)
	if err != nil {
		return &hostError{err: err}
	}
	logger.WithField("program", filepath.Base(path)).Debug("program loaded")

	// Program output must not interleave with the YAML document.
	programOut := app.stdout
	if flags.format == "yaml" {
		programOut = app.stderr
	}
	var input interpreter.CellInput
	var prompt *promptInput
	if len(cfg.Moves) == 0 {
		prompt = newPromptInput(app.stdin, app.stdout)
		defer prompt.Close()
		input = prompt
	}
	interp := interpreter.New(cfg.Options(logger, programOut, input))
	if prompt != nil {
		prompt.board = func() string { return renderState(interp.State(), flags.plain) }
	}

	state, runErr := interp.Run(root)
	if flags.format == "yaml" {
		if err := writeResult(app.stdout, newResult(state, runErr)); err != nil {
			return &hostError{err: err}
		}
		return runErr
	}
	if state != nil {
		fmt.Fprintln(app.stdout, renderState(state, flags.plain))
		fmt.Fprintln(app.stdout, renderStatus(state, flags.plain))
	}
	return runErr
}

// applyRunFlags lets explicitly set flags override the configuration file.
func applyRunFlags(cmd *cobra.Command, cfg *driver.Config, flags runFlags) error {
	f := cmd.Flags()
	if f.Changed("max-turns") {
		if flags.maxTurns < 0 {
			return fmt.Errorf("--max-turns must be zero or positive")
		}
		cfg.MaxTurns = flags.maxTurns
	}
	if f.Changed("capture") {
		switch driver.CaptureMode(flags.capture) {
		case driver.CaptureExplicit, driver.CaptureImplicit:
			cfg.Capture = driver.CaptureMode(flags.capture)
		default:
			return fmt.Errorf("--capture must be explicit or implicit, got %q", flags.capture)
		}
	}
	if f.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if f.Changed("move") {
		cfg.Moves = cfg.Moves[:0]
		for _, raw := range flags.moves {
			m, err := driver.ParseMove(raw)
			if err != nil {
				return fmt.Errorf("--move: %w", err)
			}
			cfg.Moves = append(cfg.Moves, m)
		}
	}
	if f.Changed("log-level") {
		level, err := log.ParseLevel(flags.logLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	return nil
}
