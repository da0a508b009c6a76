package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/redstone/config"
	"github.com/sarchlab/redstone/simulation"
)

type runOptions struct {
	configPath  string
	envFile     string
	ticks       uint64
	monitor     bool
	port        int
	openBrowser bool
	hold        bool
	record      string
	redis       string
	verbose     bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run scenario.yaml",
		Short: "Run a scenario and print what happened.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file.")
	flags.StringVar(&opts.envFile, "env", ".env",
		"Dotenv file with REDSTONE_* overrides, skipped when missing.")
	flags.Uint64Var(&opts.ticks, "ticks", 0,
		"Number of ticks to run, overriding the scenario.")
	flags.BoolVar(&opts.monitor, "monitor", false, "Serve the monitor.")
	flags.IntVar(&opts.port, "port", 0, "Port of the monitor.")
	flags.BoolVar(&opts.openBrowser, "open", false,
		"Open the monitor in a browser.")
	flags.BoolVar(&opts.hold, "hold", false,
		"Keep serving the monitor after the run until interrupted.")
	flags.StringVar(&opts.record, "record", "",
		"Record the IC lifecycle into this SQLite file.")
	flags.StringVar(&opts.redis, "redis", "",
		"Publish the IC lifecycle to the Redis server at this address.")
	flags.BoolVar(&opts.verbose, "verbose", false,
		"Log every event and every IC lifecycle step.")

	return cmd
}

func loadConfig(opts runOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	if err := cfg.ApplyEnv(opts.envFile); err != nil {
		return cfg, err
	}

	if opts.monitor || opts.port != 0 {
		cfg.Monitor.Enabled = true
	}

	if opts.port != 0 {
		cfg.Monitor.Port = opts.port
	}

	if opts.openBrowser {
		cfg.Monitor.OpenBrowser = true
	}

	if opts.record != "" {
		cfg.Recording.Enabled = true
		cfg.Recording.Backend = config.BackendSQLite
		cfg.Recording.Path = opts.record
	}

	if opts.redis != "" {
		cfg.Events.Enabled = true
		cfg.Events.RedisAddr = opts.redis
	}

	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, path string, opts runOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	sc, err := simulation.LoadScenario(path)
	if err != nil {
		return err
	}

	if opts.ticks > 0 {
		sc.Ticks = opts.ticks
	}

	builder := simulation.MakeBuilder().
		WithConfig(cfg).
		WithWorldName(sc.World).
		WithLogger(log.New(errOut, "[ic] ", 0))
	if opts.verbose {
		builder = builder.
			WithEventLogging(log.New(errOut, "[event] ", 0)).
			WithLifecycleLogging(log.New(errOut, "[trace] ", 0))
	}

	s := builder.Build()
	defer s.Terminate()

	if _, err := s.Play(sc, messagePrinter(out)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := s.RunTicks(sc.Ticks); err != nil {
		return err
	}

	printReport(out, s.Report())

	if opts.hold && s.Monitor() != nil {
		fmt.Fprintf(errOut, "Serving %s, press Ctrl-C to stop.\n",
			s.MonitorURL())

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
	}

	return nil
}
