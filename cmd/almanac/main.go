package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/config"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/timescale"
)

var Version = "dev"

// app carries what every command needs once configuration is loaded
type app struct {
	configFile string
	config     *config.Config
	logger     *zap.Logger
	converter  *timescale.Converter
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	a.config = cfg

	if cfg.Verbose {
		a.logger, err = zap.NewDevelopment()
	} else {
		a.logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	entries, err := cfg.LeapTable()
	if err != nil {
		return err
	}
	leap.Default.SetLogger(a.logger.Named("leap"))
	if err := leap.Default.Set(entries); err != nil {
		return fmt.Errorf("set leap seconds: %w", err)
	}

	a.converter = timescale.New(leap.Default, timescale.WithLogger(a.logger.Named("timescale")))
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "almanac",
		Short:   "Convert instants between astronomical time scales",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			// manually set local timezone for docker container
			if tz := os.Getenv("TZ"); tz != "" {
				loc, err := time.LoadLocation(tz)
				if err != nil {
					return fmt.Errorf("load tz location: %w", err)
				}
				time.Local = loc
			}

			return a.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml or json)")
	flags.BoolP("verbose", "v", false, "development logging")
	flags.Float64("dut1", 0, "UT1-UTC in seconds")
	flags.Float64("latitude", 0, "observer latitude in degrees")
	flags.Float64("longitude", 0, "observer longitude in degrees east")

	root.AddCommand(
		newCalToJDCmd(a),
		newJDToCalCmd(a),
		newEpochCmd(a),
		newDeltaATCmd(a),
		newConvertCmd(a),
		newFromCalendarCmd(a),
		newNowCmd(a),
		newLeapCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almanac %s\n", Version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERR: %s\n", err)
		os.Exit(1)
	}
}
