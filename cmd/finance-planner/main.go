package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/finance-planner/internal/config"
	"github.com/iwvelando/finance-planner/internal/planner"
	"github.com/iwvelando/finance-planner/pkg/constants"
	"github.com/iwvelando/finance-planner/pkg/output"
	"github.com/iwvelando/finance-planner/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configLocation string
	outputFormat   string
	logLevel       string
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// CLI override takes precedence
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	// Reports go to stdout, so logs stay on stderr unless a file is configured.
	zapConfig.OutputPaths = []string{"stderr"}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// resolveOutputFormat applies the CLI override over the configured format.
func resolveOutputFormat(configured, override string) (string, error) {
	outputFormat := configured
	if override != "" {
		outputFormat = override
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	outputFormat = strings.ToLower(outputFormat)
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

// run loads the configuration, applies the command's overrides, builds the
// plan and writes the requested sections.
func run(cmd *cobra.Command, opts *rootOptions, override func(*config.Configuration) error, sections ...output.Section) error {
	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := resolveOutputFormat(conf.Output.Format, opts.outputFormat)
	if err != nil {
		logger.Error("invalid output format",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	if override != nil {
		if err := override(conf); err != nil {
			return err
		}
	}

	plan, err := planner.GetPlan(logger, *conf)
	if err != nil {
		logger.Error("failed to compute plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	if outputFormat == constants.OutputFormatPretty && len(sections) > 0 {
		output.PrettySections(cmd.OutOrStdout(), plan, sections...)
		return nil
	}
	return output.Write(cmd.OutOrStdout(), outputFormat, plan)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "finance-planner",
		Short:         "Personal finance planner",
		Long:          "Net worth, debt payoff, growth projection and affordability planning from a single YAML file",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, nil)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configLocation, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVarP(&opts.outputFormat, "output-format", "o", "", "type of output override: pretty, csv, json, yaml")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		planCmd(opts),
		payoffCmd(opts),
		projectCmd(opts),
		affordCmd(opts),
		optimizeCmd(opts),
		validateCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
