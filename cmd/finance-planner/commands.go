package main

import (
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/iwvelando/finance-planner/internal/config"
	"github.com/iwvelando/finance-planner/pkg/adapters"
	"github.com/iwvelando/finance-planner/pkg/output"
	"github.com/iwvelando/finance-planner/pkg/validation"
	"github.com/spf13/cobra"
)

func planCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the full financial plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, nil)
		},
	}
}

func payoffCmd(opts *rootOptions) *cobra.Command {
	var strategy string
	var extra float64

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Simulate the debt payoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override := func(conf *config.Configuration) error {
				if cmd.Flags().Changed("strategy") {
					if err := validation.ValidateStrategy(strategy); err != nil {
						return err
					}
					conf.Payoff.Strategy = strategy
				}
				if cmd.Flags().Changed("extra") {
					conf.Payoff.ExtraMonthlyPayment = extra
				}
				return nil
			}
			return run(cmd, opts, override, output.SectionPayoff, output.SectionLoans)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "", "payoff strategy override: avalanche or snowball")
	cmd.Flags().Float64Var(&extra, "extra", 0, "extra monthly payment override")
	return cmd
}

func projectCmd(opts *rootOptions) *cobra.Command {
	var years int
	var rate float64

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project compound growth of liquid assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override := func(conf *config.Configuration) error {
				if cmd.Flags().Changed("years") {
					conf.Projection.Years = years
				}
				if cmd.Flags().Changed("rate") {
					conf.Projection.Rate = rate
				}
				return nil
			}
			return run(cmd, opts, override, output.SectionProjection)
		},
	}
	cmd.Flags().IntVar(&years, "years", 0, "projection length override in years")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual return override as a decimal (0.07 for 7%)")
	return cmd
}

func affordCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "afford <cost>",
		Short: "Assess whether a purchase is affordable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid cost %q: %w", args[0], err)
			}
			if cost <= 0 {
				return fmt.Errorf("cost %.2f must be positive", cost)
			}
			override := func(conf *config.Configuration) error {
				conf.Affordability.Cost = cost
				return nil
			}
			return run(cmd, opts, override, output.SectionAffordability)
		},
	}
}

func optimizeCmd(opts *rootOptions) *cobra.Command {
	var targetMonths int

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find the smallest extra payment that clears all debts in time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override := func(conf *config.Configuration) error {
				if conf.Optimizer == nil {
					conf.Optimizer = &config.OptimizerConfig{}
				}
				if cmd.Flags().Changed("target-months") {
					conf.Optimizer.TargetMonths = targetMonths
				}
				if conf.Optimizer.TargetMonths <= 0 {
					return fmt.Errorf("optimize requires optimizer.targetMonths in the configuration or --target-months")
				}
				return nil
			}
			return run(cmd, opts, override, output.SectionOptimization)
		},
	}
	cmd.Flags().IntVar(&targetMonths, "target-months", 0, "debt free target in months")
	return cmd
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and print warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(opts.configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", opts.configLocation, err)
			}
			warnings, err := conf.ValidateConfiguration()
			if err != nil {
				return err
			}
			validator := adapters.RecordsFromConfig(conf).Validator()
			if err := validator.Validate(); err != nil {
				return err
			}
			if _, err := conf.ProcessLoans(nil); err != nil {
				return err
			}
			warnings = append(warnings, validator.ValidateAll()...)

			out := cmd.OutOrStdout()
			for _, warning := range warnings {
				_, _ = fmt.Fprintf(out, "warning: %s\n", warning)
			}
			_, _ = fmt.Fprintf(out, "%s is valid (%d warnings)\n", opts.configLocation, len(warnings))
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "finance-planner %s (commit %s, built %s)\n", version, commit, date)
			if info, ok := debug.ReadBuildInfo(); ok && info != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "go %s\n", info.GoVersion)
			}
		},
	}
}
