package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/calev/stathelper/internal/config"
	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/helper"
	"github.com/calev/stathelper/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "stathelper",
	Short: "Interactive statistics tutoring calculator",
	Long:  "Stathelper — a family of interactive helpers for normal, binomial, chi-square, uniform, proportion, table, and regression problems.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (overrides STATHELPER_CONFIG env var)")
	rootCmd.PersistentFlags().Int("round", 0, "Initial number of decimal places for rounding answers (1-9)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(helpersCmd)
}

// resolveConfigPath returns the config path from the --config flag (highest
// priority), then the STATHELPER_CONFIG env var, then the default XDG path.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}

func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	f, err := config.Load(resolveConfigPath(cmd))
	if err != nil {
		return config.Settings{}, err
	}
	s := f.Settings()
	if r, _ := cmd.Flags().GetInt("round"); r >= 1 && r <= 9 {
		s.Rounding = r
	}
	return s, nil
}

func runSession(cmd *cobra.Command) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	out := console.NewPrinter(cmd.OutOrStdout())
	in := console.NewReader(os.Stdin, out)
	env := helper.Env{
		In:         in,
		Out:        out,
		Rounding:   settings.Rounding,
		PlotWidth:  settings.PlotWidth,
		PlotHeight: settings.PlotHeight,
	}
	return session.New(in, out, env, settings.DefaultHelper).Run()
}
