package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/retype"
	"github.com/iw2rmb/retype/config"
	"github.com/iw2rmb/retype/internal/logging"
	"github.com/iw2rmb/retype/preset"
)

var (
	configPath string
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "retype-demo",
	Short: "Interactive form whose fields rewrite what you type",
	Long: `retype-demo runs a terminal form. Every field carries a chain of rules
(upper case, digits only, length limits, ...) that rewrite each keystroke
while the caret stays where you typed.

The form comes from --config (YAML or TOML) or a built-in default.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := preset.Default()
		cfg, err := loadConfig(reg)
		if err != nil {
			return err
		}

		log, closeLog, err := openLog(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()

		f, err := newForm(cfg, reg, log)
		if err != nil {
			return err
		}
		log.Info("starting", "fields", len(cfg.Fields), "attempts", cfg.Correction.Attempts, "interval", cfg.Correction.Interval)
		if _, err := tea.NewProgram(f, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run form: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "retype %s\n", retype.VersionTag())
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule names a config file may use",
	Run: func(cmd *cobra.Command, args []string) {
		reg := preset.Default()
		for _, name := range reg.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", name, reg.Usage(name))
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config file and print the resulting form",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(preset.Default())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "correction: %d attempts, %s apart\n", cfg.Correction.Attempts, cfg.Correction.Interval)
		for _, f := range cfg.Fields {
			fmt.Fprintf(out, "%s (%s, %s):", f.Name, f.Kind, f.Unit)
			for _, r := range f.Rules {
				fmt.Fprintf(out, " %s", r.Name)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "form config file (.yaml, .yml or .toml)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (- for stderr)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(checkCmd)
}

func loadConfig(reg *preset.Registry) (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath, reg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", configPath, err)
	}
	return cfg, nil
}

// openLog applies the command-line overrides to the config's log section.
func openLog(cfg *config.Config) (*slog.Logger, func() error, error) {
	lc := cfg.Log
	if logFile != "" {
		lc.File = logFile
	}
	if logLevel != "" {
		lc.Level = logLevel
	}

	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(lc.Format)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(logging.Config{
		Level:     level,
		Format:    format,
		Path:      lc.File,
		Component: "retype-demo",
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
