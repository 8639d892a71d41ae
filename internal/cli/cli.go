// Package cli wires flags, configuration and logging together and
// starts the dashboard. Resolution order for every setting: flag over
// environment over config file over default.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/app"
	"github.com/quarterdeckhq/quarterdeck/internal/config"
	"github.com/quarterdeckhq/quarterdeck/internal/logging"
	"github.com/quarterdeckhq/quarterdeck/internal/screens"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// Version is stamped at build time; "dev" otherwise.
var Version = "dev"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the quarterdeck command with all flags registered.
func NewRootCmd() *cobra.Command {
	var (
		serverFlag    string
		tokenFlag     string
		themeFlag     string
		demoFlag      bool
		refreshFlag   time.Duration
		logFileFlag   string
		logLevelFlag  string
		logFormatFlag string
	)

	cmd := &cobra.Command{
		Use:   "quarterdeck",
		Short: "Terminal dashboard for Kubernetes clusters and Helm releases",
		Long: `Quarterdeck is a terminal dashboard for a cluster control-plane server.
It shows cluster health, nodes, pods, Helm releases, cost optimization
recommendations, the event timeline and incidents, and streams pod logs.

Settings resolve from flags, QUARTERDECK_* environment variables, then
$HOME/.config/quarterdeck/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("server") {
				cfg.Server = serverFlag
			}
			if flags.Changed("token") {
				cfg.Token = tokenFlag
			}
			if flags.Changed("theme") {
				cfg.Theme = themeFlag
			}
			if flags.Changed("demo") {
				cfg.Demo = demoFlag
			}
			if flags.Changed("refresh-interval") {
				cfg.RefreshInterval = refreshFlag
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFileFlag
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevelFlag
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormatFlag
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&serverFlag, "server", config.DefaultServer, "Quarterdeck server base URL")
	cmd.Flags().StringVar(&tokenFlag, "token", "", "Bearer token sent with every request")
	cmd.Flags().StringVar(&themeFlag, "theme", "charm",
		"Color theme ("+strings.Join(ui.AvailableThemes(), ", ")+")")
	cmd.Flags().BoolVar(&demoFlag, "demo", false, "Run against built-in sample data, no server needed")
	cmd.Flags().DurationVar(&refreshFlag, "refresh-interval", 0,
		"Override the per-screen refresh intervals (minimum 1s)")
	cmd.Flags().StringVar(&logFileFlag, "log-file", "", "Write logs to this file (empty disables logging)")
	cmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormatFlag, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	if err := logging.Init(logging.Config{
		FilePath:   cfg.LogFile,
		Level:      logging.ParseLevel(cfg.LogLevel),
		Format:     logging.ParseFormat(cfg.LogFormat),
		MaxSizeMB:  10,
		MaxBackups: 3,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Shutdown()

	var client api.Client
	if cfg.Demo {
		client = api.NewDemoClient()
	} else {
		client = api.New(cfg.Server, cfg.Token)
	}

	theme := ui.GetTheme(cfg.Theme)

	logging.Info("starting dashboard",
		"version", Version, "server", client.Server(), "demo", cfg.Demo, "theme", theme.Name)

	model := app.New(client, theme, app.Options{
		Settings:        buildSettings(cmd, cfg),
		RefreshInterval: cfg.RefreshInterval,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	logging.Info("dashboard stopped")
	return nil
}

// buildSettings assembles the rows for the config screen: each effective
// setting with the layer it was resolved from.
func buildSettings(cmd *cobra.Command, cfg *config.Config) []screens.Setting {
	flags := cmd.Flags()

	source := func(flagName, envName string, isDefault bool) string {
		switch {
		case flags.Changed(flagName):
			return "flag"
		case os.Getenv(envName) != "":
			return "env"
		case !isDefault:
			return "config file"
		default:
			return "default"
		}
	}

	token := "(none)"
	if cfg.Token != "" {
		token = "(set)"
	}

	refresh := "per screen"
	if cfg.RefreshInterval > 0 {
		refresh = cfg.RefreshInterval.String()
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "(disabled)"
	}

	return []screens.Setting{
		{Name: "server", Value: cfg.Server,
			Source: source("server", "QUARTERDECK_SERVER", cfg.Server == config.DefaultServer)},
		{Name: "token", Value: token,
			Source: source("token", "QUARTERDECK_TOKEN", cfg.Token == "")},
		{Name: "theme", Value: cfg.Theme,
			Source: source("theme", "QUARTERDECK_THEME", cfg.Theme == "charm")},
		{Name: "demo", Value: strconv.FormatBool(cfg.Demo),
			Source: source("demo", "QUARTERDECK_DEMO", !cfg.Demo)},
		{Name: "refresh-interval", Value: refresh,
			Source: source("refresh-interval", "QUARTERDECK_REFRESH_INTERVAL", cfg.RefreshInterval == 0)},
		{Name: "log-file", Value: logFile,
			Source: source("log-file", "QUARTERDECK_LOG_FILE", cfg.LogFile == "")},
		{Name: "log-level", Value: cfg.LogLevel,
			Source: source("log-level", "QUARTERDECK_LOG_LEVEL", cfg.LogLevel == "info")},
		{Name: "log-format", Value: cfg.LogFormat,
			Source: source("log-format", "QUARTERDECK_LOG_FORMAT", cfg.LogFormat == "text")},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("quarterdeck " + Version)
		},
	}
}
