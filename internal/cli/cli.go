// Package cli implements the tileplan-server command-line interface.
//
// The serve command runs the HTTP draw API; render lays out a saved project
// offline and writes it in any export format. All commands support
// --verbose (-v) for debug-level logging and --config to read settings from
// a file other than ~/.tileplan/config.json.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/piwi3910/TilePlan/internal/project"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a CLI writing logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		configPath: project.DefaultConfigPath(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tileplan-server",
		Short:        "TilePlan lays out tiles on floors and walls",
		Long:         `TilePlan computes whole and cut tile placements for floors and rooms of walls, renders the plan and estimates the material needed.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "settings file (.json or .toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	return root
}

// loadConfig reads the settings file; a missing file yields defaults.
func (c *CLI) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}
