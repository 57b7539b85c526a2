// Package cli implements the evotree command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/buildinfo"
	"github.com/matzehuels/evotree/pkg/config"
	"github.com/matzehuels/evotree/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "evotree"

	// annotationSkipConfig marks commands that must run without a readable
	// config file, like config init.
	annotationSkipConfig = "evotree/skip-config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs; until then it holds the
	// defaults.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Evotree explores the genealogy of AI agents",
		Long: `Evotree lays out, renders and explores the evolution tree of AI agents:
who bred whom, across generations, with each agent's traits and vitals.`,
		Version:      buildinfo.Resolve().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, skip := cmd.Annotations[annotationSkipConfig]; skip {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/evotree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.chatCommand())
	root.AddCommand(c.agentCommand())
	root.AddCommand(c.createCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the --config file. Without the flag the default location
// is tried and a missing file there means defaults.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "width", cfg.Render.Width)
	return nil
}

// newEngine builds the layout engine from the loaded config.
func (c *CLI) newEngine() (*layout.Engine, error) {
	return layout.NewEngine(c.Config.Layout)
}
