package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/config"
)

// configCommand groups the config file helpers.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the evotree config file",
		Long: `Manage the evotree config file.

The config file is TOML and holds the layout geometry, the theme colors,
the default render width and the chat reply delay. Unknown keys are
rejected.`,
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the default settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.WriteFile(path, config.Default(), force); err != nil {
				return err
			}
			c.Logger.Debug("config written", "path", path, "force", force)
			printSuccess("Config written")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(stdout, c.Config)
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the config file location",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			printFile(path)
			return nil
		},
	}
}

// resolveConfigPath is the --config flag, or the default location.
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.Path()
}
