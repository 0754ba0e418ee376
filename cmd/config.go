package cmd

import (
	"fmt"

	"github.com/khrees2412/screener/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// Loaded without validation so an invalid value can still be replaced
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render("Configuration"))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		for _, key := range config.EditableKeys {
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render(key+":"), valueStyle.Render(config.Get(key)))
		}
		if err := config.AppConfig.Validate(); err != nil {
			fmt.Fprintf(w, "\n%s %v\n", errorStyle.Render("Invalid:"), err)
		}
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  screener config set --key scoring.mode --value perturbed
  screener config set --key scoring.noise --value 3
  screener config set --key storage.driver --value memory
  screener config set --key log.json --value true`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("error updating config: %w", err)
		}

		// Reload config
		if err := config.Load(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", fmt.Sprintf("configuration key %v", config.EditableKeys))
	setConfigCmd.Flags().String("value", "", "configuration value")
}
