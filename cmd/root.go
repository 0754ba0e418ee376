package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/screener/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Score and shortlist job candidates",
	Long: `Screener evaluates job candidates from manual entry, CSV uploads or
PDF/DOCX résumés, assigns each a 0-100 score and a verdict, and keeps the
results in a per-session history that can be filtered and exported.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		memory, _ := cmd.Flags().GetBool("memory")

		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context(), app.Options{
			Session: session,
			Memory:  memory,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		activeApp = application
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
}

// activeApp is closed by Execute whether or not the command succeeded
var activeApp *app.App

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "log in json format")
	rootCmd.PersistentFlags().String("session", "", "session to read and write (overrides config)")
	rootCmd.PersistentFlags().Bool("memory", false, "keep history in memory for this run only")

	viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	// Cleanup: close app resources
	if activeApp != nil {
		activeApp.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

// currentApp returns the App set up by PersistentPreRunE
func currentApp(cmd *cobra.Command) (*app.App, error) {
	return app.FromContext(cmd.Context())
}
