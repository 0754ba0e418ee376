package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/screener/internal/app"
	"github.com/khrees2412/screener/internal/config"
	"github.com/khrees2412/screener/internal/database"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage screening sessions",
	Long: `Each session keeps its own screening history. Commands read and write the
active session, set with 'screener session use' or the --session flag.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		memory, _ := cmd.Flags().GetBool("memory")
		application, err := app.OpenStorage(app.Options{Memory: memory})
		if err != nil {
			return err
		}
		activeApp = application
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
}

var newSessionCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new session and make it active",
	Example: `  screener session new --name "Graduate intake 2026"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		session, err := database.CreateSession(cmd.Context(), a.DB, name)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		if err := config.Set("session", session.ID); err != nil {
			return fmt.Errorf("activate session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Session started: %s\n", session.ID)
		if session.Name != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", labelStyle.Render("Name:"), session.Name)
		}
		return nil
	},
}

var listSessionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}

		sessions, err := database.ListSessions(cmd.Context(), a.DB)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render("Sessions"))
		for i, s := range sessions {
			activeMarker := ""
			if s.ID == a.Config.Session {
				activeMarker = " [ACTIVE]"
			}
			name := s.Name
			if name == "" {
				name = mutedStyle.Render("unnamed")
			}
			fmt.Fprintf(w, "\n%d. %s%s\n", i+1, name, activeMarker)
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("ID:"), s.ID)
			fmt.Fprintf(w, "   %s %d\n", labelStyle.Render("Candidates:"), s.Records)
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("Started:"), s.CreatedAt.Local().Format("Jan 2, 2006"))
		}
		return nil
	},
}

var useSessionCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Make a session active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}

		session, err := database.GetSession(cmd.Context(), a.DB, args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := config.Set("session", session.ID); err != nil {
			return fmt.Errorf("activate session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Active session: %s (%d candidates)\n", session.ID, session.Records)
		return nil
	},
}

var endSessionCmd = &cobra.Command{
	Use:   "end <session-id>",
	Short: "End a session and discard its history",
	Long:  "End a session and discard its history. Ending the default session only clears it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := currentApp(cmd)
		if err != nil {
			return err
		}

		id := args[0]
		if err := database.DeleteSession(cmd.Context(), a.DB, id); err != nil {
			if errors.Is(err, database.ErrSessionNotFound) {
				return fmt.Errorf("%s: %w", id, err)
			}
			return fmt.Errorf("end session: %w", err)
		}

		if id == a.Config.Session && id != database.DefaultSessionID {
			if err := config.Set("session", database.DefaultSessionID); err != nil {
				return fmt.Errorf("reset active session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Active session reset to %s\n", database.DefaultSessionID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Session ended: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(newSessionCmd)
	sessionCmd.AddCommand(listSessionsCmd)
	sessionCmd.AddCommand(useSessionCmd)
	sessionCmd.AddCommand(endSessionCmd)

	newSessionCmd.Flags().String("name", "", "name for the session")
}
