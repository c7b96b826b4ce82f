package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assessment-report-engine/internal/database"
)

// DatabaseURLEnv is read when --database-url is not given
const DatabaseURLEnv = "ASSESSMENT_REPORT_ARCHIVE_POSTGRES_URL"

func newMigrateCmd(app *App) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL report archive schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL of the report archive (default $"+DatabaseURLEnv+")")

	withRunner := func(fn func(cmd *cobra.Command, runner *database.MigrationRunner) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			url := databaseURL
			if url == "" {
				url = os.Getenv(DatabaseURLEnv)
			}
			if url == "" {
				return fmt.Errorf("--database-url or %s is required", DatabaseURLEnv)
			}

			runner, err := database.NewMigrationRunner(url, app.logger())
			if err != nil {
				return err
			}
			defer runner.Close()
			return fn(cmd, runner)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(cmd *cobra.Command, runner *database.MigrationRunner) error {
				if err := runner.Up(cmd.Context()); err != nil {
					return err
				}
				return printVersion(cmd, runner)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(cmd *cobra.Command, runner *database.MigrationRunner) error {
				if err := runner.Down(cmd.Context()); err != nil {
					return err
				}
				return printVersion(cmd, runner)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE:  withRunner(printVersion),
		},
	)
	return cmd
}

func printVersion(cmd *cobra.Command, runner *database.MigrationRunner) error {
	version, dirty, err := runner.Version()
	if errors.Is(err, database.ErrNoVersion) {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d\n", version)
	return nil
}
