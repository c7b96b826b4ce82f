package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newReportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse and manage archived reports",
	}

	cmd.AddCommand(
		newReportsListCmd(app),
		newReportsShowCmd(app),
		newReportsDeleteCmd(app),
		newReportsExportCmd(app),
		newReportsImportCmd(app),
	)

	return cmd
}

func newReportsListCmd(app *App) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.Store.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tASSESSMENT\tLEVEL\tFORMAT\tSECTIONS\tCREATED")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.AssessmentID, r.DetailLevel, r.Format, r.SectionCount, r.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reports")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of reports to skip")
	return cmd
}

func newReportsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Content)
			return nil
		},
	}
}

func newReportsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newReportsExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export all archived reports to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := app.Store.ExportJSON(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported reports to %s\n", args[0])
			return nil
		},
	}
}

func newReportsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import reports from a JSON export, skipping existing IDs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			imported, skipped, err := app.Store.ImportJSON(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d, skipped %d\n", imported, skipped)
			return nil
		},
	}
}
