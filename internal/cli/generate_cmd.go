package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/domain"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		input       string
		output      string
		detailLevel string
		format      string
		appendix    bool
		acknowledge bool
		enhance     bool
		save        bool
		sections    []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report from an assessment JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readAssessment(cmd, input)
			if err != nil {
				return err
			}

			opts := app.Engine.MergeOptions(domain.ReportOptions{
				DetailLevel:        domain.DetailLevel(detailLevel),
				Format:             domain.OutputFormat(format),
				IncludeAppendices:  appendix,
				CustomSections:     sections,
				Enhance:            enhance,
				AcknowledgeInvalid: acknowledge,
			})

			generated, err := app.Engine.Generate(cmd.Context(), record, opts)
			if err != nil {
				return err
			}

			for _, f := range generated.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: section %q failed: %s\n", f.Title, f.Reason)
			}

			if save {
				if app.Store == nil {
					return fmt.Errorf("--save requires a report archive")
				}
				if err := app.Store.Save(cmd.Context(), archive.FromReport(generated)); err != nil {
					return fmt.Errorf("archiving report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "archived report %s\n", generated.ID)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), generated.Content)
				return nil
			}
			if err := os.WriteFile(output, []byte(generated.Content), 0644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sections to %s\n", len(generated.Sections), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Assessment JSON file, or - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&detailLevel, "detail-level", "", "brief, standard or detailed")
	cmd.Flags().StringVar(&format, "format", "", "plain, markdown or html")
	cmd.Flags().BoolVar(&appendix, "appendix", false, "Include the reference-table appendix")
	cmd.Flags().BoolVar(&acknowledge, "acknowledge-invalid", false, "Generate even when the assessment has invalid values")
	cmd.Flags().BoolVar(&enhance, "enhance", false, "Run sections through the text enhancement service")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the generated report")
	cmd.Flags().StringSliceVar(&sections, "section", nil, "Additional registered section to include (repeatable)")

	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an assessment for invalid enum values",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readAssessment(cmd, input)
			if err != nil {
				return err
			}

			result := app.Engine.Validate(record)
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "Assessment is valid.")
				return nil
			}
			for _, reason := range result.Reasons {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", reason)
			}
			return fmt.Errorf("assessment has %d invalid value(s)", len(result.Errors))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Assessment JSON file, or - for stdin")
	return cmd
}

func newCostsCmd(app *App) *cobra.Command {
	var (
		input  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Summarize attendant-care hours and monthly costs",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readAssessment(cmd, input)
			if err != nil {
				return err
			}

			var tasks []domain.CareTask
			if record.Care != nil {
				tasks = record.Care.Tasks
			}
			summary := app.Engine.CareCosts(tasks)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, summary)
			}

			fmt.Fprintf(out, "Rate table: %s\n", summary.RateTable)
			for _, level := range domain.CareLevels {
				l, ok := summary.Levels[level]
				if !ok {
					continue
				}
				fmt.Fprintf(out, "%-45s %6.2f h/day  %7.2f h/month  $%9.2f/month\n",
					level.Label(), l.HoursPerDay, l.HoursPerMonth, l.MonthlyTotal)
			}
			fmt.Fprintf(out, "Total: %.2f h/month, $%.2f/month\n", summary.TotalMonthlyHours, summary.TotalMonthly)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Assessment JSON file, or - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}
