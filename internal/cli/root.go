// Package cli implements the report-cli command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/report"
)

// App holds the components used by CLI commands.
type App struct {
	Engine *report.Engine
	Store  archive.Store // nil disables the reports subcommands
	Logger *logrus.Logger
}

func (a *App) logger() *logrus.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewRootCmd creates the top-level "report-cli" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "report-cli",
		Short:         "Generate assessment reports from assessment records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newValidateCmd(app),
		newCostsCmd(app),
		newMigrateCmd(app),
	)
	if app.Store != nil {
		root.AddCommand(newReportsCmd(app))
	}

	return root
}

// readAssessment decodes an assessment record from a file, or stdin for "-"
func readAssessment(cmd *cobra.Command, path string) (*domain.AssessmentRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("--input is required")
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening assessment: %w", err)
		}
		defer f.Close()
		r = f
	}

	var record domain.AssessmentRecord
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding assessment: %w", err)
	}
	return &record, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
