package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-risk-service/internal/adapter/csvsource"
	"github.com/couchcryptid/quake-risk-service/internal/export"
	"github.com/couchcryptid/quake-risk-service/internal/session"
)

func newImportCmd() *cobra.Command {
	var csvOut, pdfOut string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Classify every measurement in a CSV file",
		Long: "Reads a CSV with jarak, kedalaman and skala columns, classifies each row\n" +
			"and prints the table. Rows that are not numbers are reported and skipped.\n" +
			"Use --csv and/or --pdf to export the result; pass \"-\" to use the default\n" +
			"file name inside EXPORT_DIR.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession()
			if err != nil {
				return err
			}
			return runImport(cmd, sess, args[0], csvOut, pdfOut)
		},
	}

	cmd.Flags().StringVar(&csvOut, "csv", "", "export the table to this CSV path")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "export the report to this PDF path")
	return cmd
}

func runImport(cmd *cobra.Command, sess *session.Session, path, csvOut, pdfOut string) error {
	out := cmd.OutOrStdout()

	res, err := csvsource.ImportFile(cmd.Context(), path, sess)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	for _, rowErr := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", rowErr)
	}
	if !sess.IsEmpty() {
		if err := renderTable(out, sess.Rows()); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%d imported, %d skipped\n", res.Imported, len(res.Skipped))

	exports := []struct {
		dest string
		run  func(string) (string, error)
	}{
		{csvOut, sess.ExportCSV},
		{pdfOut, sess.ExportPDF},
	}
	for _, e := range exports {
		if e.dest == "" {
			continue
		}
		dest := e.dest
		if dest == "-" {
			dest = ""
		}
		written, err := e.run(dest)
		if errors.Is(err, export.ErrNoRecords) {
			fmt.Fprintln(out, export.NoRecordsMessage)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, exportedMessage(written))
	}
	return nil
}
