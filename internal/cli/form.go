package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/export"
	"github.com/couchcryptid/quake-risk-service/internal/session"
)

const (
	promptDistance  = "Jarak Dari Pantai (Km): "
	promptDepth     = "Kedalaman Pusat Gempa (Km): "
	promptMagnitude = "Skala Gempa: "

	formHelp = "Perintah: :csv [path], :pdf [path], :table, :quit"
)

func newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Enter measurements interactively",
		Long: "Prompts for distance, depth and magnitude in turn. Each complete entry\n" +
			"is classified and the table is printed. At the first prompt, enter\n" +
			":csv [path] or :pdf [path] to export, :table to reprint, :quit to exit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession()
			if err != nil {
				return err
			}
			return runForm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sess)
		},
	}
}

// runForm drives the entry loop until :quit or end of input. When a value is
// rejected only that field is asked for again; the others are kept.
func runForm(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session) error {
	f := &form{scanner: bufio.NewScanner(in), out: out, sess: sess}
	fmt.Fprintln(out, formHelp)

	for {
		first, ok := f.ask(promptDistance)
		if !ok {
			return f.scanner.Err()
		}
		if cmd, isCmd := strings.CutPrefix(strings.TrimSpace(first), ":"); isCmd {
			if quit := f.command(cmd); quit {
				return nil
			}
			continue
		}

		values := map[string]string{domain.FieldDistance: first}
		for _, field := range []string{domain.FieldDepth, domain.FieldMagnitude} {
			if values[field], ok = f.ask(fieldPrompts[field]); !ok {
				return f.scanner.Err()
			}
		}

		for {
			_, err := sess.Submit(ctx, values[domain.FieldDistance], values[domain.FieldDepth], values[domain.FieldMagnitude])
			if err == nil {
				break
			}
			var fe *domain.FieldError
			if !errors.As(err, &fe) {
				return err
			}
			fmt.Fprintf(out, "%s (%s)\n", domain.InvalidInputMessage, fe.Field)
			if values[fe.Field], ok = f.ask(fieldPrompts[fe.Field]); !ok {
				return f.scanner.Err()
			}
		}
		if err := renderTable(out, sess.Rows()); err != nil {
			return err
		}
	}
}

var fieldPrompts = map[string]string{
	domain.FieldDistance:  promptDistance,
	domain.FieldDepth:     promptDepth,
	domain.FieldMagnitude: promptMagnitude,
}

type form struct {
	scanner *bufio.Scanner
	out     io.Writer
	sess    *session.Session
}

func (f *form) ask(prompt string) (string, bool) {
	fmt.Fprint(f.out, prompt)
	if !f.scanner.Scan() {
		fmt.Fprintln(f.out)
		return "", false
	}
	return f.scanner.Text(), true
}

// command runs a colon command and reports whether the form should exit.
func (f *form) command(line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "quit", "q":
		return true
	case "table":
		if err := renderTable(f.out, f.sess.Rows()); err != nil {
			fmt.Fprintln(f.out, err)
		}
	case "csv":
		f.report(f.sess.ExportCSV(arg))
	case "pdf":
		f.report(f.sess.ExportPDF(arg))
	default:
		fmt.Fprintln(f.out, formHelp)
	}
	return false
}

func (f *form) report(path string, err error) {
	switch {
	case errors.Is(err, export.ErrNoRecords):
		fmt.Fprintln(f.out, export.NoRecordsMessage)
	case err != nil:
		fmt.Fprintf(f.out, "Gagal mengekspor data: %v\n", err)
	default:
		fmt.Fprintln(f.out, exportedMessage(path))
	}
}

func exportedMessage(path string) string {
	return "Data berhasil diekspor ke " + path
}
