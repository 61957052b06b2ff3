// Package cli implements the quake-risk commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-risk-service/internal/config"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
	"github.com/couchcryptid/quake-risk-service/internal/session"
	"github.com/couchcryptid/quake-risk-service/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

// NewRootCmd builds the quake-risk command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quake-risk",
		Short: "Classify earthquake measurements by tsunami risk",
		Long: "quake-risk classifies earthquake measurements (distance from the coast,\n" +
			"hypocenter depth, magnitude) into categorical bands and a tsunami-risk\n" +
			"label, keeps the results for the session and exports them to CSV or PDF.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	root.AddCommand(newFormCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newServeCmd())
	return root
}

// loadSession reads config and builds a fresh session for the short-lived
// commands.
func loadSession() (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)
	return session.New(store.New(), cfg.ExportDir, session.WithLogger(logger)), nil
}
