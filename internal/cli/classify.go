package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

func newClassifyCmd() *cobra.Command {
	var distance, depth, magnitude string

	cmd := &cobra.Command{
		Use:     "classify",
		Short:   "Classify a single measurement and print it as JSON",
		Example: "  quake-risk classify --jarak 10 --kedalaman 20 --skala 7.5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := domain.ParseMeasurement(distance, depth, magnitude)
			if err != nil {
				return errors.New(domain.InvalidInputMessage)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(domain.Classify(m))
		},
	}

	cmd.Flags().StringVar(&distance, "jarak", "", "distance from the coast (km)")
	cmd.Flags().StringVar(&depth, "kedalaman", "", "hypocenter depth (km)")
	cmd.Flags().StringVar(&magnitude, "skala", "", "magnitude")
	for _, name := range []string{"jarak", "kedalaman", "skala"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
