package cmd

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/mprsa/internal/bench"
)

var roundTripFlag bool

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntP("runs", "n", 30, "number of runs")
	benchCmd.Flags().BoolVarP(&roundTripFlag, "roundtrip", "r", false, "time full round trips on --input instead of key generation")
	v.BindPFlag("runs", benchCmd.Flags().Lookup("runs"))
}

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time key generation or full round trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		h := bench.New(newGenerator(c))

		if !roundTripFlag {
			r, err := h.KeyGeneration(cmd.Context(), c.Runs)
			if err != nil {
				return errors.Wrap(err, "key generation benchmark failed")
			}
			log.WithFields(log.Fields{
				"bits":    c.Bits,
				"runs":    r.Runs,
				"total":   r.Total,
				"average": r.Average,
			}).Info("Key generation")
			return nil
		}

		data, err := readInput(c.Input)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", c.Input)
		}
		var totals bench.Totals
		for i := 0; i < c.Runs; i++ {
			r, err := h.RoundTrip(cmd.Context(), data)
			if err != nil {
				return errors.Wrapf(err, "run %d failed", i)
			}
			totals = totals.Add(r)
			log.WithFields(r.Fields()).Debugf("Run %d", i)
		}
		log.WithFields(totals.Fields()).Info("Round trips")
		return nil
	},
}
