package cmd

import (
	"crypto/rand"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/mprsa/fixtures"
	"github.com/mahdiidarabi/mprsa/internal/parser"
	"github.com/mahdiidarabi/mprsa/internal/selfcheck"
)

var (
	vectorsPath string
	selfOpts    = selfcheck.DefaultOptions()
)

func init() {
	rootCmd.AddCommand(selftestCmd)

	selftestCmd.Flags().StringVar(&vectorsPath, "vectors", "", "JSON or CSV vector file (default is the embedded set)")
	selftestCmd.Flags().Uint64Var(&selfOpts.PrimalityLimit, "limit", selfOpts.PrimalityLimit, "upper bound of the primality accuracy sweep")
	selftestCmd.Flags().IntVar(&selfOpts.GeneratorSamples, "samples", selfOpts.GeneratorSamples, "primes drawn by the generator accuracy check")
	selftestCmd.Flags().IntVar(&selfOpts.CurveRounds, "rounds", selfOpts.CurveRounds, "random operands per curve cross-check")
}

// selftestCmd represents the selftest command
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check the arithmetic engine against vectors and curve implementations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		selfOpts.Trials = c.Trials
		if err := selfOpts.Validate(); err != nil {
			return errors.Wrap(err, "bad selftest flags")
		}

		var set *parser.VectorSet
		if vectorsPath != "" {
			set, err = parser.ParsePath(vectorsPath)
		} else {
			set, err = parser.ParseFile(fixtures.FS, fixtures.VectorsJSON)
		}
		if err != nil {
			return errors.Wrap(err, "failed to load vectors")
		}

		results, err := selfcheck.Run(cmd.Context(), rand.Reader, set, selfOpts, log.Log)
		if err != nil {
			return errors.Wrap(err, "self test interrupted")
		}
		failed := 0
		for _, r := range results {
			if !r.Passed() {
				failed++
			}
		}
		if failed > 0 {
			return errors.Errorf("%d of %d checks failed", failed, len(results))
		}
		log.Infof("All %d checks passed", len(results))
		return nil
	},
}
