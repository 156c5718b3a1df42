package cmd

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keygenCmd)
}

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA key pair and print it in hex",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		start := time.Now()
		kp, err := newGenerator(c).Generate(cmd.Context())
		if err != nil {
			return errors.Wrapf(err, "failed to generate %d-bit key pair", c.Bits)
		}
		log.WithFields(log.Fields{
			"modulus_bits": kp.N().BitLen(),
			"elapsed":      time.Since(start).Round(time.Millisecond),
		}).Info("Generated key pair")

		fmt.Printf("n = %s\n", kp.N())
		fmt.Printf("e = %s\n", kp.E())
		fmt.Printf("d = %s\n", kp.D())
		fmt.Printf("p = %s\n", kp.P())
		fmt.Printf("q = %s\n", kp.Q())
		return nil
	},
}
