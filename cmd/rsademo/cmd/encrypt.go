package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/mprsa/internal/bench"
)

var (
	showCiphertext bool
	printOutput    bool
)

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().BoolVarP(&showCiphertext, "ciphertext", "c", false, "print the ciphertext blocks in hex")
	encryptCmd.Flags().BoolVarP(&printOutput, "print", "p", false, "print the recovered message")
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [FILE]",
	Short: "Sign with key A, encrypt for key B and reverse the round trip",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		input := c.Input
		if len(args) > 0 {
			input = args[0]
		}

		data, err := readInput(input)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", input)
		}

		r, err := bench.New(newGenerator(c)).RoundTrip(cmd.Context(), data)
		if err != nil {
			return errors.Wrap(err, "round trip failed")
		}
		log.WithFields(r.Fields()).Info("Round trip OK")

		if showCiphertext {
			for _, b := range r.Ciphertext {
				fmt.Println(b)
			}
		}
		if printOutput {
			os.Stdout.Write(r.Output)
		}
		return nil
	},
}
