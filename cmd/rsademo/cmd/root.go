package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/mprsa/internal/config"
	"github.com/mahdiidarabi/mprsa/pkg/rsakey"
)

var (
	cfgFile string
	// Verbose boolean flag for verbose logging
	Verbose bool
	// AppVersion stores the build version
	AppVersion string

	v = config.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "rsademo",
	Short:         "Multi-precision RSA key generation and round trip demo",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	log.SetHandler(clihander.Default)

	cobra.OnInitialize(initConfig)

	def := rsakey.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rsademo/config.yaml)")
	pf.BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	pf.IntP("bits", "b", def.Bits, "size of each prime factor in bits")
	pf.Int("exponent-bits", def.ExponentBits, "size of the public exponent in bits (0 = same as --bits)")
	pf.IntP("trials", "t", def.Trials, "primality test rounds")
	pf.IntP("workers", "w", def.Workers, "parallel prime search workers (0 = number of CPUs)")
	pf.Int64("max-candidates", def.MaxCandidates, "candidate budget per prime (0 = unbounded)")
	pf.Int("exponent-attempts", def.ExponentAttempts, "public exponent draws before giving up")
	pf.StringP("input", "i", "text.txt", "message file (- for stdin)")
	for _, name := range []string{
		"verbose", "bits", "exponent-bits", "trials", "workers",
		"max-candidates", "exponent-attempts", "input",
	} {
		v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.Version = AppVersion
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	used, err := config.ReadFile(v, cfgFile)
	cobra.CheckErr(err)
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// loadConfig decodes the merged flags, environment and config file.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if Verbose || c.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	return c, nil
}

func newGenerator(c *config.Config) *rsakey.Generator {
	return rsakey.NewGenerator().WithConfig(c.KeyConfig())
}
