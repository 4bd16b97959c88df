// fftbench benchmarks and verifies the registered FFT kernels.
//
// Subcommands:
//
//	bench    measure ns/op per size, optionally against gonum and go-dsp
//	verify   cross-check transforms against an independent reference
//	info     dump the kernel registry and detected CPU features
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile      string
	verbose      bool
	outputFormat string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fftbench",
	Short: "Benchmark and verify fft-go kernels",
	Long: `fftbench exercises the fft-go kernel registry: it benchmarks the
kernel selected for each size, verifies transform output against an
independent reference implementation, and dumps the registry state.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}

		return initLogger()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ./fftbench.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (table, json, yaml)")

	viper.SetDefault("sizes", []int{8, 64, 1024, 4096, 65536})
	viper.SetDefault("iters", 50)
	viper.SetDefault("warmup", 5)
	viper.SetDefault("seed", 1)
	viper.SetDefault("tolerance", 1e-9)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("fftbench")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FFTBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
	}
}

// bindFlags lets config file and environment values back unset flags.
func bindFlags(cmd *cobra.Command) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		if err := viper.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	logger = log

	return nil
}
