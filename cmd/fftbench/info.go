package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hedoluna/fft-go"
	"github.com/hedoluna/fft-go/internal/cpu"
)

type infoRow struct {
	Size          int    `json:"size" yaml:"size"`
	Kernel        string `json:"kernel" yaml:"kernel"`
	Registrations int    `json:"registrations" yaml:"registrations"`
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Dump the kernel registry and detected CPU features",
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().IntSlice("sizes", nil, "transform sizes to inspect")
	infoCmd.Flags().Bool("detail", false, "print the full registry report per size")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	sizes := viper.GetIntSlice("sizes")
	detail, err := cmd.Flags().GetBool("detail")
	if err != nil {
		return err
	}

	factory := fft.NewFactory(fft.WithLogger(logger))
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "cpu: %s\n", cpu.DetectFeatures())
	fmt.Fprintf(out, "specialized sizes: %v\n\n", factory.SupportedSizes())

	if detail {
		for _, n := range sizes {
			fmt.Fprintln(out, factory.Info(n))
		}

		return nil
	}

	var rows []infoRow

	for _, n := range sizes {
		if !factory.SupportsSize(n) {
			continue
		}

		kernel, err := factory.NewFFT(n)
		if err != nil {
			return err
		}

		rows = append(rows, infoRow{
			Size:          n,
			Kernel:        kernelName(kernel),
			Registrations: factory.RegistrationCount(n),
		})
	}

	return render(out, infoHeader, rows)
}
