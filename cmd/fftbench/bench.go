package main

import (
	"fmt"
	"math/rand"
	"time"

	godsp "github.com/mjibson/go-dsp/fft"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/hedoluna/fft-go"
)

type benchRow struct {
	Size     int     `json:"size" yaml:"size"`
	Library  string  `json:"library" yaml:"library"`
	Kernel   string  `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	NsPerOp  float64 `json:"ns_per_op" yaml:"ns_per_op"`
	OpsPerMs float64 `json:"ops_per_ms" yaml:"ops_per_ms"`
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the kernel selected for each size",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntSlice("sizes", nil, "transform sizes to benchmark")
	benchCmd.Flags().Int("iters", 0, "measured iterations per size")
	benchCmd.Flags().Int("warmup", 0, "warmup iterations per size")
	benchCmd.Flags().Int64("seed", 0, "rng seed for the input signal")
	benchCmd.Flags().Bool("compare", false, "also benchmark gonum and go-dsp")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	var (
		sizes   = viper.GetIntSlice("sizes")
		iters   = viper.GetInt("iters")
		warmup  = viper.GetInt("warmup")
		seed    = viper.GetInt64("seed")
		compare = viper.GetBool("compare")
	)

	factory := fft.NewFactory(fft.WithLogger(logger))
	rnd := rand.New(rand.NewSource(seed))

	var rows []benchRow

	for _, n := range sizes {
		if !factory.SupportsSize(n) {
			logger.Warn("skipping unsupported size", zap.Int("size", n))
			continue
		}

		re := make([]float64, n)
		im := make([]float64, n)

		for i := range re {
			re[i] = 2*rnd.Float64() - 1
			im[i] = 2*rnd.Float64() - 1
		}

		kernel, err := factory.NewFFT(n)
		if err != nil {
			return err
		}

		nsPerOp, err := timeTransform(kernel, re, im, iters, warmup)
		if err != nil {
			return err
		}

		rows = append(rows, benchRow{
			Size:     n,
			Library:  "fft-go",
			Kernel:   kernelName(kernel),
			NsPerOp:  nsPerOp,
			OpsPerMs: 1e6 / nsPerOp,
		})

		if compare {
			gonumNs := timeGonum(re, im, iters, warmup)
			godspNs := timeGoDSP(re, im, iters, warmup)

			rows = append(rows,
				benchRow{Size: n, Library: "gonum", NsPerOp: gonumNs, OpsPerMs: 1e6 / gonumNs},
				benchRow{Size: n, Library: "go-dsp", NsPerOp: godspNs, OpsPerMs: 1e6 / godspNs},
			)
		}
	}

	return render(cmd.OutOrStdout(), benchHeader, rows)
}

func kernelName(k fft.Kernel) string {
	if k.SupportedSize() == fft.SizeAny {
		return "generic"
	}

	return fmt.Sprintf("size-%d specialized", k.SupportedSize())
}

func timeTransform(k fft.Kernel, re, im []float64, iters, warmup int) (float64, error) {
	for i := 0; i < warmup; i++ {
		if _, err := k.Transform(re, im, true); err != nil {
			return 0, err
		}
	}

	start := time.Now()

	for i := 0; i < iters; i++ {
		if _, err := k.Transform(re, im, true); err != nil {
			return 0, err
		}
	}

	return float64(time.Since(start).Nanoseconds()) / float64(iters), nil
}

func timeGonum(re, im []float64, iters, warmup int) float64 {
	n := len(re)
	plan := fourier.NewCmplxFFT(n)

	src := make([]complex128, n)
	for i := range src {
		src[i] = complex(re[i], im[i])
	}

	dst := make([]complex128, n)

	for i := 0; i < warmup; i++ {
		plan.Coefficients(dst, src)
	}

	start := time.Now()

	for i := 0; i < iters; i++ {
		plan.Coefficients(dst, src)
	}

	return float64(time.Since(start).Nanoseconds()) / float64(iters)
}

func timeGoDSP(re, im []float64, iters, warmup int) float64 {
	src := make([]complex128, len(re))
	for i := range src {
		src[i] = complex(re[i], im[i])
	}

	for i := 0; i < warmup; i++ {
		godsp.FFT(src)
	}

	start := time.Now()

	for i := 0; i < iters; i++ {
		godsp.FFT(src)
	}

	return float64(time.Since(start).Nanoseconds()) / float64(iters)
}
