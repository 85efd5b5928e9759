package cmd

import (
	"flag"
	"fmt"
	"os"

	"cltmm/src/operations"
	"cltmm/src/utils"
)

// TimingCommand handles the timing subcommand: the CLI timing harness named
// in spec.md §1/§6. It is deliberately thin -- it reports the numbers
// RunTiming already computed and exits non-zero only on assertion failure.
func TimingCommand(args []string) error {
	fs := flag.NewFlagSet("timing", flag.ExitOnError)

	var (
		instantiation = fs.String("instantiation", "Toy", "Small, Medium, Large, Extra or Toy")
		quiet         = fs.Bool("quiet", false, "Suppress per-stage progress output")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s timing [--instantiation NAME]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTime key setup and report a derived session key\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	progress := utils.NewStageProgress(*quiet)
	result, err := operations.RunTiming(operations.TimingOptions{
		Instantiation: *instantiation,
		Progress:      progress.Mark,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nInstantiation: %s\n", result.Instantiation)
	fmt.Printf("Keygen: %s\n", utils.FormatDuration(result.KeygenTime))
	fmt.Printf("Modulus x0: %d bits (%.2f bits precise)\n", result.ModulusBits, result.ModulusEntropy)
	fmt.Printf("Noise after one multiplication by y: min=%d mean=%.1f max=%d stddev=%.2f (n=%d)\n",
		result.NoiseAfterY.Min, result.NoiseAfterY.Mean, result.NoiseAfterY.Max,
		result.NoiseAfterY.StdDev, result.NoiseAfterY.SampleCount)
	fmt.Printf("Session key: %x\n", result.SessionKey)

	fmt.Printf("\nProjected keygen time (extrapolated from this run's per-slot rate):\n")
	for _, proj := range result.Projected {
		fmt.Printf("  %-8s %s\n", proj.Instantiation+":", utils.FormatDuration(proj.Estimated))
	}

	return nil
}
