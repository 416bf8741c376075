package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	mlog "github.com/YuminosukeSato/mofsieve/pkg/log"
	"github.com/YuminosukeSato/mofsieve/pipeline"
)

var (
	version = "v0.0.1-default"
	commit  = ""
)

func main() {
	cmd := &cli.Command{
		Name:    "mofsieve",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Usage:   "Screen MOF candidates for quantum sieving with a linear baseline model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file (optional)",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the MOF property CSV file (overrides the config file)",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed for the train/eval partition",
				Value: -1,
			},
			&cli.FloatFlag{
				Name:  "test-fraction",
				Usage: "Fraction of records held out for evaluation",
				Value: -1,
			},
			&cli.StringFlag{
				Name:  "scaler",
				Usage: "Feature normalizer: \"minmax\" or \"standard\"",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, or error",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mofsieve: %v\n", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	mlog.SetupLogger(cmd.String("log-level"))
	mlog.RegisterWarningSink(os.Stderr)

	cfg := pipeline.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		loaded, err := pipeline.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Command-line flags win over the config file.
	if data := cmd.String("data"); data != "" {
		cfg.DataPath = data
	}
	if seed := cmd.Int("seed"); seed >= 0 {
		cfg.Seed = seed
	}
	if frac := cmd.Float("test-fraction"); frac > 0 {
		cfg.TestFraction = frac
	}
	if scaler := cmd.String("scaler"); scaler != "" {
		cfg.Scaler = scaler
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run()
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func printReport(r *pipeline.Report) {
	fmt.Printf("records:   %d loaded, %d dropped\n", r.RecordsLoaded, r.RecordsDropped)
	fmt.Printf("split:     %d train / %d eval\n", r.TrainRecords, r.EvalRecords)
	fmt.Printf("rank:      %d\n", r.Rank)
	fmt.Printf("mse:       %.6g\n", r.MSE)
	fmt.Printf("rmse:      %.6g\n", r.RMSE)
	fmt.Printf("mae:       %.6g\n", r.MAE)
	fmt.Printf("r2:        %.6g\n", r.R2)
}
