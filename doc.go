// Package mofsieve provides a screening pipeline for metal-organic framework
// (MOF) candidates in hydrogen-isotope quantum sieving, built on a linear
// baseline model.
//
// The pipeline synthesizes a sieving-score target from volumetric uptake and
// pore volume, normalizes the geometric and chemical descriptors, splits the
// records deterministically into training and evaluation subsets, and fits an
// ordinary least squares model whose evaluation MSE is the screening baseline.
//
// # Quick Start
//
// Run the full pipeline over a property table:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mofsieve/pipeline"
//	)
//
//	func main() {
//	    cfg := pipeline.DefaultConfig()
//	    cfg.DataPath = "mof_properties.csv"
//
//	    p, err := pipeline.New(cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    report, err := p.Run()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("baseline MSE: %g\n", report.MSE)
//	}
//
// # Packages
//
// The module is organized into several packages:
//
//   - dataset: CSV loading, the column-major property table, and the
//     sieving-score target synthesizer
//   - preprocessing: MinMaxScaler and StandardScaler feature normalizers
//   - modelselection: the seeded, deterministic train/eval splitter
//   - linear: ordinary least squares with a pseudo-inverse fallback for
//     rank-deficient design matrices
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R²)
//   - pipeline: configuration and stage orchestration
//   - core/model: estimator interfaces and shared fitted-state tracking
//   - core/parallel: parallel processing utilities
//
// Each stage is usable on its own; the pipeline package only wires them
// together in the reference order.
//
// # Determinism
//
// A run is fully determined by its configuration: the splitter derives its
// permutation from the configured seed, and every stage is otherwise
// order-preserving, so repeated runs over the same file produce identical
// reports.
package mofsieve
