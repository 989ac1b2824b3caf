// antenna-optimizer finds parabolic reflector designs that trade gain
// against weight for a UAV ground station, and reports the best
// balanced design along with the full trade-off front.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/uavlink/antenna-optimizer/pkg/app"
	"github.com/uavlink/antenna-optimizer/pkg/config"
	"github.com/uavlink/antenna-optimizer/pkg/plot"
	"github.com/uavlink/antenna-optimizer/pkg/session"
)

func main() {
	var (
		configPath string
		outputDir  string
		plots      bool
		params     app.UserParameters
	)

	pflag.StringVar(&configPath, "config", "", "path to a YAML configuration file (optional, built-in defaults otherwise)")
	pflag.StringVar(&outputDir, "output-dir", ".", "directory for the session file, CSV export and plots")
	pflag.BoolVar(&plots, "plots", true, "render HTML plots of the Pareto front and convergence")
	pflag.Float64Var(&params.MinDiameterM, "min-diameter", 0, "minimum reflector diameter in meters (0 = configured default)")
	pflag.Float64Var(&params.MaxDiameterM, "max-diameter", 0, "maximum reflector diameter in meters (0 = configured default)")
	pflag.Float64Var(&params.MaxPayloadG, "max-payload", 0, "payload weight budget in grams (0 = configured default)")
	pflag.Float64Var(&params.MinFDRatio, "min-fd", 0, "minimum focal length to diameter ratio (0 = configured default)")
	pflag.Float64Var(&params.MaxFDRatio, "max-fd", 0, "maximum focal length to diameter ratio (0 = configured default)")
	pflag.Float64Var(&params.DesiredRangeKm, "range", 0, "desired link range in kilometers (0 = configured default)")

	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	defer klog.Flush()

	if err := run(configPath, outputDir, plots, params); err != nil {
		klog.ErrorS(err, "optimization run failed")
		os.Exit(1)
	}
}

func run(configPath, outputDir string, plots bool, params app.UserParameters) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	facade, err := app.New(cfg, nil)
	if err != nil {
		return err
	}

	klog.InfoS("starting optimization",
		"populationSize", cfg.Optimization.PopulationSize,
		"maxGenerations", cfg.Optimization.MaxGenerations,
		"seed", cfg.Optimization.Seed)

	report, err := facade.RunOptimization(params)
	if err != nil {
		return err
	}
	printReport(report)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	s := session.New(params, report)
	sessionPath := filepath.Join(outputDir, "session.json")
	if err := s.Save(sessionPath); err != nil {
		return err
	}
	csvPath := filepath.Join(outputDir, "pareto_front.csv")
	if err := s.ExportCSV(csvPath); err != nil {
		return err
	}
	klog.InfoS("saved results", "session", sessionPath, "csv", csvPath)

	if plots {
		frontPath := filepath.Join(outputDir, "pareto_front.html")
		if err := plot.ParetoFront(report.ParetoFront, report.OptimalGeometry, frontPath); err != nil {
			return err
		}
		convergencePath := filepath.Join(outputDir, "convergence.html")
		if err := plot.Convergence(report.Convergence, convergencePath); err != nil {
			return err
		}
		klog.InfoS("rendered plots", "front", frontPath, "convergence", convergencePath)
	}
	return nil
}

func printReport(r *app.Report) {
	fmt.Println("Recommended design:")
	fmt.Printf("  Diameter:      %.2f mm\n", r.OptimalDiameterMm)
	fmt.Printf("  Focal length:  %.2f mm\n", r.OptimalFocalLengthMm)
	fmt.Printf("  Depth:         %.2f mm\n", r.OptimalDepthMm)
	fmt.Printf("  f/D ratio:     %.3f\n", r.FDRatio)
	fmt.Printf("  Gain:          %.2f dBi\n", r.ExpectedGainDBi)
	fmt.Printf("  Beamwidth:     %.2f deg\n", r.BeamwidthDeg)
	fmt.Printf("  Weight:        %.3f kg\n", r.WeightKg)
	fmt.Printf("Pareto front:    %d designs\n", len(r.ParetoFront))
}
