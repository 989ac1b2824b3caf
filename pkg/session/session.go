// Package session persists optimization runs: the parameters that
// produced a result together with the result itself, so a design study
// can be reloaded, compared and exported later.
package session

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/uavlink/antenna-optimizer/pkg/app"
)

// ErrCorruptSession marks a session file that parsed but does not hold
// a usable run.
var ErrCorruptSession = errors.New("corrupt session file")

// Session is one saved optimization run.
type Session struct {
	SavedAt        time.Time          `json:"saved_at"`
	UserParameters app.UserParameters `json:"user_parameters"`
	Results        *app.Report        `json:"results"`
}

// New stamps a session with the current time.
func New(params app.UserParameters, report *app.Report) Session {
	return Session{SavedAt: time.Now().UTC(), UserParameters: params, Results: report}
}

// Save writes the session as indented JSON.
func (s Session) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Load reads a session file and verifies it holds a complete run.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return Session{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s Session) validate() error {
	if s.Results == nil {
		return fmt.Errorf("%w: missing results", ErrCorruptSession)
	}
	if s.Results.OptimalDiameterMm <= 0 {
		return fmt.Errorf("%w: non-positive optimal diameter", ErrCorruptSession)
	}
	if len(s.Results.ParetoFront) == 0 {
		return fmt.Errorf("%w: empty Pareto front", ErrCorruptSession)
	}
	return nil
}

// ExportCSV writes the Pareto front as a flat table, one design per
// row, for spreadsheet analysis.
func (s Session) ExportCSV(path string) error {
	if err := s.validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"diameter_m", "focal_length_m", "f_d_ratio", "depth_m", "gain_dbi", "beamwidth_deg", "weight_kg"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, pt := range s.Results.ParetoFront {
		row := []string{
			formatFloat(pt.Geometry.DiameterM),
			formatFloat(pt.Geometry.FocalLengthM),
			formatFloat(pt.Geometry.FDRatio()),
			formatFloat(pt.Geometry.DepthM()),
			formatFloat(pt.Metrics.GainDBi),
			formatFloat(pt.Metrics.BeamwidthDeg),
			formatFloat(pt.WeightKg),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
