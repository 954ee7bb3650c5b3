// Package report renders a simulation series for people and tools.
//
// Three formats are supported: an aligned text table for terminals, CSV
// with one column per record field, and indented JSON. Durations are
// written in seconds so the output matches the units analysis scripts
// expect.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bft-labs/weathering/internal/domain"
)

// Format selects how a series is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON}

// Columns are the CSV/table headers in record order.
var Columns = []string{
	"timeStep",
	"numberOfParticles",
	"specificSurfaceArea",
	"particleVolume",
	"meanParticleMass",
	"modelCreationTime",
	"cumuCreationTime",
	"modelCalculationTime",
	"cumuCalcTime",
	"cumuModelTime",
}

// ParseFormat returns the Format named s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want table, csv or json)", s)
}

// Write renders rows to w in format f.
func Write(w io.Writer, f Format, rows []domain.StepRecord) error {
	switch f {
	case FormatTable:
		return writeTable(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		return writeJSON(w, rows)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func fields(r domain.StepRecord) []string {
	return []string{
		strconv.Itoa(r.TimeStep),
		strconv.Itoa(r.NumberOfParticles),
		strconv.FormatFloat(r.SpecificSurfaceArea, 'g', -1, 64),
		strconv.FormatFloat(r.ParticleVolume, 'g', -1, 64),
		strconv.FormatFloat(r.MeanParticleMass, 'g', -1, 64),
		seconds(r.ModelCreationTime),
		seconds(r.CumuCreationTime),
		seconds(r.ModelCalculationTime),
		seconds(r.CumuCalcTime),
		seconds(r.CumuModelTime),
	}
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'g', -1, 64)
}

func writeTable(w io.Writer, rows []domain.StepRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(Columns, "\t")+"\t")
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(fields(r), "\t")+"\t")
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, rows []domain.StepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(fields(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonRecord mirrors StepRecord with durations in seconds.
type jsonRecord struct {
	TimeStep             int     `json:"timeStep"`
	NumberOfParticles    int     `json:"numberOfParticles"`
	SpecificSurfaceArea  float64 `json:"specificSurfaceArea"`
	ParticleVolume       float64 `json:"particleVolume"`
	MeanParticleMass     float64 `json:"meanParticleMass"`
	ModelCreationTime    float64 `json:"modelCreationTime"`
	CumuCreationTime     float64 `json:"cumuCreationTime"`
	ModelCalculationTime float64 `json:"modelCalculationTime"`
	CumuCalcTime         float64 `json:"cumuCalcTime"`
	CumuModelTime        float64 `json:"cumuModelTime"`
}

func writeJSON(w io.Writer, rows []domain.StepRecord) error {
	out := make([]jsonRecord, len(rows))
	for i, r := range rows {
		out[i] = jsonRecord{
			TimeStep:             r.TimeStep,
			NumberOfParticles:    r.NumberOfParticles,
			SpecificSurfaceArea:  r.SpecificSurfaceArea,
			ParticleVolume:       r.ParticleVolume,
			MeanParticleMass:     r.MeanParticleMass,
			ModelCreationTime:    r.ModelCreationTime.Seconds(),
			CumuCreationTime:     r.CumuCreationTime.Seconds(),
			ModelCalculationTime: r.ModelCalculationTime.Seconds(),
			CumuCalcTime:         r.CumuCalcTime.Seconds(),
			CumuModelTime:        r.CumuModelTime.Seconds(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
