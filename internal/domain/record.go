package domain

import "time"

// StepRecord is one row of a simulation time series.
// JSON field names match the column names consumers of the series expect.
type StepRecord struct {
	// TimeStep is the 1-based index of the step
	TimeStep int `json:"timeStep"`

	// NumberOfParticles is the size of the generation produced by this step
	NumberOfParticles int `json:"numberOfParticles"`

	// SpecificSurfaceArea is the total surface area of every particle
	SpecificSurfaceArea float64 `json:"specificSurfaceArea"`

	// ParticleVolume is the mean particle volume
	ParticleVolume float64 `json:"particleVolume"`

	// MeanParticleMass is the mean particle mass
	MeanParticleMass float64 `json:"meanParticleMass"`

	// ModelCreationTime is how long the division pass of this step took
	ModelCreationTime time.Duration `json:"modelCreationTime"`

	// CumuCreationTime is the sum of ModelCreationTime over steps 1..TimeStep
	CumuCreationTime time.Duration `json:"cumuCreationTime"`

	// ModelCalculationTime is how long characterizing this step took
	ModelCalculationTime time.Duration `json:"modelCalculationTime"`

	// CumuCalcTime is the sum of ModelCalculationTime over steps 1..TimeStep
	CumuCalcTime time.Duration `json:"cumuCalcTime"`

	// CumuModelTime is CumuCreationTime + CumuCalcTime
	CumuModelTime time.Duration `json:"cumuModelTime"`
}

// Series is the append-only time series of a simulation run.
// Rows are stored by value and never modified once appended.
type Series struct {
	rows []StepRecord
}

// NewSeries creates an empty series with room for capacity rows.
func NewSeries(capacity int) *Series {
	if capacity < 0 {
		capacity = 0
	}
	return &Series{rows: make([]StepRecord, 0, capacity)}
}

// Append adds a row to the end of the series.
func (s *Series) Append(r StepRecord) {
	s.rows = append(s.rows, r)
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return len(s.rows)
}

// At returns the row at index i (0-based).
func (s *Series) At(i int) StepRecord {
	return s.rows[i]
}

// Rows returns a copy of all rows in step order.
func (s *Series) Rows() []StepRecord {
	return append([]StepRecord(nil), s.rows...)
}

// Last returns the last row, or nil if the series is empty.
func (s *Series) Last() *StepRecord {
	if len(s.rows) == 0 {
		return nil
	}
	r := s.rows[len(s.rows)-1]
	return &r
}
