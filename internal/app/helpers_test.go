package app

import (
	"sync"
	"time"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
)

// mockLogger implements ports.Logger for testing and keeps debug entries.
type mockLogger struct {
	mu    sync.Mutex
	debug []logEntry
}

type logEntry struct {
	msg    string
	fields []ports.Field
}

func (m *mockLogger) Debug(msg string, fields ...ports.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debug = append(m.debug, logEntry{msg: msg, fields: fields})
}
func (m *mockLogger) Info(msg string, fields ...ports.Field)  {}
func (m *mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (m *mockLogger) Error(msg string, fields ...ports.Field) {}

func (e logEntry) field(key string) (interface{}, bool) {
	for _, f := range e.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// fixedAxis always chooses the same axis.
type fixedAxis domain.Axis

func (f fixedAxis) ChooseAxis() domain.Axis { return domain.Axis(f) }

// cyclingAxis walks 1, 2, 3, 1, ...
type cyclingAxis struct{ n int }

func (c *cyclingAxis) ChooseAxis() domain.Axis {
	c.n++
	return domain.Axis((c.n-1)%3 + 1)
}

// firstK samples the first k indices and always picks the same axis.
type firstK struct {
	axis domain.Axis
}

func (f firstK) ChooseAxis() domain.Axis { return f.axis }

func (f firstK) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	out := make([]int, k)
	for i := range out {
		out[i] = i
	}
	return out
}

// recordingObserver collects every record it is handed.
type recordingObserver struct {
	mu      sync.Mutex
	records []domain.StepRecord
}

func (r *recordingObserver) OnStep(rec domain.StepRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// tickingClock advances one millisecond per call.
func tickingClock() ports.Clock {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func mustParticle(d1, d2, d3, density float64) domain.Particle {
	p, err := domain.NewParticle(d1, d2, d3, density)
	if err != nil {
		panic(err)
	}
	return p
}
