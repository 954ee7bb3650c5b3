// Package metrics exports simulation progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/weathering/internal/domain"
)

const namespace = "weathering"

// Observer implements ports.StepObserver by updating Prometheus collectors.
type Observer struct {
	steps         prometheus.Counter
	particles     prometheus.Gauge
	surfaceArea   prometheus.Gauge
	meanVolume    prometheus.Gauge
	creationTime  prometheus.Histogram
	calculateTime prometheus.Histogram
}

// NewObserver creates an observer and registers its collectors with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	buckets := prometheus.ExponentialBuckets(1e-6, 4, 14)
	o := &Observer{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Time steps completed across all runs.",
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Particle count of the most recent generation.",
		}),
		surfaceArea: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "specific_surface_area",
			Help:      "Total surface area of the most recent generation.",
		}),
		meanVolume: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_particle_volume",
			Help:      "Mean particle volume of the most recent generation.",
		}),
		creationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_creation_seconds",
			Help:      "Time spent dividing particles per step.",
			Buckets:   buckets,
		}),
		calculateTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_calculation_seconds",
			Help:      "Time spent characterizing a generation per step.",
			Buckets:   buckets,
		}),
	}

	for _, c := range []prometheus.Collector{
		o.steps, o.particles, o.surfaceArea, o.meanVolume, o.creationTime, o.calculateTime,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// OnStep records one completed step.
func (o *Observer) OnStep(r domain.StepRecord) {
	o.steps.Inc()
	o.particles.Set(float64(r.NumberOfParticles))
	o.surfaceArea.Set(r.SpecificSurfaceArea)
	o.meanVolume.Set(r.ParticleVolume)
	o.creationTime.Observe(r.ModelCreationTime.Seconds())
	o.calculateTime.Observe(r.ModelCalculationTime.Seconds())
}
