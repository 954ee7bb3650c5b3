package ports

import "github.com/bft-labs/weathering/internal/domain"

// AxisChooser draws one of {1, 2, 3} uniformly.
type AxisChooser = domain.AxisChooser

// Sampler selects particles to divide under the staged model.
// *random.Stream satisfies this interface.
type Sampler interface {
	AxisChooser

	// Sample returns k distinct indices drawn uniformly from [0, n).
	Sample(n, k int) []int
}
