package mocks

import (
	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Results are consumed from queues in call order; an exhausted queue
// returns 0, which keeps the consuming code on its lowest-value path.
type MockRandom struct {
	IntnResults []int
	intnIndex   int

	RangeResults []int
	rangeIndex   int

	PickResults []int
	pickIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// IntRange returns the next queued result, or lo if none remaining
func (r *MockRandom) IntRange(lo, hi int) int {
	if r.rangeIndex >= len(r.RangeResults) {
		return lo
	}
	result := r.RangeResults[r.rangeIndex]
	r.rangeIndex++
	return result
}

// Pick returns the next queued result, or 0 if none remaining
func (r *MockRandom) Pick(n int) int {
	if r.pickIndex >= len(r.PickResults) {
		return 0
	}
	result := r.PickResults[r.pickIndex]
	r.pickIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueIntRange adds values to the IntRange result queue
func (r *MockRandom) QueueIntRange(values ...int) {
	r.RangeResults = append(r.RangeResults, values...)
}

// QueuePick adds values to the Pick result queue
func (r *MockRandom) QueuePick(values ...int) {
	r.PickResults = append(r.PickResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.RangeResults = nil
	r.rangeIndex = 0
	r.PickResults = nil
	r.pickIndex = 0
}
