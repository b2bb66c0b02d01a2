// Package testutils provides mock implementations for testing
package testutils

import (
	"github.com/stretchr/testify/mock"
)

// MockRand provides a mock jitter source
type MockRand struct {
	mock.Mock
}

// Float64 returns the next mocked draw
func (m *MockRand) Float64() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

// SequenceRand replays a fixed list of draws, then repeats the last one
type SequenceRand struct {
	Values []float64
	draws  int
}

// Float64 returns the next value of the sequence
func (s *SequenceRand) Float64() float64 {
	defer func() { s.draws++ }()
	if len(s.Values) == 0 {
		return 0.5
	}
	if s.draws >= len(s.Values) {
		return s.Values[len(s.Values)-1]
	}
	return s.Values[s.draws]
}

// Draws returns how many values were requested
func (s *SequenceRand) Draws() int {
	return s.draws
}
