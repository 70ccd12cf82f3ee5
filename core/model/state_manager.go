// Package model provides the estimator interfaces and fitted-state tracking
// shared by polyreg's estimators and transformers.
package model

import (
	"sync"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// StateManager tracks whether an estimator has been fitted, and the shape
// of the data it was fitted on. It is safe for concurrent use.
type StateManager struct {
	mu sync.RWMutex

	fitted   bool
	degree   int
	nSamples int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.degree = 0
	s.nSamples = 0
}

// SetDimensions records the polynomial degree and sample count of the last fit.
func (s *StateManager) SetDimensions(degree, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.degree = degree
	s.nSamples = nSamples
}

// GetDimensions returns the values recorded by SetDimensions.
func (s *StateManager) GetDimensions() (degree, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degree, s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method when
// the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// ModelState is a snapshot of a StateManager.
type ModelState struct {
	Fitted   bool `json:"fitted"`
	Degree   int  `json:"degree,omitempty"`
	NSamples int  `json:"n_samples,omitempty"`
}

// GetState returns a snapshot of the current state.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ModelState{Fitted: s.fitted, Degree: s.degree, NSamples: s.nSamples}
}
