package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

func TestStateManager_Lifecycle(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("PolynomialRegression", "Predict")
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	s.SetDimensions(5, 10)
	s.SetFitted()
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("PolynomialRegression", "Predict"))
	assert.Equal(t, ModelState{Fitted: true, Degree: 5, NSamples: 10}, s.GetState())

	s.Reset()
	degree, n := s.GetDimensions()
	assert.False(t, s.IsFitted())
	assert.Zero(t, degree)
	assert.Zero(t, n)
}

func TestStateManager_ConcurrentReaders(t *testing.T) {
	s := NewStateManager()
	s.SetFitted()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, s.IsFitted())
		}()
	}
	wg.Wait()
}
