package polynomial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/polyreg/pkg/log"
)

func TestConsoleObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := ConsoleObserver(&buf)

	obs(0, 0.5)
	obs(1000, 0.00123456789)

	assert.Equal(t, "Iteration 0, Loss: 0.5\nIteration 1000, Loss: 0.00123457\n", buf.String())
}

func TestLogObserver(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	LogObserver(logger)(2000, 0.25)

	assert.True(t, logger.ContainsMessage("Training progress"))
	assert.True(t, logger.ContainsField(log.IterationKey, 2000.0))
	assert.True(t, logger.ContainsField(log.LossKey, 0.25))
}
