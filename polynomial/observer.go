package polynomial

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// Observer receives periodic training diagnostics. It is called
// synchronously from the fitting loop.
type Observer func(iteration int, loss float64)

// ConsoleObserver writes "Iteration <n>, Loss: <value>" lines to w.
func ConsoleObserver(w io.Writer) Observer {
	return func(iteration int, loss float64) {
		fmt.Fprintf(w, "Iteration %d, Loss: %.6g\n", iteration, loss)
	}
}

// LogObserver emits a debug record per report.
func LogObserver(logger log.Logger) Observer {
	return func(iteration int, loss float64) {
		logger.Debug("Training progress",
			log.OperationKey, log.OperationFit,
			log.IterationKey, iteration,
			log.LossKey, loss,
		)
	}
}

// Observers fans a report out to every non-nil observer, in order.
func Observers(observers ...Observer) Observer {
	active := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			active = append(active, o)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(iteration int, loss float64) {
		for _, o := range active {
			o(iteration, loss)
		}
	}
}
