package ports

import (
	"context"

	"currency-converter/internal/domain/model"
)

// CommandDispatcher hands a command to the goroutine that owns the screen state.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, cmd model.Command) error
}
