package check_closure_conflict

import (
	"context"

	checkClosureConflict "github.com/m04kA/SMC-ReservationService/internal/usecase/check_closure_conflict"
)

type CheckClosureConflictUseCase interface {
	Execute(ctx context.Context, req *checkClosureConflict.Request) (*checkClosureConflict.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
