package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"faral-orders/internal/aggregate"
	"faral-orders/internal/ledger"
	"faral-orders/internal/models"
	"faral-orders/internal/notify"
)

// Intake is the surface both delivery layers consume.
type Intake interface {
	SubmitOrder(ctx context.Context, o models.Order) error
	HandleMessage(ctx context.Context, payload []byte) error
	Worklist(ctx context.Context) (map[string]int, error)
	PartitionRows(ctx context.Context, name string) ([][]string, error)
}

type Service struct {
	ledger   *ledger.Writer
	agg      *aggregate.Engine
	notifier *notify.Dispatcher
	v        *validator.Validate
}

func NewService(lw *ledger.Writer, agg *aggregate.Engine, notifier *notify.Dispatcher) *Service {
	return &Service{
		ledger:   lw,
		agg:      agg,
		notifier: notifier,
		v:        validator.New(),
	}
}
