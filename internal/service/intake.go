package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"faral-orders/internal/catalog"
	"faral-orders/internal/models"
	"faral-orders/internal/partition"
	"faral-orders/internal/tablestore"
)

// State tracks one request through the pipeline. Reaching StateRecorded is
// the durability point: failures before it abort the request, failures
// after it are logged and swallowed.
type State string

const (
	StateReceived   State = "received"
	StateClassified State = "classified"
	StateTableReady State = "table-ready"
	StateRecorded   State = "recorded"
	StateAggregated State = "aggregated"
	StateNotified   State = "notified"
)

// SubmitOrder runs one order through the pipeline. A nil return means the
// order is durably recorded; aggregation or notification may still have
// degraded, which the log shows but the caller never sees.
func (s *Service) SubmitOrder(ctx context.Context, o models.Order) error {
	o.Normalize()
	if err := s.validateOrder(o); err != nil {
		return &FatalError{State: StateReceived, Err: fmt.Errorf("%w: %s", ErrValidation, err)}
	}

	p := partition.Route(o.OrderType)
	lg := logrus.WithFields(logrus.Fields{"partition": string(p), "customer": o.Name})
	lg.WithField("state", StateClassified).Debug("order classified")

	if err := s.ledger.EnsureTable(ctx, p); err != nil {
		return &FatalError{State: StateClassified, Err: err}
	}
	lg.WithField("state", StateTableReady).Debug("destination ready")

	if err := s.ledger.AppendOrder(ctx, p, o); err != nil {
		return &FatalError{State: StateTableReady, Err: err}
	}
	lg.WithField("state", StateRecorded).Info("order recorded")

	if err := s.agg.MergeOrder(ctx, o.Products); err != nil {
		lg.WithError(err).Warn("aggregation degraded; worklist is stale until reconciled")
	} else {
		lg.WithField("state", StateAggregated).Debug("worklist merged")
	}

	s.notifier.Dispatch(o, p)
	lg.WithField("state", StateNotified).Debug("notifications dispatched")
	return nil
}

// HandleMessage is the broker entry point: decode, then the same pipeline.
func (s *Service) HandleMessage(ctx context.Context, payload []byte) error {
	var o models.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return s.SubmitOrder(ctx, o)
}

func (s *Service) Worklist(ctx context.Context) (map[string]int, error) {
	return s.agg.Totals(ctx)
}

func (s *Service) PartitionRows(ctx context.Context, name string) ([][]string, error) {
	p, ok := partition.FromString(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown partition %q", ErrValidation, name)
	}
	rows, err := s.ledger.Rows(ctx, p)
	if errors.Is(err, tablestore.ErrTableNotFound) {
		// No order has been routed here yet; an empty ledger, not a fault.
		return [][]string{}, nil
	}
	return rows, err
}

func (s *Service) validateOrder(o models.Order) error {
	if err := s.v.Struct(o); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("%s", humanizeValidationErrors(verrs))
		}
		return err
	}
	for name, qty := range o.Products {
		if qty < 0 {
			return fmt.Errorf("product %q has negative quantity %d", name, qty)
		}
		if !catalog.Contains(name) {
			return fmt.Errorf("product %q is not in the catalog", name)
		}
	}
	return nil
}

func humanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	return strings.TrimSuffix(s, "; ")
}
