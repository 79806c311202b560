// Package deliver hands a finished report to outward channels. Delivery is
// fire-and-forget from the core's perspective: failures surface to the
// caller and are never retried internally.
package deliver

import (
	"context"
	"fmt"
	"time"

	"github.com/sago-ai/sago/internal/model"
)

// DeliveryError wraps a channel failure. The report is still considered
// successfully produced when delivery fails.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery via %s failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Receipt records a completed delivery
type Receipt struct {
	ID      string    `json:"id"`
	Channel string    `json:"channel"`
	Target  string    `json:"target"`
	SentAt  time.Time `json:"sent_at"`
}

// Deliverer transmits a finished report over one channel
type Deliverer interface {
	Deliver(ctx context.Context, report *model.Report) (*Receipt, error)
}
