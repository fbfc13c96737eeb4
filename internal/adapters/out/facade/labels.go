package facade

import (
	"context"
	"time"

	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/cache"

	"github.com/rs/zerolog"
)

func DefaultLabelPolicy() Policy {
	return Policy{TTL: time.Minute, Retries: 2, Timeout: fetchTimeout}
}

// LabelRegistry implements ports.LabelRegistry over another
// ports.LabelRegistry.
type LabelRegistry struct {
	next   ports.LabelRegistry
	loader *loader
	policy Policy
}

var _ ports.LabelRegistry = (*LabelRegistry)(nil)

func NewLabelRegistry(next ports.LabelRegistry, store cache.Store, policy Policy, retry RetryConfig, log zerolog.Logger) *LabelRegistry {
	return &LabelRegistry{next: next, loader: newLoader("rfid", store, retry, log), policy: policy}
}

func (f *LabelRegistry) GetLabelsForOrder(ctx context.Context, orderNumber string) ([]ports.Label, error) {
	return load(ctx, f.loader, "GetLabelsForOrder", key("rfid", "order", orderNumber), f.policy,
		func(ctx context.Context) ([]ports.Label, error) {
			return f.next.GetLabelsForOrder(ctx, orderNumber)
		})
}

func (f *LabelRegistry) GetLabelBySerial(ctx context.Context, serial string) (ports.Label, error) {
	return load(ctx, f.loader, "GetLabelBySerial", key("rfid", "label", serial), f.policy,
		func(ctx context.Context) (ports.Label, error) {
			return f.next.GetLabelBySerial(ctx, serial)
		})
}
