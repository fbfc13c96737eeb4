package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"
)

var ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

// Batch is a shipment batch: the volumes of one ERP order being separated,
// checked and dispatched to a customer.
type Batch struct {
	id          kernel.UUID
	orderNumber string
	company     string
	customer    string
	volumes     int
	status      workflow.Stage
	version     int
	createdAt   time.Time

	isConstructed bool
}

// NewBatch creates a batch in separacao at version 0.
func NewBatch(id kernel.UUID, orderNumber, company, customer string, volumes int, createdAt time.Time) (*Batch, error) {
	return RestoreBatch(id, orderNumber, company, customer, volumes, Graph.Initial(), 0, createdAt)
}

func RestoreBatch(
	id kernel.UUID,
	orderNumber, company, customer string,
	volumes int,
	status workflow.Stage,
	version int,
	createdAt time.Time,
) (*Batch, error) {
	b := &Batch{
		id:            id,
		orderNumber:   strings.TrimSpace(orderNumber),
		company:       strings.TrimSpace(company),
		customer:      strings.TrimSpace(customer),
		volumes:       volumes,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(id.Validate(), b.validate()); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Batch) validate() error {
	var errList []error
	if b.orderNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("orderNumber"))
	}
	if b.company == "" {
		errList = append(errList, errs.NewValueIsRequiredError("company"))
	}
	if b.customer == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer"))
	}
	if b.volumes <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("volumes is invalid", fmt.Errorf("%d is not greater than 0", b.volumes)))
	}
	if !Graph.Contains(b.status) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a shipment stage", b.status)))
	}
	if b.version < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("version is invalid", fmt.Errorf("%d is negative", b.version)))
	}
	return errors.Join(errList...)
}

func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

func (b *Batch) ID() kernel.UUID        { return b.id }
func (b *Batch) OrderNumber() string    { return b.orderNumber }
func (b *Batch) Company() string        { return b.company }
func (b *Batch) Customer() string       { return b.customer }
func (b *Batch) Volumes() int           { return b.volumes }
func (b *Batch) Status() workflow.Stage { return b.status }
func (b *Batch) Version() int           { return b.version }
func (b *Batch) CreatedAt() time.Time   { return b.createdAt }
func (b *Batch) Ref() kernel.EntityRef  { return kernel.EntityRef{Kind: kernel.ShipmentBatch, ID: b.id} }
func (b *Batch) IsClosed() bool         { return Graph.IsTerminal(b.status) }

// Advance moves the batch to target, or to the next stage when target is
// empty, and returns the stage it left.
func (b *Batch) Advance(target workflow.Stage, openStages []workflow.Stage) (workflow.Stage, error) {
	from := b.status
	next, err := Graph.Advance(b.Ref().String(), from, target, Facts{OpenStages: openStages})
	if err != nil {
		return "", err
	}
	b.status = next
	return from, nil
}
