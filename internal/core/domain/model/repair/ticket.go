package repair

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"
)

var ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")

// Ticket is a repair ticket for one serialised product returned by a
// customer.
//
// Ticket follows these invariants:
//   - A repair outside warranty enters reparo only after budget approval
//   - The budget is approved at most once, while awaiting approval
//   - Terminal tickets (entregue, devolvida, descarte, cancelada) never change
type Ticket struct {
	id             kernel.UUID
	company        string
	productCode    string
	serialNumber   string
	customer       string
	underWarranty  bool
	budgetApproved bool
	status         workflow.Stage
	version        int
	createdAt      time.Time

	isConstructed bool
}

// NewTicket opens a ticket in recebida at version 0.
func NewTicket(id kernel.UUID, company, productCode, serialNumber, customer string, underWarranty bool, createdAt time.Time) (*Ticket, error) {
	return RestoreTicket(id, company, productCode, serialNumber, customer, underWarranty, false, Graph.Initial(), 0, createdAt)
}

func RestoreTicket(
	id kernel.UUID,
	company, productCode, serialNumber, customer string,
	underWarranty, budgetApproved bool,
	status workflow.Stage,
	version int,
	createdAt time.Time,
) (*Ticket, error) {
	t := &Ticket{
		id:             id,
		company:        strings.TrimSpace(company),
		productCode:    strings.TrimSpace(productCode),
		serialNumber:   strings.TrimSpace(serialNumber),
		customer:       strings.TrimSpace(customer),
		underWarranty:  underWarranty,
		budgetApproved: budgetApproved,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		isConstructed:  true,
	}

	var errList []error
	errList = append(errList, id.Validate())
	for name, v := range map[string]string{
		"company":      t.company,
		"productCode":  t.productCode,
		"serialNumber": t.serialNumber,
		"customer":     t.customer,
	} {
		if v == "" {
			errList = append(errList, errs.NewValueIsRequiredError(name))
		}
	}
	if !Graph.Contains(status) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a repair stage", status)))
	}
	if version < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("version is invalid", fmt.Errorf("%d is negative", version)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}
	return nil
}

func (t *Ticket) ID() kernel.UUID        { return t.id }
func (t *Ticket) Company() string        { return t.company }
func (t *Ticket) ProductCode() string    { return t.productCode }
func (t *Ticket) SerialNumber() string   { return t.serialNumber }
func (t *Ticket) Customer() string       { return t.customer }
func (t *Ticket) UnderWarranty() bool    { return t.underWarranty }
func (t *Ticket) BudgetApproved() bool   { return t.budgetApproved }
func (t *Ticket) Status() workflow.Stage { return t.status }
func (t *Ticket) Version() int           { return t.version }
func (t *Ticket) CreatedAt() time.Time   { return t.createdAt }
func (t *Ticket) Ref() kernel.EntityRef  { return kernel.EntityRef{Kind: kernel.RepairTicket, ID: t.id} }
func (t *Ticket) IsClosed() bool         { return Graph.IsTerminal(t.status) }

func (t *Ticket) Facts(openStages []workflow.Stage) Facts {
	return Facts{UnderWarranty: t.underWarranty, BudgetApproved: t.budgetApproved, OpenStages: openStages}
}

// Advance moves the ticket to target, or to the resolved next stage when
// target is empty, and returns the stage it left.
func (t *Ticket) Advance(target workflow.Stage, openStages []workflow.Stage) (workflow.Stage, error) {
	from := t.status
	next, err := Graph.Advance(t.Ref().String(), from, target, t.Facts(openStages))
	if err != nil {
		return "", err
	}
	t.status = next
	return from, nil
}

// ApproveBudget records the customer's approval. The stage does not change;
// it unblocks the guard on entering reparo.
func (t *Ticket) ApproveBudget() error {
	if t.IsClosed() {
		return errs.ErrEntityIsClosed
	}
	if t.status != AguardandoAprovacao {
		return errs.NewGuardViolationError(t.Ref().String(), "", "", "budget is approved while aguardando_aprovacao")
	}
	if t.budgetApproved {
		return errs.NewValueIsInvalidErrorWithCause("budget is invalid", errors.New("budget already approved"))
	}
	t.budgetApproved = true
	return nil
}

// EnsureAcceptsParts checks that parts may be consumed into the ticket.
func (t *Ticket) EnsureAcceptsParts() error {
	if t.IsClosed() {
		return errs.ErrEntityIsClosed
	}
	if t.status != Reparo {
		return errs.NewGuardViolationError(t.Ref().String(), "", "", "parts are consumed during reparo")
	}
	return nil
}
