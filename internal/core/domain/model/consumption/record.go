package consumption

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is one physical part consumed into a context. A record is active
// until it is closed by a replacement; closed records are kept as history.
//
// Invariants enforced together with the repository:
//   - at most one active record per (item code, context)
//   - an active scan identity appears in exactly one active record
type Record struct {
	id           kernel.UUID
	owner        kernel.EntityRef
	context      Context
	itemCode     string
	scanIdentity string
	rawScan      string
	actorID      string
	startedAt    time.Time
	endedAt      *time.Time
	replacedBy   *kernel.UUID

	isConstructed bool
}

// NewRecord opens an active record for scan in ctx. owner is the versioned
// entity whose claim protects the write.
func NewRecord(owner kernel.EntityRef, ctx Context, scan Scan, actorID string, at time.Time) (*Record, error) {
	return RestoreRecord(kernel.NewUUID(), owner, ctx, scan.ItemCode, scan.Identity, scan.Raw, actorID, at, nil, nil)
}

func RestoreRecord(
	id kernel.UUID,
	owner kernel.EntityRef,
	ctx Context,
	itemCode, scanIdentity, rawScan, actorID string,
	startedAt time.Time,
	endedAt *time.Time,
	replacedBy *kernel.UUID,
) (*Record, error) {
	r := &Record{
		id:            id,
		owner:         owner,
		context:       ctx,
		itemCode:      strings.TrimSpace(itemCode),
		scanIdentity:  strings.TrimSpace(scanIdentity),
		rawScan:       rawScan,
		actorID:       strings.TrimSpace(actorID),
		startedAt:     startedAt,
		endedAt:       endedAt,
		replacedBy:    replacedBy,
		isConstructed: true,
	}

	var errList []error
	errList = append(errList, id.Validate(), owner.Kind.Validate(), owner.ID.Validate(), ctx.Ref.Validate())
	if _, ok := contextKindCodes[ctx.Kind]; !ok {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("context kind is invalid", fmt.Errorf("%d", ctx.Kind)))
	}
	if r.itemCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("itemCode"))
	}
	if r.scanIdentity == "" {
		errList = append(errList, errs.NewValueIsRequiredError("scanIdentity"))
	}
	if r.actorID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("actor"))
	}
	if endedAt != nil && endedAt.Before(startedAt) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("endedAt is invalid", errors.New("ends before it starts")))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID          { return r.id }
func (r *Record) Owner() kernel.EntityRef  { return r.owner }
func (r *Record) Context() Context         { return r.context }
func (r *Record) ItemCode() string         { return r.itemCode }
func (r *Record) ScanIdentity() string     { return r.scanIdentity }
func (r *Record) RawScan() string          { return r.rawScan }
func (r *Record) ActorID() string          { return r.actorID }
func (r *Record) StartedAt() time.Time     { return r.startedAt }
func (r *Record) EndedAt() *time.Time      { return r.endedAt }
func (r *Record) ReplacedBy() *kernel.UUID { return r.replacedBy }
func (r *Record) IsActive() bool           { return r.endedAt == nil }

// Close ends the record at at. replacedBy is the record that supersedes it,
// nil when none does.
func (r *Record) Close(at time.Time, replacedBy *kernel.UUID) error {
	if !r.IsActive() {
		return Invalid("consumption record is invalid", ErrRecordAlreadyClosed)
	}
	if at.Before(r.startedAt) {
		at = r.startedAt
	}
	r.endedAt = &at
	r.replacedBy = replacedBy
	return nil
}

// Substitute closes r and opens its replacement with a new physical piece of
// the same item. The item code of scan must match r.
func (r *Record) Substitute(scan Scan, actorID string, at time.Time) (*Record, error) {
	if !r.IsActive() {
		return nil, Invalid("consumption record is invalid", ErrRecordAlreadyClosed)
	}
	if !strings.EqualFold(scan.ItemCode, r.itemCode) {
		return nil, Invalid("replacement item code is invalid",
			fmt.Errorf("%s does not match replaced item %s", scan.ItemCode, r.itemCode))
	}
	if scan.Identity == r.scanIdentity {
		return nil, Invalid("replacement scan is invalid", ErrSameScanIdentity)
	}

	next, err := RestoreRecord(kernel.NewUUID(), r.owner, r.context, r.itemCode, scan.Identity, scan.Raw, actorID, at, nil, nil)
	if err != nil {
		return nil, err
	}
	nextID := next.ID()
	if err := r.Close(at, &nextID); err != nil {
		return nil, err
	}
	return next, nil
}
