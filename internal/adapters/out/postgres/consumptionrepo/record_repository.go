package consumptionrepo

import (
	"context"
	"errors"

	"shopfloor/internal/adapters/out/postgres/pgerrs"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

const recordKind = "consumption record"

// GormRecordRepository implements ports.ConsumptionRepository.
type GormRecordRepository struct {
	db *gorm.DB
}

func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// Add inserts an active record. The partial unique indexes turn a racing
// consumption of the same identity or slot into a conflict.
func (r *GormRecordRepository) Add(ctx context.Context, record *consumption.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if index, ok := pgerrs.UniqueViolation(err); ok {
			cause := err
			if index == ActiveScanIndex {
				cause = consumption.ErrScanIdentityActive
			}
			return errs.NewConcurrencyConflictErrorWithCause(recordKind, record.ID().String(), cause)
		}
		return err
	}
	return nil
}

// Close persists the end of an active record.
func (r *GormRecordRepository) Close(ctx context.Context, record *consumption.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if record.IsActive() {
		return consumption.Invalid("record", errors.New("record is still active"))
	}

	dto := recordFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ? AND ended_at IS NULL", dto.ID).
		Updates(map[string]any{"ended_at": dto.EndedAt, "replaced_by": dto.ReplacedBy})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictErrorWithCause(recordKind, record.ID().String(), consumption.ErrRecordAlreadyClosed)
	}
	return nil
}

func (r *GormRecordRepository) FindActiveByScanIdentity(ctx context.Context, scanIdentity string) (*consumption.Record, error) {
	return r.findActive(ctx, "scan_identity = ?", scanIdentity)
}

func (r *GormRecordRepository) FindActive(ctx context.Context, itemCode string, in consumption.Context) (*consumption.Record, error) {
	return r.findActive(ctx,
		"item_code = ? AND context_kind = ? AND context_ref = ?",
		itemCode, in.Kind.String(), in.Ref.Google(),
	)
}

func (r *GormRecordRepository) findActive(ctx context.Context, query string, args ...any) (*consumption.Record, error) {
	var dto RecordDTO
	err := r.db.WithContext(ctx).Where(query, args...).Where("ended_at IS NULL").Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recordToDomain(dto)
}

// ListActiveByContexts returns the active records of every context ordered by
// start time.
func (r *GormRecordRepository) ListActiveByContexts(ctx context.Context, contexts []consumption.Context) ([]*consumption.Record, error) {
	if len(contexts) == 0 {
		return nil, nil
	}

	scope := r.db.WithContext(ctx).Where("ended_at IS NULL")
	match := r.db.Where("context_kind = ? AND context_ref = ?", contexts[0].Kind.String(), contexts[0].Ref.Google())
	for _, c := range contexts[1:] {
		match = match.Or("context_kind = ? AND context_ref = ?", c.Kind.String(), c.Ref.Google())
	}

	var dtos []RecordDTO
	if err := scope.Where(match).Order("started_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*consumption.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := recordToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
