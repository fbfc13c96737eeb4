package consumptionrepo

import (
	"context"
	"errors"

	"shopfloor/internal/adapters/out/postgres/pgerrs"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubAssemblyRepository implements ports.SubAssemblyRepository.
type GormSubAssemblyRepository struct {
	db *gorm.DB
}

func NewGormSubAssemblyRepository(db *gorm.DB) *GormSubAssemblyRepository {
	return &GormSubAssemblyRepository{db: db}
}

// Add inserts an unbound sub-assembly. A label can be registered once.
func (r *GormSubAssemblyRepository) Add(ctx context.Context, sub *consumption.SubAssembly) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	dto := subAssemblyFromDomain(sub)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerrs.UniqueViolation(err); ok {
			return consumption.Invalid("labelSerial", consumption.ErrLabelAlreadyRecorded)
		}
		return err
	}
	return nil
}

func (r *GormSubAssemblyRepository) Get(ctx context.Context, id kernel.UUID) (*consumption.SubAssembly, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "sub-assembly", id.String(), "id = ?", id.Google())
}

func (r *GormSubAssemblyRepository) GetByLabel(ctx context.Context, labelSerial string) (*consumption.SubAssembly, error) {
	return r.first(ctx, "sub-assembly label", labelSerial, "label_serial = ?", labelSerial)
}

func (r *GormSubAssemblyRepository) first(ctx context.Context, param, key string, query string, args ...any) (*consumption.SubAssembly, error) {
	var dto SubAssemblyDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return subAssemblyToDomain(dto)
}

// Bind persists the binding only while the row is still unbound.
func (r *GormSubAssemblyRepository) Bind(ctx context.Context, sub *consumption.SubAssembly) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if !sub.IsBound() {
		return consumption.Invalid("sub-assembly", errors.New("sub-assembly is not bound"))
	}

	dto := subAssemblyFromDomain(sub)
	result := r.db.WithContext(ctx).
		Model(&SubAssemblyDTO{}).
		Where("id = ? AND final_unit_id IS NULL", dto.ID).
		Updates(map[string]any{"final_unit_id": dto.FinalUnitID, "bound_at": dto.BoundAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictErrorWithCause("sub-assembly", sub.ID().String(), consumption.ErrBoundToAnotherUnit)
	}
	return nil
}

func (r *GormSubAssemblyRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&SubAssemblyDTO{}).
		Where("production_order_id = ?", orderID.Google()).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// ListByOrder returns the sub-assemblies registered against a production
// order in registration order.
func (r *GormSubAssemblyRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*consumption.SubAssembly, error) {
	var dtos []SubAssemblyDTO
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ?", orderID.Google()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return subAssembliesToDomain(dtos)
}

// ListBoundToUnit returns the sub-assemblies bound to a final unit in binding
// order.
func (r *GormSubAssemblyRepository) ListBoundToUnit(ctx context.Context, unitID kernel.UUID) ([]*consumption.SubAssembly, error) {
	var dtos []SubAssemblyDTO
	if err := r.db.WithContext(ctx).
		Where("final_unit_id = ?", unitID.Google()).
		Order("bound_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return subAssembliesToDomain(dtos)
}

func subAssembliesToDomain(dtos []SubAssemblyDTO) ([]*consumption.SubAssembly, error) {
	subs := make([]*consumption.SubAssembly, 0, len(dtos))
	for _, dto := range dtos {
		s, err := subAssemblyToDomain(dto)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}
