package employeerepo

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// GormAuthorizer implements ports.Authorizer.
type GormAuthorizer struct {
	db *gorm.DB
}

func NewGormAuthorizer(db *gorm.DB) *GormAuthorizer {
	return &GormAuthorizer{db: db}
}

// IsActiveInSector reports whether actorID has an active membership in
// sector. Unknown actors are simply not active.
func (a *GormAuthorizer) IsActiveInSector(ctx context.Context, actorID, sector string) (bool, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" || sector == "" {
		return false, nil
	}

	var n int64
	if err := a.db.WithContext(ctx).
		Model(&EmployeeSectorDTO{}).
		Where("actor_id = ? AND sector = ? AND active", actorID, sector).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
