// Package employeerepo answers sector membership questions from the
// employee_sectors table, which is maintained outside this service.
package employeerepo

// EmployeeSectorDTO is one (actor, sector) membership.
type EmployeeSectorDTO struct {
	ActorID string `gorm:"size:64;primaryKey"`
	Sector  string `gorm:"size:32;primaryKey"`
	Active  bool   `gorm:"not null"`
}

func (EmployeeSectorDTO) TableName() string {
	return "employee_sectors"
}
