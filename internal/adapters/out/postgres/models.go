package postgres

import (
	"shopfloor/internal/adapters/out/postgres/consumptionrepo"
	"shopfloor/internal/adapters/out/postgres/employeerepo"
	"shopfloor/internal/adapters/out/postgres/eventrepo"
	"shopfloor/internal/adapters/out/postgres/productionrepo"
	"shopfloor/internal/adapters/out/postgres/repairrepo"
	"shopfloor/internal/adapters/out/postgres/shipmentrepo"
)

// Models lists every persisted DTO. Integration suites AutoMigrate them;
// deployed databases are migrated with the SQL files under migrations/.
func Models() []any {
	return []any{
		&productionrepo.OrderDTO{},
		&productionrepo.FinalUnitDTO{},
		&shipmentrepo.BatchDTO{},
		&repairrepo.TicketDTO{},
		&eventrepo.EventDTO{},
		&consumptionrepo.RecordDTO{},
		&consumptionrepo.SubAssemblyDTO{},
		&employeerepo.EmployeeSectorDTO{},
	}
}

// Tables lists the table names of Models, for truncation between tests.
func Tables() []string {
	return []string{
		productionrepo.OrderDTO{}.TableName(),
		productionrepo.FinalUnitDTO{}.TableName(),
		shipmentrepo.BatchDTO{}.TableName(),
		repairrepo.TicketDTO{}.TableName(),
		eventrepo.EventDTO{}.TableName(),
		consumptionrepo.RecordDTO{}.TableName(),
		consumptionrepo.SubAssemblyDTO{}.TableName(),
		employeerepo.EmployeeSectorDTO{}.TableName(),
	}
}
