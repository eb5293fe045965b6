package appointment

import "github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics, подходит и *sql.DB, и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
