package booking

import (
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics:
// *sql.DB, *sql.Tx и обёртки с метриками подходят одинаково
type DBExecutor = dbmetrics.DBExecutor
