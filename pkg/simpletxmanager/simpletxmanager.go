package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// sqlDBBeginner адаптер *sql.DB к интерфейсу txmanager.TxBeginner
type sqlDBBeginner struct {
	db *sql.DB
}

func (b *sqlDBBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает менеджер транзакций поверх голого *sql.DB
// (без обёртки метрик). Используется, когда метрики отключены в конфигурации.
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(&sqlDBBeginner{db: db})
}
