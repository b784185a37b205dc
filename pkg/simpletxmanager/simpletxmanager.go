package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

// adapter приводит *sql.DB к интерфейсу txmanager.TxBeginner
type adapter struct {
	db *sql.DB
}

func (a *adapter) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return a.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает transaction manager поверх чистого *sql.DB
// (без обёртки метрик)
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(&adapter{db: db})
}
