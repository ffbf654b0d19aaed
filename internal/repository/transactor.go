package repository

import (
	"github.com/Freeeeeet/tutoring_office/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewTransactor возвращает менеджер транзакций поверх пула.
// Репозитории, созданные на том же пуле, подхватывают транзакцию из контекста.
func NewTransactor(pool *pgxpool.Pool) *base.Repository {
	return base.NewRepository(pool)
}
