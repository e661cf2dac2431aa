// Package tr передаёт транзакцию pgx через context между usecase и репозиториями.
package tr

import (
	"context"

	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

type ctxKey struct{}

// ContextWithTx кладёт объект транзакции в контекст. Значение принимается
// нетипизированным: менеджер транзакций отдаёт interface{}, проверка типа
// выполняется при извлечении.
func ContextWithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(ctxKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
