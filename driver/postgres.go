package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresPool is the subset of pgxpool.Pool the repositories depend on.
type PostgresPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Close()
}

type Conn struct {
	Pool *pgxpool.Pool
}

func ConnectSQL(url string) (*Conn, error) {
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Conn{Pool: pool}, nil
}

type TransactionManager struct {
	pool   PostgresPool
	logger *zap.Logger
}

func NewTransactionManager(pool PostgresPool, logger *zap.Logger) *TransactionManager {
	return &TransactionManager{
		pool:   pool,
		logger: logger,
	}
}

// ExecuteTransaction runs fn inside a transaction, committing on success and
// rolling back on error or panic.
func (tm *TransactionManager) ExecuteTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			tm.logger.Error("failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
