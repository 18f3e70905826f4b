package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnushkaaaaS/Neighborly/pkg/dbmetrics"
	"github.com/AnushkaaaaS/Neighborly/pkg/pgerrors"
)

const (
	// DefaultMaxRetries сколько раз повторяется сериализуемая транзакция после конфликта
	DefaultMaxRetries = 3

	defaultBackoff = 10 * time.Millisecond
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// Beginner источник транзакций (*dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryRecorder учитывает повторы транзакций
type RetryRecorder interface {
	IncTxRetry(isolation string)
}

// Manager менеджер транзакций
// Транзакция передаётся в репозитории через context (dbmetrics.WithTx)
type Manager struct {
	db         Beginner
	maxRetries int
	backoff    time.Duration
	recorder   RetryRecorder
}

// Option настройка менеджера
type Option func(*Manager)

// WithMaxRetries задаёт количество повторов сериализуемой транзакции
func WithMaxRetries(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithBackoff задаёт базовую паузу между повторами
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) {
		m.backoff = d
	}
}

// WithRetryRecorder подключает учёт повторов в метриках
func WithRetryRecorder(r RetryRecorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

// NewTransactionManager создаёт менеджер транзакций
func NewTransactionManager(db Beginner, opts ...Option) *Manager {
	m := &Manager{
		db:         db,
		maxRetries: DefaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации (40001) или дедлоке транзакция повторяется целиком,
// не более maxRetries раз. Остальные ошибки fn возвращаются без повторов.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; ; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !pgerrors.IsRetryable(err) || attempt >= m.maxRetries {
			return err
		}
		// Вложенный вызов повторяет внешняя транзакция
		if dbmetrics.IsInTransaction(ctx) {
			return err
		}

		if m.recorder != nil {
			m.recorder.IncTxRetry("serializable")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt+1)):
		}
	}
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Уже внутри транзакции - переиспользуем её
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}
