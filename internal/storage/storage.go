package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrEnvironmentNotFound = errors.New("environment not found")
	ErrLedgerRowNotFound   = errors.New("membership ledger row not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrLanguageNotFound    = errors.New("language not found")
	ErrKeyNotFound         = errors.New("translation key not found")
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) DB() *sqlx.DB {
	return s.db
}

func (s *Storage) Ping() error {
	return s.db.Ping()
}

// WithTx runs fn inside a single transaction. Every multi-step write in the
// provisioning and registration flows goes through here, so a failure in any
// step rolls back the whole sequence.
func (s *Storage) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
