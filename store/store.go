// Package store is the relational data-access layer. Every method takes the
// request context and runs as one unit of work against the database; cascade
// deletes run inside a single transaction.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user row would violate the email unique index.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrAlreadyAttending is returned when the user already attends the meeting.
	ErrAlreadyAttending = errors.New("already attending")
	// ErrNotAttending is returned when the user does not attend the meeting.
	ErrNotAttending = errors.New("not attending")
)

// Page selects a window of a listing. A zero Limit returns every row.
type Page struct {
	Offset int
	Limit  int
}

// Store wraps a gorm handle.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// chronological is the default ordering of every listing.
func chronological(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// list counts rows matching scope and loads the requested page into dest.
func (s *Store) list(ctx context.Context, dest interface{}, page Page, scope func(*gorm.DB) *gorm.DB, preloads ...string) (int64, error) {
	var total int64
	if err := s.conn(ctx).Model(dest).Scopes(scope).Count(&total).Error; err != nil {
		return 0, err
	}

	q := s.conn(ctx).Scopes(scope, chronological)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if page.Limit > 0 {
		q = q.Offset(page.Offset).Limit(page.Limit)
	}
	if err := q.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// first loads the row with the given id, mapping a miss to ErrNotFound.
func first(db *gorm.DB, dest interface{}, id uint) error {
	err := db.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func orderedPreload(db *gorm.DB) *gorm.DB {
	return chronological(db)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func pluckIDs(tx *gorm.DB, model interface{}, query string, args ...interface{}) ([]uint, error) {
	var ids []uint
	if err := tx.Model(model).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
