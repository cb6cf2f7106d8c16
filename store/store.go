// Package store persists customers and transactions in a SQLite database.
//
// A Store is an explicitly owned handle: open it, pass it to whoever needs
// it, close it. Once closed every call fails with hisab.ErrUnavailable, which
// is what callers see while the database file is being swapped.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/etnz/hisab"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is a handle on a ledger database. It is safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	db  *gorm.DB // nil once closed
	log *zap.Logger

	now      func() time.Time
	currency string
	sqlLog   bool

	subsMu  sync.Mutex
	subs    map[int]func(hisab.Change)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// WithClock sets the clock used to stamp and cap dates.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithCurrency sets the currency given to amounts that carry none.
func WithCurrency(cur string) Option { return func(s *Store) { s.currency = cur } }

// WithSQLLog turns on gorm's statement logging.
func WithSQLLog(on bool) Option { return func(s *Store) { s.sqlLog = on } }

// Open opens, creating it if needed, the database at path. Use ":memory:"
// for a throwaway database.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		log:      zap.NewNop(),
		now:      time.Now,
		currency: hisab.DefaultCurrency,
		subs:     make(map[int]func(hisab.Change)),
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = "file:" + path
	}
	dsn += "?_foreign_keys=on&_busy_timeout=5000"

	level := logger.Silent
	if s.sqlLog {
		level = logger.Info
	}
	gormLogger := logger.New(zap.NewStdLog(s.log.Named("sql")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(4)
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	}

	if err := db.AutoMigrate(&customerRecord{}, &txnRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	s.db = db
	s.log.Debug("store opened", zap.String("path", path))
	return s, nil
}

// With opens the database at path, runs fn and closes it, whatever fn
// returns.
func With(path string, fn func(*Store) error, opts ...Option) (err error) {
	s, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Close releases the database. Closing twice is harmless.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	s.log.Debug("store closed")
	return sqlDB.Close()
}

// Subscribe registers fn to be called after every committed write. Calls
// happen on the writer's goroutine, after the store lock is released. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func(hisab.Change)) (cancel func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(changes []hisab.Change) {
	if len(changes) == 0 {
		return
	}
	s.subsMu.Lock()
	fns := make([]func(hisab.Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()
	for _, c := range changes {
		s.log.Debug("change", zap.Stringer("kind", c.Kind), zap.Int64("customer", c.CustomerID), zap.Int64("txn", c.TxnID))
		for _, fn := range fns {
			fn(c)
		}
	}
}

// read runs fn against the open database.
func (s *Store) read(ctx context.Context, fn func(db *gorm.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return hisab.ErrUnavailable
	}
	return fn(s.db.WithContext(ctx))
}

// write runs fn in a database transaction and notifies subscribers of the
// changes it reports once committed.
func (s *Store) write(ctx context.Context, fn func(tx *gorm.DB) ([]hisab.Change, error)) error {
	s.mu.Lock()
	if s.db == nil {
		s.mu.Unlock()
		return hisab.ErrUnavailable
	}
	var changes []hisab.Change
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		changes, err = fn(tx)
		return err
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(changes)
	return nil
}

// first loads one record by id, reporting whether it exists.
func first(db *gorm.DB, dst any, id int64) (bool, error) {
	err := db.Where("id = ?", id).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// touch bumps the updated_at of the customers.
func touch(tx *gorm.DB, when hisab.Timestamp, customerIDs ...int64) error {
	return tx.Model(&customerRecord{}).Where("id IN ?", customerIDs).Update("updated_at", int64(when)).Error
}
