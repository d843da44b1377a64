package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"
)

// lockKey serializes concurrent runners through a Postgres advisory lock.
const lockKey int64 = 583120471

var ErrChecksumMismatch = errors.New("applied migration was modified")

type State string

const (
	StateApplied State = "applied"
	StatePending State = "pending"
)

// Status is one migration file and whether the database has it.
type Status struct {
	Migration
	State     State
	AppliedAt time.Time
}

// Report describes a Run. With DryRun set, Applied lists what would have been applied.
type Report struct {
	Applied []Migration
	Current int64
	DryRun  bool
}

// Runner applies schema files in version order and records them in schema_migrations with
// a checksum of their contents.
type Runner struct {
	Source fs.FS
	Logger *zap.Logger
	DryRun bool
}

type appliedMigration struct {
	Version   int64
	Checksum  string
	AppliedAt time.Time
}

func (r Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Status lists every migration file with its state. It does not write to the database.
func (r Runner) Status(ctx context.Context, db *sql.DB) ([]Status, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	migs, err := Load(r.Source)
	if err != nil {
		return nil, err
	}
	applied, err := readApplied(ctx, db)
	if err != nil {
		return nil, err
	}
	if _, _, err := plan(migs, applied); err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(migs))
	for _, m := range migs {
		s := Status{Migration: m, State: StatePending}
		if a, ok := applied[m.Version]; ok {
			s.State = StateApplied
			s.AppliedAt = a.AppliedAt
		}
		out = append(out, s)
	}
	return out, nil
}

func (r Runner) Run(ctx context.Context, db *sql.DB) (Report, error) {
	if db == nil {
		return Report{}, errors.New("nil db")
	}
	log := r.logger()

	migs, err := Load(r.Source)
	if err != nil {
		return Report{}, err
	}
	if len(migs) == 0 {
		log.Warn("no migrations found")
		return Report{DryRun: r.DryRun}, nil
	}

	if r.DryRun {
		applied, err := readApplied(ctx, db)
		if err != nil {
			return Report{}, err
		}
		pending, current, err := plan(migs, applied)
		if err != nil {
			return Report{}, err
		}
		return Report{Applied: pending, Current: current, DryRun: true}, nil
	}

	if _, err := db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return Report{}, err
	}
	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return Report{}, err
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	// Read under the lock so a concurrent runner's work is visible.
	applied, err := readApplied(ctx, db)
	if err != nil {
		return Report{}, err
	}
	pending, current, err := plan(migs, applied)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Current: current}
	for _, m := range pending {
		if err := apply(ctx, db, m); err != nil {
			return rep, err
		}
		rep.Applied = append(rep.Applied, m)
		rep.Current = m.Version
		log.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
	}
	if len(rep.Applied) == 0 {
		log.Info("schema up to date", zap.Int64("version", rep.Current))
	}
	return rep, nil
}

// plan returns the files not yet applied and the highest applied version.
func plan(migs []Migration, applied map[int64]appliedMigration) ([]Migration, int64, error) {
	var pending []Migration
	var current int64
	for _, m := range migs {
		a, ok := applied[m.Version]
		if !ok {
			pending = append(pending, m)
			continue
		}
		if a.Checksum != m.Checksum {
			return nil, 0, fmt.Errorf("%w: version=%d file=%s", ErrChecksumMismatch, m.Version, m.Filename)
		}
		if m.Version > current {
			current = m.Version
		}
	}
	return pending, current, nil
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func readApplied(ctx context.Context, db *sql.DB) (map[int64]appliedMigration, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT to_regclass('schema_migrations') IS NOT NULL`).Scan(&exists); err != nil {
		return nil, err
	}
	out := map[int64]appliedMigration{}
	if !exists {
		return out, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT version, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a appliedMigration
		if err := rows.Scan(&a.Version, &a.Checksum, &a.AppliedAt); err != nil {
			return nil, err
		}
		out[a.Version] = a
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return err
	}
	return tx.Commit()
}
