package samplelog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/assaylab/assay/internal/scopebench"
)

//go:embed schema.sql
var schemaSQL string

// Sample is one committed timer stop.
type Sample struct {
	// Seq is the journal-assigned commit order, starting at 1.
	Seq int64 `json:"seq"`

	// Label identifies the timed region.
	Label string `json:"label"`

	// Elapsed is the raw measured duration, before quantization.
	// Serializes as nanoseconds.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Unit is the resolution the sample was aggregated at ("s", "ms",
	// "us" or "ns").
	Unit string `json:"unit"`
}

// Journal stores timing samples in SQLite.
// Uses WAL mode for concurrent read access.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a sample journal at the given path. Use
// ":memory:" for a journal that lives and dies with the process.
// Applies required pragmas and the schema automatically.
//
// This function is idempotent - safe to call multiple times on the same
// path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	// A single connection also keeps an in-memory journal alive: each
	// new connection to ":memory:" would see a fresh empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the journal. For an in-memory journal this discards all
// samples.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append inserts one sample. The sample's Seq is ignored; the journal
// assigns the next sequence number.
func (j *Journal) Append(ctx context.Context, s Sample) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO samples (label, elapsed_ns, unit)
		VALUES (?, ?, ?)
	`, s.Label, int64(s.Elapsed), s.Unit)
	if err != nil {
		return fmt.Errorf("append sample: %w", err)
	}
	return nil
}

// ObserveSample implements scopebench.SampleSink, so a Journal can be
// attached directly to an aggregator via scopebench.WithSampleSink.
func (j *Journal) ObserveSample(label string, elapsed time.Duration, res scopebench.Resolution) error {
	return j.Append(context.Background(), Sample{
		Label:   label,
		Elapsed: elapsed,
		Unit:    res.String(),
	})
}

// ByLabel returns all samples for a label in commit order.
// Returns an empty slice (not nil) if the label has no samples.
func (j *Journal) ByLabel(ctx context.Context, label string) ([]Sample, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, label, elapsed_ns, unit
		FROM samples
		WHERE label = ?
		ORDER BY seq ASC
	`, label)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	return collectSamples(rows)
}

// All returns every sample in commit order.
// Returns an empty slice (not nil) if the journal is empty.
func (j *Journal) All(ctx context.Context) ([]Sample, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, label, elapsed_ns, unit
		FROM samples
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	return collectSamples(rows)
}

// Count returns the number of samples in the journal.
func (j *Journal) Count(ctx context.Context) (int64, error) {
	var n int64
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

func collectSamples(rows *sql.Rows) ([]Sample, error) {
	var samples []Sample
	for rows.Next() {
		var (
			s  Sample
			ns int64
		)
		if err := rows.Scan(&s.Seq, &s.Label, &ns, &s.Unit); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.Elapsed = time.Duration(ns)
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}

	if samples == nil {
		samples = []Sample{}
	}

	return samples, nil
}
