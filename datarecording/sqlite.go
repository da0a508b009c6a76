package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// New creates a DataRecorder that writes into path.sqlite3. An empty path
// gets a unique generated name. An existing file is never overwritten.
// Buffered rows are flushed when the program exits through atexit.
func New(path string) DataRecorder {
	if path == "" {
		path = "redstone_recording_" + xid.New().String()
	}

	if !strings.HasSuffix(path, ".sqlite3") {
		path += ".sqlite3"
	}

	if _, err := os.Stat(path); err == nil {
		panic(fmt.Errorf("file %s already exists", path))
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		panic(err)
	}

	log.Printf("recording into %s", path)

	return NewWithDB(db)
}

// NewWithDB creates a DataRecorder that writes into an open SQLite database.
// Closing the recorder closes db.
func NewWithDB(db *sql.DB) DataRecorder {
	r := newBufferedRecorder(sqliteStore{db: db}, defaultBatchSize)

	atexit.Register(func() { r.Flush() })

	return r
}

type sqliteStore struct {
	db *sql.DB
}

func sqliteType(kind reflect.Kind) string {
	switch kind {
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	default:
		return "INTEGER"
	}
}

func (s sqliteStore) createTable(
	ctx context.Context,
	name string,
	columns []column,
) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c.name + " " + sqliteType(c.kind)
	}

	_, err := s.db.ExecContext(ctx,
		"CREATE TABLE "+name+" (\n\t"+strings.Join(defs, ",\n\t")+"\n)")

	return err
}

// insert writes the rows of one table in a single transaction.
func (s sqliteStore) insert(
	ctx context.Context,
	table string,
	rows [][]any,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(rows[0])), ", ")

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO "+table+" VALUES ("+marks+")")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s sqliteStore) close() error {
	return s.db.Close()
}
