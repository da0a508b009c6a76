// Package datarecording stores simulation rows in a SQLite or ClickHouse
// database.
//
// A table is declared with a sample struct. Its exported fields become the
// columns, in order, and must be booleans, numbers or strings. Rows are
// buffered and written in batches.
package datarecording

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/fatih/structs"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a table whose columns are the fields of the sample
	// entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all tables created so far.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

const defaultBatchSize = 10000

// A column is one field of a table's row type.
type column struct {
	name string
	kind reflect.Kind
}

// A store is a database the recorder writes to.
type store interface {
	createTable(ctx context.Context, name string, columns []column) error
	insert(ctx context.Context, table string, rows [][]any) error
	close() error
}

// columnsOf lists the exported fields of sample. Fields tagged
// `structs:"-"` are left out.
func columnsOf(sample any) ([]column, error) {
	if !structs.IsStruct(sample) {
		return nil, errors.New("entry must be a struct")
	}

	fields := structs.Fields(sample)
	columns := make([]column, 0, len(fields))

	for _, field := range fields {
		switch field.Kind() {
		case reflect.Bool, reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
			reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64:
		default:
			return nil, fmt.Errorf("field %s has unsupported type %s",
				field.Name(), field.Kind())
		}

		columns = append(columns, column{
			name: field.Name(),
			kind: field.Kind(),
		})
	}

	return columns, nil
}

// rowOf flattens an entry into the values of its columns. Plain ints are
// widened to the 64-bit column types they are stored in.
func rowOf(entry any) []any {
	row := structs.Values(entry)

	for i, v := range row {
		switch v := v.(type) {
		case int:
			row[i] = int64(v)
		case uint:
			row[i] = uint64(v)
		}
	}

	return row
}

type bufferedTable struct {
	rowType reflect.Type
	rows    [][]any
}

// bufferedRecorder implements DataRecorder on any store. It panics on misuse
// and on database errors, as a recording that silently loses rows is worse
// than a stopped simulation.
type bufferedRecorder struct {
	store     store
	tables    map[string]*bufferedTable
	batchSize int
	buffered  int
	closed    bool
}

func newBufferedRecorder(s store, batchSize int) *bufferedRecorder {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &bufferedRecorder{
		store:     s,
		tables:    make(map[string]*bufferedTable),
		batchSize: batchSize,
	}
}

func (r *bufferedRecorder) CreateTable(tableName string, sampleEntry any) {
	columns, err := columnsOf(sampleEntry)
	if err != nil {
		panic(err)
	}

	if _, exists := r.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	err = r.store.createTable(context.Background(), tableName, columns)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	r.tables[tableName] = &bufferedTable{rowType: reflect.TypeOf(sampleEntry)}
}

func (r *bufferedRecorder) InsertData(tableName string, entry any) {
	table, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.rowType {
		panic(fmt.Sprintf("table %s cannot store %T", tableName, entry))
	}

	table.rows = append(table.rows, rowOf(entry))

	r.buffered++
	if r.buffered >= r.batchSize {
		r.Flush()
	}
}

func (r *bufferedRecorder) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *bufferedRecorder) Flush() {
	if r.buffered == 0 || r.closed {
		return
	}

	ctx := context.Background()

	for _, name := range r.ListTables() {
		table := r.tables[name]
		if len(table.rows) == 0 {
			continue
		}

		if err := r.store.insert(ctx, name, table.rows); err != nil {
			panic(fmt.Errorf("failed to write table %s: %w", name, err))
		}

		table.rows = table.rows[:0]
	}

	r.buffered = 0
}

func (r *bufferedRecorder) Close() error {
	if r.closed {
		return nil
	}

	r.Flush()
	r.closed = true

	if err := r.store.close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
