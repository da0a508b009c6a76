package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// QueryParams narrow down a query.
type QueryParams struct {
	// Where holds the WHERE clause without the "WHERE" keyword, for example
	// "Kind = ?".
	Where string
	Args  []any

	// Limit is the maximum number of rows to return. Zero means no limit.
	Limit  int
	Offset int

	// OrderBy holds the ORDER BY clause without the keywords.
	OrderBy string
}

// DataReader reads rows back into structs.
type DataReader interface {
	// MapTable associates a table with the struct type of its rows. A table
	// must be mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables.
	ListTables() []string

	// Query returns pointers to the matching rows and the total number of
	// rows that match the Where clause.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	Close() error
}

type sqliteReader struct {
	*sql.DB

	typeMap map[string]reflect.Type
}

// NewReader opens a database file for reading.
func NewReader(filename string) DataReader {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	return NewReaderWithDB(db)
}

// NewReaderWithDB creates a DataReader with a given database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.typeMap))
	for table := range r.typeMap {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	rowType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("no mapping found for table: %s", tableName)
	}

	countSQL, selectSQL := buildQueries(tableName, params)

	var total int
	err := r.QueryRowContext(ctx, countSQL, params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}

	rows, err := r.QueryContext(ctx, selectSQL, params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	results, err := scanRows(rows, rowType)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", tableName, err)
	}

	return results, total, nil
}

// buildQueries returns the statement that counts the matching rows and the
// one that selects the requested page of them.
func buildQueries(table string, params QueryParams) (count, page string) {
	from := " FROM " + table
	if params.Where != "" {
		from += " WHERE " + params.Where
	}

	var q strings.Builder
	q.WriteString("SELECT *" + from)

	if params.OrderBy != "" {
		q.WriteString(" ORDER BY " + params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&q, " LIMIT %d", params.Limit)

		if params.Offset > 0 {
			fmt.Fprintf(&q, " OFFSET %d", params.Offset)
		}
	}

	return "SELECT COUNT(*)" + from, q.String()
}

// scanRows reads every row into a new value of rowType. Columns without a
// matching field are skipped.
func scanRows(rows *sql.Rows, rowType reflect.Type) ([]any, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldOf := make([]int, len(names))
	for i, name := range names {
		fieldOf[i] = -1

		if f, ok := rowType.FieldByName(name); ok && len(f.Index) == 1 {
			fieldOf[i] = f.Index[0]
		}
	}

	var results []any

	for rows.Next() {
		ptr := reflect.New(rowType)
		targets := make([]any, len(names))

		for i, field := range fieldOf {
			if field < 0 {
				targets[i] = new(any)
				continue
			}

			targets[i] = ptr.Elem().Field(field).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, ptr.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
