package datarecording

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/tebeka/atexit"
)

// ClickHouseOptions locates a ClickHouse server.
type ClickHouseOptions struct {
	Addr      string
	Database  string
	Username  string
	Password  string
	BatchSize int
}

// clickHouseStore writes over the native protocol.
type clickHouseStore struct {
	conn clickhouse.Conn
}

func (c clickHouseStore) createTable(
	ctx context.Context,
	name string,
	columns []column,
) error {
	return c.conn.Exec(ctx, clickHouseDDL(name, columns))
}

func (c clickHouseStore) insert(
	ctx context.Context,
	table string,
	rows [][]any,
) error {
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("failed to prepare batch for %s: %w", table, err)
	}

	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			return fmt.Errorf("failed to append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	return nil
}

func (c clickHouseStore) close() error {
	return c.conn.Close()
}

// NewClickHouse creates a DataRecorder that writes into a ClickHouse
// database over the native protocol. It panics if the server cannot be
// reached.
func NewClickHouse(opts ClickHouseOptions) DataRecorder {
	addr := opts.Addr
	if addr == "" {
		addr = "localhost:9000"
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      30 * time.Second,
		MaxOpenConns:     2,
		MaxIdleConns:     2,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect to ClickHouse: %w", err))
	}

	if err := conn.Ping(context.Background()); err != nil {
		panic(fmt.Errorf("failed to ping ClickHouse: %w", err))
	}

	r := newBufferedRecorder(clickHouseStore{conn: conn}, opts.BatchSize)

	atexit.Register(func() { r.Flush() })

	return r
}

func clickHouseType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "Bool"
	case reflect.Int8:
		return "Int8"
	case reflect.Int16:
		return "Int16"
	case reflect.Int32:
		return "Int32"
	case reflect.Int, reflect.Int64:
		return "Int64"
	case reflect.Uint8:
		return "UInt8"
	case reflect.Uint16:
		return "UInt16"
	case reflect.Uint32:
		return "UInt32"
	case reflect.Uint, reflect.Uint64:
		return "UInt64"
	case reflect.Float32:
		return "Float32"
	case reflect.Float64:
		return "Float64"
	default:
		return "String"
	}
}

func clickHouseDDL(name string, columns []column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c.name + " " + clickHouseType(c.kind)
	}

	return "CREATE TABLE IF NOT EXISTS " + name +
		" (\n\t" + strings.Join(defs, ",\n\t") + "\n)" +
		" ENGINE = MergeTree() ORDER BY tuple()"
}
