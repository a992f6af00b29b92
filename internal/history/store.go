package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/schema"
	"github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// predictionsTable is the name of the table for served predictions.
const predictionsTable = "bikecast_predictions"

// predictionColumns lists the insertable columns in bind order.
var predictionColumns = []string{
	"request_time", "source", "yr", "temperature", "humidity", "windspeed",
	"season", "mnth", "weather", "weekday", "holiday", "workingday",
	"prediction", "computation",
}

// HistoryStoreImpl handles durable storage of predictions using various database backends.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore initializes and returns a new HistoryStore based on the backend type.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		connStr, err = withParseTime(connStr)
		if err != nil {
			return nil, err
		}
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &HistoryStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if _, err := db.Exec(getCreatePredictionsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", predictionsTable, err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// withParseTime makes the MySQL driver return DATETIME columns as time.Time.
func withParseTime(connStr string) (string, error) {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// getCreatePredictionsQuery returns the CREATE TABLE query for bikecast_predictions.
func getCreatePredictionsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(predictionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				prediction_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				request_time DATETIME(6) NOT NULL,
				source VARCHAR(32) NOT NULL,
				yr DOUBLE NOT NULL,
				temperature DOUBLE NOT NULL,
				humidity DOUBLE NOT NULL,
				windspeed DOUBLE NOT NULL,
				season VARCHAR(64) NOT NULL,
				mnth VARCHAR(64) NOT NULL,
				weather VARCHAR(64) NOT NULL,
				weekday VARCHAR(64) NOT NULL,
				holiday DOUBLE NOT NULL,
				workingday DOUBLE NOT NULL,
				prediction INT NOT NULL,
				computation VARCHAR(32) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				prediction_id BIGSERIAL PRIMARY KEY,
				request_time TIMESTAMPTZ NOT NULL,
				source TEXT NOT NULL,
				yr DOUBLE PRECISION NOT NULL,
				temperature DOUBLE PRECISION NOT NULL,
				humidity DOUBLE PRECISION NOT NULL,
				windspeed DOUBLE PRECISION NOT NULL,
				season TEXT NOT NULL,
				mnth TEXT NOT NULL,
				weather TEXT NOT NULL,
				weekday TEXT NOT NULL,
				holiday DOUBLE PRECISION NOT NULL,
				workingday DOUBLE PRECISION NOT NULL,
				prediction INT NOT NULL,
				computation TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				prediction_id INTEGER PRIMARY KEY AUTOINCREMENT,
				request_time TEXT NOT NULL,
				source TEXT NOT NULL,
				yr REAL NOT NULL,
				temperature REAL NOT NULL,
				humidity REAL NOT NULL,
				windspeed REAL NOT NULL,
				season TEXT NOT NULL,
				mnth TEXT NOT NULL,
				weather TEXT NOT NULL,
				weekday TEXT NOT NULL,
				holiday REAL NOT NULL,
				workingday REAL NOT NULL,
				prediction INTEGER NOT NULL,
				computation TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// getInsertQuery returns the INSERT query for the backend.
func getInsertQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(predictionsTable, backend)
	columns := strings.Join(predictionColumns, ", ")
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, columns, getPlaceholders(backend, len(predictionColumns)))
	if backend == schema.PostgreSQLBackend {
		query += " RETURNING prediction_id"
	}
	return query
}

// getPlaceholders returns n comma-separated parameter placeholders for the backend.
func getPlaceholders(backend schema.DatabaseBackend, n int) string {
	parts := make([]string, n)
	for i := range parts {
		switch backend {
		case schema.PostgreSQLBackend:
			parts[i] = fmt.Sprintf("$%d", i+1)
		default: // SQLite and MySQL
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// RecordPrediction stores a served prediction and returns its unique ID.
func (hs *HistoryStoreImpl) RecordPrediction(record schema.PredictionRecord) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	args := []any{
		formatTime(record.RequestTime, hs.backend), record.Source,
		record.Year, record.Temperature, record.Humidity, record.Windspeed,
		record.Season, record.Month, record.Weather, record.Weekday,
		record.Holiday, record.WorkingDay, record.Prediction, record.Computation,
	}
	query := getInsertQuery(hs.backend)

	var predictionID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		if err := hs.db.QueryRow(query, args...).Scan(&predictionID); err != nil {
			return 0, fmt.Errorf("failed to insert prediction: %w", err)
		}
	default: // SQLite and MySQL
		result, err := hs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert prediction: %w", err)
		}
		predictionID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read prediction id: %w", err)
		}
	}

	return predictionID, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(predictionsTable, hs.backend)

	// Get total predictions
	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalPredictions); err != nil {
		return status, fmt.Errorf("failed to get total predictions: %w", err)
	}
	status.TableSizes[predictionsTable] = int64(status.TotalPredictions)

	if status.TotalPredictions == 0 {
		return status, nil
	}

	// Get last prediction info
	row = hs.db.QueryRow(fmt.Sprintf("SELECT prediction_id, request_time FROM %s ORDER BY prediction_id DESC LIMIT 1", quotedTableName))
	lastTime, err := hs.scanTime(row, &status.LastPredictionID)
	if err != nil {
		return status, fmt.Errorf("failed to get last prediction info: %w", err)
	}
	status.LastRequestTime = lastTime

	// Get oldest prediction time
	row = hs.db.QueryRow(fmt.Sprintf("SELECT request_time FROM %s ORDER BY prediction_id ASC LIMIT 1", quotedTableName))
	oldestTime, err := hs.scanTime(row)
	if err != nil {
		return status, fmt.Errorf("failed to get oldest prediction time: %w", err)
	}
	status.OldestRequestTime = oldestTime

	// Get fallback count
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE computation = %s", quotedTableName, getPlaceholders(hs.backend, 1))
	row = hs.db.QueryRow(query, string(schema.ComputeFallbackZero))
	if err := row.Scan(&status.FallbackCount); err != nil {
		return status, fmt.Errorf("failed to get fallback count: %w", err)
	}

	status.TableSizeBytes = hs.tableSizeBytes(status.TotalPredictions)
	return status, nil
}

// tableSizeBytes estimates the on-disk size of the predictions table.
func (hs *HistoryStoreImpl) tableSizeBytes(rows int) int64 {
	estimate := int64(rows) * 200 // Rough per-row estimate
	var size int64

	switch hs.backend {
	case schema.SQLiteBackend:
		row := hs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return 0
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(hs.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		row := hs.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, predictionsTable)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.PostgreSQLBackend:
		row := hs.db.QueryRow("SELECT pg_total_relation_size($1)", predictionsTable)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	default:
		return estimate
	}
	return size
}

// scanTime scans leading destinations followed by a time column stored in the
// backend's native format.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row, dest ...any) (time.Time, error) {
	switch hs.backend {
	case schema.SQLiteBackend:
		var ts string
		if err := row.Scan(append(dest, &ts)...); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, ts)
	default: // MySQL and PostgreSQL store as native datetime
		var ts time.Time
		if err := row.Scan(append(dest, &ts)...); err != nil {
			return time.Time{}, err
		}
		return ts, nil
	}
}

// GetAllPredictions retrieves all predictions from the store.
func (hs *HistoryStoreImpl) GetAllPredictions() ([]schema.PredictionRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(predictionsTable, hs.backend)
	query := fmt.Sprintf("SELECT prediction_id, %s FROM %s ORDER BY prediction_id", strings.Join(predictionColumns, ", "), quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PredictionRecord

	for rows.Next() {
		var record schema.PredictionRecord
		rest := []any{
			&record.Source, &record.Year, &record.Temperature, &record.Humidity, &record.Windspeed,
			&record.Season, &record.Month, &record.Weather, &record.Weekday,
			&record.Holiday, &record.WorkingDay, &record.Prediction, &record.Computation,
		}

		switch hs.backend {
		case schema.SQLiteBackend:
			var requestTimeStr string
			dest := append([]any{&record.PredictionID, &requestTimeStr}, rest...)
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("failed to scan prediction: %w", err)
			}
			requestTime, err := time.Parse(time.RFC3339Nano, requestTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse request_time: %w", err)
			}
			record.RequestTime = requestTime
		default: // MySQL and PostgreSQL
			dest := append([]any{&record.PredictionID, &record.RequestTime}, rest...)
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("failed to scan prediction: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating predictions: %w", err)
	}

	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
