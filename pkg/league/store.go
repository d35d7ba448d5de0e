package league

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/richard-senior/standings/internal/logger"
	_ "modernc.org/sqlite"
)

// Exportable objects know their table name; column definitions come from
// the `column` and `dbtype` struct tags.
type Exportable interface {
	GetTableName() string
}

// GetTableName returns the table name for standings rows
func (r *StandingsRow) GetTableName() string {
	return "standings"
}

// GetTableName returns the table name for match records
func (m *MatchRecord) GetTableName() string {
	return "matches"
}

// Store writes the finished build into a sqlite database in the output
// directory. The file is recreated from scratch on every build, it is an
// export artifact like the CSV, not state carried between builds.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore removes any previous database at path and opens a fresh one
func OpenStore(path string) (*Store, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug("Opened export database", path)
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateTables creates the standings and match tables
func (s *Store) CreateTables() error {
	if err := s.createTable(&StandingsRow{}); err != nil {
		return fmt.Errorf("failed to create standings table: %w", err)
	}
	if err := s.createTable(&MatchRecord{}); err != nil {
		return fmt.Errorf("failed to create matches table: %w", err)
	}
	return nil
}

// SaveStandings persists the ranked table in order
func (s *Store) SaveStandings(rows []*StandingsRow) error {
	objs := make([]Exportable, 0, len(rows))
	for _, r := range rows {
		objs = append(objs, r)
	}
	return s.bulkInsert(objs)
}

// SaveMatches persists the per-round match listing, raw rows included
func (s *Store) SaveMatches(matches []*MatchRecord) error {
	objs := make([]Exportable, 0, len(matches))
	for _, m := range matches {
		objs = append(objs, m)
	}
	return s.bulkInsert(objs)
}

// createTable creates a table for the given object using struct tags
func (s *Store) createTable(obj Exportable) error {
	tableName := obj.GetTableName()

	var columns []string
	var primaryKeys []string
	var indexes []string
	for _, f := range exportFields(obj) {
		columns = append(columns, fmt.Sprintf("%s %s", f.column, f.dbtype))
		if f.primary {
			primaryKeys = append(primaryKeys, f.column)
		}
		if f.indexed {
			indexes = append(indexes,
				fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
					tableName, f.column, tableName, f.column))
		}
	}
	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		tableName, strings.Join(columns, ", "))
	logger.Debug("Creating table with SQL", createSQL)

	if _, err := s.db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	for _, query := range indexes {
		if _, err := s.db.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// bulkInsert saves multiple objects of one table in a transaction
func (s *Store) bulkInsert(objects []Exportable) error {
	if len(objects) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tableName := objects[0].GetTableName()
	fields := exportFields(objects[0])

	columns := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, f.column)
		placeholders = append(placeholders, "?")
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", tableName, err)
	}
	defer stmt.Close()

	for _, obj := range objects {
		values := make([]any, 0, len(fields))
		for _, f := range exportFields(obj) {
			values = append(values, f.value)
		}
		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", tableName, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Info("Exported rows to table", len(objects), tableName)
	return nil
}

type exportField struct {
	column  string
	dbtype  string
	primary bool
	indexed bool
	value   any
}

// exportFields extracts column metadata and current values from the
// struct tags, flattening embedded structs
func exportFields(obj any) []exportField {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return collectFields(v)
}

func collectFields(v reflect.Value) []exportField {
	var fields []exportField
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			fields = append(fields, collectFields(v.Field(i))...)
			continue
		}
		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue
		}
		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}
		value := v.Field(i).Interface()
		if o, ok := value.(Outcome); ok {
			value = string(o)
		}
		fields = append(fields, exportField{
			column:  columnName,
			dbtype:  dbType,
			primary: field.Tag.Get("primary") == "true",
			indexed: field.Tag.Get("index") == "true",
			value:   value,
		})
	}
	return fields
}
