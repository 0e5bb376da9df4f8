package dictionary

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultTable is the table LoadSQLiteFile reads from.
const DefaultTable = "words"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// LoadSQLite reads (word, weight) rows from table.
func LoadSQLite(db Querier, table string, opts Options) (Vocabulary, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	query := fmt.Sprintf(`SELECT word, weight FROM %s WHERE weight >= ? ORDER BY weight DESC`, table)
	rows, err := db.Query(query, opts.MinWeight)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var entries []WeightedString
	for rows.Next() {
		var e WeightedString
		if err := rows.Scan(&e.Text, &e.Weight); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return Merge(entries, opts), nil
}

// LoadSQLiteFile opens the database at path read-only and loads table.
func LoadSQLiteFile(path, table string, opts Options) (Vocabulary, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	vocab, err := LoadSQLite(db, table, opts)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d words from %s (%s)", vocab.Len(), path, table)
	return vocab, nil
}
