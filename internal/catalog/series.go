package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmunix/seriesmatch/pkg/release"
)

const seriesColumns = "id, name, name_key, patterns, added_at"

func scanSeries(scan func(dest ...any) error) (*Series, error) {
	s := &Series{}
	var patterns string
	if err := scan(&s.ID, &s.Name, &s.Key, &patterns, &s.AddedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(patterns), &s.Patterns); err != nil {
		return nil, fmt.Errorf("decode patterns of series %d: %w", s.ID, err)
	}
	return s, nil
}

func addSeries(q querier, s *Series) error {
	s.Key = release.NameKey(s.Name)
	if s.Key == "" {
		return fmt.Errorf("insert series %q: %w", s.Name, ErrConstraint)
	}
	if s.Patterns == nil {
		s.Patterns = []string{}
	}
	patterns, err := json.Marshal(s.Patterns)
	if err != nil {
		return fmt.Errorf("encode patterns: %w", err)
	}

	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO series (name, name_key, patterns, added_at)
		VALUES (?, ?, ?, ?)`,
		s.Name, s.Key, string(patterns), now,
	)
	if err != nil {
		return fmt.Errorf("insert series: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	s.ID = id
	s.AddedAt = now
	return nil
}

// AddSeries inserts a new series and sets its ID, Key and AddedAt.
// Returns ErrDuplicate if a series with the same key exists.
func (s *Store) AddSeries(series *Series) error { return addSeries(s.db, series) }

// AddSeries inserts a new series within a transaction.
func (t *Tx) AddSeries(series *Series) error { return addSeries(t.tx, series) }

func getSeries(q querier, id int64) (*Series, error) {
	s, err := scanSeries(q.QueryRow("SELECT "+seriesColumns+" FROM series WHERE id = ?", id).Scan)
	if err != nil {
		return nil, fmt.Errorf("get series %d: %w", id, mapSQLiteError(err))
	}
	return s, nil
}

// GetSeries retrieves a series by ID.
// Returns ErrNotFound if the series does not exist.
func (s *Store) GetSeries(id int64) (*Series, error) { return getSeries(s.db, id) }

// GetSeries retrieves a series by ID within a transaction.
func (t *Tx) GetSeries(id int64) (*Series, error) { return getSeries(t.tx, id) }

func getSeriesByName(q querier, name string) (*Series, error) {
	key := release.NameKey(name)
	s, err := scanSeries(q.QueryRow("SELECT "+seriesColumns+" FROM series WHERE name_key = ?", key).Scan)
	if err != nil {
		return nil, fmt.Errorf("get series %q: %w", name, mapSQLiteError(err))
	}
	return s, nil
}

// GetSeriesByName retrieves a series by name, compared by key so that
// "The.Office" finds "The Office".
func (s *Store) GetSeriesByName(name string) (*Series, error) { return getSeriesByName(s.db, name) }

// GetSeriesByName retrieves a series by name within a transaction.
func (t *Tx) GetSeriesByName(name string) (*Series, error) { return getSeriesByName(t.tx, name) }

func listSeries(q querier) ([]*Series, error) {
	rows, err := q.Query("SELECT " + seriesColumns + " FROM series ORDER BY name_key")
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Series
	for rows.Next() {
		s, err := scanSeries(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return results, nil
}

// ListSeries returns all tracked series ordered by key.
func (s *Store) ListSeries() ([]*Series, error) { return listSeries(s.db) }

// ListSeries returns all tracked series within a transaction.
func (t *Tx) ListSeries() ([]*Series, error) { return listSeries(t.tx) }

func deleteSeries(q querier, id int64) error {
	result, err := q.Exec("DELETE FROM series WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete series %d: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete series %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSeries removes a series and its sightings.
// Returns ErrNotFound if the series does not exist.
func (s *Store) DeleteSeries(id int64) error { return deleteSeries(s.db, id) }

// DeleteSeries removes a series within a transaction.
func (t *Tx) DeleteSeries(id int64) error { return deleteSeries(t.tx, id) }
