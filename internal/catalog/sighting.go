package catalog

import (
	"database/sql"
	"fmt"
	"strings"
)

const sightingColumns = "id, series_id, identifier, season, episode, quality, title, guid, feed, seen_at"

func scanSighting(scan func(dest ...any) error) (*Sighting, error) {
	s := &Sighting{}
	var season, episode sql.NullInt64
	if err := scan(&s.ID, &s.SeriesID, &s.Identifier, &season, &episode,
		&s.Quality, &s.Title, &s.GUID, &s.Feed, &s.SeenAt); err != nil {
		return nil, err
	}
	if season.Valid {
		n := int(season.Int64)
		s.Season = &n
	}
	if episode.Valid {
		n := int(episode.Int64)
		s.Episode = &n
	}
	return s, nil
}

func addSighting(q querier, s *Sighting) error {
	result, err := q.Exec(`
		INSERT INTO sightings (series_id, identifier, season, episode, quality, title, guid, feed, seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SeriesID, s.Identifier, s.Season, s.Episode, s.Quality, s.Title, s.GUID, s.Feed, s.SeenAt,
	)
	if err != nil {
		return fmt.Errorf("insert sighting: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	s.ID = id
	return nil
}

// AddSighting inserts a new sighting and sets its ID.
// Returns ErrDuplicate if the series already has a sighting with the same
// identifier, and ErrConstraint if the series does not exist.
func (s *Store) AddSighting(sg *Sighting) error { return addSighting(s.db, sg) }

// AddSighting inserts a new sighting within a transaction.
func (t *Tx) AddSighting(sg *Sighting) error { return addSighting(t.tx, sg) }

func getSighting(q querier, seriesID int64, identifier string) (*Sighting, error) {
	s, err := scanSighting(q.QueryRow(
		"SELECT "+sightingColumns+" FROM sightings WHERE series_id = ? AND identifier = ?",
		seriesID, identifier,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("get sighting %d/%s: %w", seriesID, identifier, mapSQLiteError(err))
	}
	return s, nil
}

// GetSighting retrieves the sighting of identifier for a series.
// Returns ErrNotFound if the episode has not been seen.
func (s *Store) GetSighting(seriesID int64, identifier string) (*Sighting, error) {
	return getSighting(s.db, seriesID, identifier)
}

// GetSighting retrieves a sighting within a transaction.
func (t *Tx) GetSighting(seriesID int64, identifier string) (*Sighting, error) {
	return getSighting(t.tx, seriesID, identifier)
}

func updateSighting(q querier, s *Sighting) error {
	result, err := q.Exec(`
		UPDATE sightings SET quality = ?, title = ?, guid = ?, feed = ?, seen_at = ?
		WHERE id = ?`,
		s.Quality, s.Title, s.GUID, s.Feed, s.SeenAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update sighting %d: %w", s.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update sighting %d: %w", s.ID, ErrNotFound)
	}
	return nil
}

// UpdateSighting replaces the release details of an existing sighting.
// Returns ErrNotFound if the sighting does not exist.
func (s *Store) UpdateSighting(sg *Sighting) error { return updateSighting(s.db, sg) }

// UpdateSighting updates a sighting within a transaction.
func (t *Tx) UpdateSighting(sg *Sighting) error { return updateSighting(t.tx, sg) }

func listSightings(q querier, f SightingFilter) ([]*Sighting, int, error) {
	var conditions []string
	var args []any

	if f.SeriesID != nil {
		conditions = append(conditions, "series_id = ?")
		args = append(args, *f.SeriesID)
	}
	if f.Feed != nil {
		conditions = append(conditions, "feed = ?")
		args = append(args, *f.Feed)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM sightings "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sightings: %w", err)
	}

	query := "SELECT " + sightingColumns + " FROM sightings " + whereClause + " ORDER BY seen_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sightings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Sighting
	for rows.Next() {
		s, err := scanSighting(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sighting: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sightings: %w", err)
	}

	return results, total, nil
}

// ListSightings returns sightings matching the filter, newest first.
// Returns (results, totalCount, error).
func (s *Store) ListSightings(f SightingFilter) ([]*Sighting, int, error) {
	return listSightings(s.db, f)
}

// ListSightings returns sightings matching the filter within a transaction.
func (t *Tx) ListSightings(f SightingFilter) ([]*Sighting, int, error) {
	return listSightings(t.tx, f)
}
