package sqlite

import (
	"context"
	"database/sql"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/store"
)

type tracksRepo struct {
	q dbtx
}

const trackColumns = `id, course_id, unit_id, owner_id, title, description,
	format, file_size, duration, sort_order, custom, created_at, updated_at`

func scanTrack(row interface{ Scan(...any) error }) (domain.Track, error) {
	var t domain.Track
	err := row.Scan(
		&t.ID, &t.CourseID, &t.UnitID, &t.OwnerID, &t.Title, &t.Description,
		&t.Format, &t.FileSize, &t.Duration, &t.SortOrder, &t.Custom,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *tracksRepo) GetTrackByID(ctx context.Context, id string) (domain.Track, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+trackColumns+` FROM tracks WHERE id = ?`, id)
	t, err := scanTrack(row)
	if err != nil {
		return domain.Track{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tracksRepo) ListUnitTracks(ctx context.Context, courseID, unitID, userID string) ([]domain.Track, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+trackColumns+`
		 FROM tracks
		 WHERE course_id = ? AND unit_id = ?
		   AND (custom = 0 OR owner_id = ?)
		 ORDER BY sort_order, created_at`,
		courseID, unitID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tracksRepo) CreateTrack(ctx context.Context, t domain.Track) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tracks (`+trackColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CourseID, t.UnitID, t.OwnerID, t.Title, t.Description,
		t.Format, t.FileSize, t.Duration, t.SortOrder, t.Custom,
		t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *tracksRepo) UpdateTrackMeta(ctx context.Context, trackID, title, description string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tracks
		 SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, trackID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tracksRepo) UpdateTrackSource(ctx context.Context, trackID string, fileSize int64, duration float64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tracks
		 SET file_size = ?, duration = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		fileSize, duration, trackID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tracksRepo) SetSortOrder(ctx context.Context, trackID string, sortOrder int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tracks
		 SET sort_order = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		sortOrder, trackID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tracksRepo) DeleteTrack(ctx context.Context, trackID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, trackID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow turns a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
