package sqlite

import (
	"context"

	"github.com/linguastream/linguastream/internal/audio/domain"
)

type progressRepo struct {
	q dbtx
}

func (r *progressRepo) GetProgress(ctx context.Context, userID, trackID string) (domain.Progress, error) {
	var p domain.Progress
	err := r.q.QueryRowContext(ctx,
		`SELECT user_id, track_id, last_position, completion_rate, play_count, last_accessed
		 FROM user_progress WHERE user_id = ? AND track_id = ?`,
		userID, trackID).Scan(
		&p.UserID, &p.TrackID, &p.LastPosition, &p.CompletionRate,
		&p.PlayCount, &p.LastAccessed)
	if err != nil {
		return domain.Progress{}, mapNotFound(err)
	}
	return p, nil
}

func (r *progressRepo) UpsertProgress(ctx context.Context, p domain.Progress, bumpPlay bool) error {
	bump := 0
	if bumpPlay {
		bump = 1
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, track_id, last_position, completion_rate, play_count, last_accessed)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, track_id) DO UPDATE SET
		   last_position = excluded.last_position,
		   completion_rate = excluded.completion_rate,
		   play_count = user_progress.play_count + ?,
		   last_accessed = CURRENT_TIMESTAMP`,
		p.UserID, p.TrackID, p.LastPosition, p.CompletionRate, bump, bump)
	return err
}

func (r *progressRepo) ListCourseProgress(ctx context.Context, userID, courseID string) ([]domain.Progress, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT p.user_id, p.track_id, p.last_position, p.completion_rate, p.play_count, p.last_accessed
		 FROM user_progress p
		 JOIN tracks t ON t.id = p.track_id
		 WHERE p.user_id = ? AND t.course_id = ?
		 ORDER BY p.last_accessed DESC`,
		userID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Progress
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(&p.UserID, &p.TrackID, &p.LastPosition,
			&p.CompletionRate, &p.PlayCount, &p.LastAccessed); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
