package sqlite

import (
	"context"
	"database/sql"
	"errors"
)

type courseAccessRepo struct {
	q dbtx
}

func (r *courseAccessRepo) HasAccess(ctx context.Context, userID, courseID string) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx,
		`SELECT 1 FROM course_access WHERE user_id = ? AND course_id = ?`,
		userID, courseID).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, err
	}
}

func (r *courseAccessRepo) GrantAccess(ctx context.Context, userID, courseID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO course_access (user_id, course_id) VALUES (?, ?)
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		userID, courseID)
	return err
}

func (r *courseAccessRepo) RevokeAccess(ctx context.Context, userID, courseID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM course_access WHERE user_id = ? AND course_id = ?`,
		userID, courseID)
	return err
}
