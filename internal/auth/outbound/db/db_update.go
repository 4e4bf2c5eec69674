package db

import (
	"context"
	"time"
)

const updateLastLogin = `
UPDATE identities
SET last_login_at = $2, updated_at = NOW()
WHERE id = $1
`

func (s *DB) UpdateLastLogin(ctx context.Context, id int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLastLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, updateLastLogin, id, at)
	err = s.mapError(err)
	return err
}
