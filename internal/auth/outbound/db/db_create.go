package db

import (
	"context"
	"encoding/json"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
)

const createIdentity = `
INSERT INTO identities (id, email, password_hash, role, verified, active, profile)
VALUES ($1, $2, $3, $4, $5, TRUE, $6)
`

func (s *DB) CreateIdentity(ctx context.Context, in entity.NewIdentity) (err error) {
	ctx, span := s.startSpan(ctx, "CreateIdentity")
	defer func() { s.endSpan(span, err) }()

	profile, err := json.Marshal(in.Profile)
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx, createIdentity,
		in.ID,
		in.Email,
		in.PasswordHash,
		in.Role.String(),
		in.Verified,
		profile,
	)
	err = s.mapError(err)
	return err
}
