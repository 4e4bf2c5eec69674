package db

import (
	"context"
	"encoding/json"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
)

const getIdentityByEmail = `
SELECT id, email, password_hash, role, verified, active, profile, last_login_at, created_at, updated_at
FROM identities
WHERE email = $1
`

func (s *DB) GetIdentityByEmail(ctx context.Context, email string) (out entity.Identity, err error) {
	ctx, span := s.startSpan(ctx, "GetIdentityByEmail")
	defer func() { s.endSpan(span, err) }()

	var (
		role    string
		profile []byte
	)

	row := s.conn.QueryRow(ctx, getIdentityByEmail, email)
	err = s.mapError(row.Scan(
		&out.ID,
		&out.Email,
		&out.PasswordHash,
		&role,
		&out.Verified,
		&out.Active,
		&profile,
		&out.LastLoginAt,
		&out.CreatedAt,
		&out.UpdatedAt,
	))
	if err != nil {
		return entity.Identity{}, err
	}

	out.Role = entity.RoleFromString(role)
	if err = json.Unmarshal(profile, &out.Profile); err != nil {
		return entity.Identity{}, err
	}

	return out, nil
}
