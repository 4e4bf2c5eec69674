package db

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/intelliverse/intelliverse/internal/lostfound/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

const createItem = `
INSERT INTO lostfound_items (id, title, description, location, occurred_at, image_key, status, attributes, reported_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (s *DB) CreateItem(ctx context.Context, in entity.NewItem) (err error) {
	ctx, span := s.startSpan(ctx, "CreateItem")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createItem,
		in.ID,
		in.Title,
		in.Description,
		in.Location,
		in.OccurredAt,
		in.ImageKey,
		in.Status.String(),
		in.Attributes,
		in.ReportedBy,
	)
	err = s.mapError(err)
	return err
}

const itemColumns = `id, title, description, location, occurred_at, image_key, status, attributes, reported_by, claimed_by, claimed_at, created_at, updated_at`

func (s *DB) scanItem(row pgx.Row) (entity.Item, error) {
	var (
		out    entity.Item
		status string
	)

	err := row.Scan(
		&out.ID,
		&out.Title,
		&out.Description,
		&out.Location,
		&out.OccurredAt,
		&out.ImageKey,
		&status,
		&out.Attributes,
		&out.ReportedBy,
		&out.ClaimedBy,
		&out.ClaimedAt,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return entity.Item{}, err
	}

	out.Status = entity.ItemStatusFromString(status)

	return out, nil
}

func (s *DB) GetItemByID(ctx context.Context, id int64) (out entity.Item, err error) {
	ctx, span := s.startSpan(ctx, "GetItemByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+itemColumns+` FROM lostfound_items WHERE id = $1`, id)

	out, err = s.scanItem(row)
	err = s.mapError(err)
	if err != nil {
		return entity.Item{}, err
	}

	return out, nil
}

const getItemReporter = `
SELECT li.title, li.reported_by, i.email, concat_ws(' ', i.profile->>'first_name', i.profile->>'last_name')
FROM lostfound_items li
JOIN identities i ON i.id = li.reported_by
WHERE li.id = $1
`

// GetItemReporter resolves the contact of the identity that filed the item.
func (s *DB) GetItemReporter(ctx context.Context, id int64) (out entity.ItemReporter, err error) {
	ctx, span := s.startSpan(ctx, "GetItemReporter")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, getItemReporter, id)

	err = row.Scan(&out.Title, &out.ReportedBy, &out.Email, &out.FullName)
	err = s.mapError(err)
	if err != nil {
		return entity.ItemReporter{}, err
	}

	return out, nil
}

// GetItemList returns newest-first items matching the filter plus the total
// match count for pagination.
func (s *DB) GetItemList(ctx context.Context, filter entity.ItemListFilter) (out []entity.Item, total int64, err error) {
	ctx, span := s.startSpan(ctx, "GetItemList")
	defer func() { s.endSpan(span, err) }()

	var (
		conds []string
		args  []any
	)

	if filter.Status.IsValid() {
		args = append(args, filter.Status.String())
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conds = append(conds, "location ILIKE $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM lostfound_items`+where, args...).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPos := strconv.Itoa(len(args))

	rows, err := s.conn.Query(ctx,
		`SELECT `+itemColumns+` FROM lostfound_items`+where+
			` ORDER BY created_at DESC LIMIT $`+limitPos+` OFFSET $`+offsetPos,
		args...)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		item, scanErr := s.scanItem(rows)
		if scanErr != nil {
			err = s.mapError(scanErr)
			return nil, 0, err
		}
		out = append(out, item)
	}

	if err = s.mapError(rows.Err()); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

const claimItem = `
UPDATE lostfound_items
SET status = 'claimed', claimed_by = $2, claimed_at = $3, updated_at = NOW()
WHERE id = $1 AND status <> 'claimed'
`

// ClaimItem marks the item claimed. Claiming an already claimed item
// reports conflict; claiming a missing item reports not found.
func (s *DB) ClaimItem(ctx context.Context, id, claimedBy int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "ClaimItem")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, claimItem, id, claimedBy, at)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		if _, err = s.GetItemByID(ctx, id); err != nil {
			return err
		}
		err = goerror.ErrConflict
		return err
	}

	return nil
}

func (s *DB) DeleteItem(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteItem")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM lostfound_items WHERE id = $1`, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
