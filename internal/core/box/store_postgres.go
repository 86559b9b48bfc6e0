package box

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/arkiva/internal/platform/database/schema"
	"github.com/taibuivan/arkiva/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListBoxes(context context.Context, filter Filter, limit, offset int) ([]*Box, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE 1=1
	`,
		schema.AdminBox.ID, schema.AdminBox.TitleID, schema.AdminBox.TitleName, schema.AdminBox.Year,
		schema.AdminBox.Barcode, schema.AdminBox.Active, schema.AdminBox.CreatedAt, schema.AdminBox.UpdatedAt,
		schema.AdminBox.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE 1=1`, schema.AdminBox.Table)

	args := []any{}
	countArgs := []any{}

	if filter.TitleID != "" {
		clause := fmt.Sprintf(" AND %s = $%d", schema.AdminBox.TitleID, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, filter.TitleID)
		countArgs = append(countArgs, filter.TitleID)
	}
	if filter.Year != 0 {
		clause := fmt.Sprintf(" AND %s = $%d", schema.AdminBox.Year, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, filter.Year)
		countArgs = append(countArgs, filter.Year)
	}
	if filter.Active != nil {
		clause := fmt.Sprintf(" AND %s = $%d", schema.AdminBox.Active, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, *filter.Active)
		countArgs = append(countArgs, *filter.Active)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT $", schema.AdminBox.CreatedAt) + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_boxes")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_boxes")
	}
	defer rows.Close()

	var boxes []*Box
	for rows.Next() {
		b := &Box{}
		if err := rows.Scan(&b.ID, &b.TitleID, &b.TitleName, &b.Year, &b.Barcode, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_box")
		}
		boxes = append(boxes, b)
	}

	return boxes, total, nil
}

func (repository *PostgresRepository) GetBox(context context.Context, id string) (*Box, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.AdminBox.ID, schema.AdminBox.TitleID, schema.AdminBox.TitleName, schema.AdminBox.Year,
		schema.AdminBox.Barcode, schema.AdminBox.Active, schema.AdminBox.CreatedAt, schema.AdminBox.UpdatedAt,
		schema.AdminBox.Table, schema.AdminBox.ID,
	)

	b := &Box{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&b.ID, &b.TitleID, &b.TitleName, &b.Year, &b.Barcode, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, dberr.Wrap(err, "get_box")
}

func (repository *PostgresRepository) GetActiveBox(context context.Context, titleID string) (*Box, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE
	`,
		schema.AdminBox.ID, schema.AdminBox.TitleID, schema.AdminBox.TitleName, schema.AdminBox.Year,
		schema.AdminBox.Barcode, schema.AdminBox.Active, schema.AdminBox.CreatedAt, schema.AdminBox.UpdatedAt,
		schema.AdminBox.Table, schema.AdminBox.TitleID, schema.AdminBox.Active,
	)

	b := &Box{}
	err := repository.db.QueryRow(context, query, titleID).Scan(
		&b.ID, &b.TitleID, &b.TitleName, &b.Year, &b.Barcode, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, dberr.Wrap(err, "get_active_box")
}

// CreateBox inserts the box and, in the same transaction, deactivates the
// title's previously active box. One active box per title is an invariant
// the bookkeeping relies on.
func (repository *PostgresRepository) CreateBox(context context.Context, box *Box) error {
	deactivate := fmt.Sprintf(`
		UPDATE %s SET %s = FALSE, %s = NOW()
		WHERE %s = $1 AND %s = TRUE
	`,
		schema.AdminBox.Table, schema.AdminBox.Active, schema.AdminBox.UpdatedAt,
		schema.AdminBox.TitleID, schema.AdminBox.Active,
	)
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.AdminBox.Table,
		schema.AdminBox.ID, schema.AdminBox.TitleID, schema.AdminBox.TitleName, schema.AdminBox.Year,
		schema.AdminBox.Barcode, schema.AdminBox.Active, schema.AdminBox.CreatedAt, schema.AdminBox.UpdatedAt,
		schema.AdminBox.CreatedAt, schema.AdminBox.UpdatedAt,
	)

	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, deactivate, box.TitleID); err != nil {
			return err
		}
		return tx.QueryRow(context, insert,
			box.ID, box.TitleID, box.TitleName, box.Year, box.Barcode,
		).Scan(&box.CreatedAt, &box.UpdatedAt)
	})
	if err != nil {
		return dberr.Wrap(err, "create_box")
	}
	box.Active = true
	return nil
}

// ActivateBox flips the given box to active and deactivates its title's
// current active box in one transaction.
func (repository *PostgresRepository) ActivateBox(context context.Context, id string) (*Box, error) {
	b := &Box{}

	err := pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		lookup := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			schema.AdminBox.TitleID, schema.AdminBox.Table, schema.AdminBox.ID)

		var titleID string
		if err := tx.QueryRow(context, lookup, id).Scan(&titleID); err != nil {
			return err
		}

		deactivate := fmt.Sprintf(`
			UPDATE %s SET %s = FALSE, %s = NOW()
			WHERE %s = $1 AND %s = TRUE
		`,
			schema.AdminBox.Table, schema.AdminBox.Active, schema.AdminBox.UpdatedAt,
			schema.AdminBox.TitleID, schema.AdminBox.Active,
		)
		if _, err := tx.Exec(context, deactivate, titleID); err != nil {
			return err
		}

		activate := fmt.Sprintf(`
			UPDATE %s SET %s = TRUE, %s = NOW()
			WHERE %s = $1
			RETURNING %s, %s, %s, %s, %s, %s, %s, %s
		`,
			schema.AdminBox.Table, schema.AdminBox.Active, schema.AdminBox.UpdatedAt,
			schema.AdminBox.ID,
			schema.AdminBox.ID, schema.AdminBox.TitleID, schema.AdminBox.TitleName, schema.AdminBox.Year,
			schema.AdminBox.Barcode, schema.AdminBox.Active, schema.AdminBox.CreatedAt, schema.AdminBox.UpdatedAt,
		)
		return tx.QueryRow(context, activate, id).Scan(
			&b.ID, &b.TitleID, &b.TitleName, &b.Year, &b.Barcode, &b.Active, &b.CreatedAt, &b.UpdatedAt,
		)
	})

	return b, dberr.Wrap(err, "activate_box")
}
