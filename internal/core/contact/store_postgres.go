package contact

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListContacts(context context.Context, titleID string) ([]*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.AdminContact.ID, schema.AdminContact.TitleID, schema.AdminContact.Name, schema.AdminContact.Email,
		schema.AdminContact.Phone, schema.AdminContact.Note, schema.AdminContact.CreatedAt, schema.AdminContact.UpdatedAt,
		schema.AdminContact.Table, schema.AdminContact.TitleID, schema.AdminContact.Name,
	)

	rows, err := repository.db.Query(context, query, titleID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_contacts")
	}
	defer rows.Close()

	var contacts []*Contact
	for rows.Next() {
		c := &Contact{}
		if err := rows.Scan(&c.ID, &c.TitleID, &c.Name, &c.Email, &c.Phone, &c.Note, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_contact")
		}
		contacts = append(contacts, c)
	}

	return contacts, nil
}

func (repository *PostgresRepository) GetContact(context context.Context, id string) (*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.AdminContact.ID, schema.AdminContact.TitleID, schema.AdminContact.Name, schema.AdminContact.Email,
		schema.AdminContact.Phone, schema.AdminContact.Note, schema.AdminContact.CreatedAt, schema.AdminContact.UpdatedAt,
		schema.AdminContact.Table, schema.AdminContact.ID,
	)

	c := &Contact{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.TitleID, &c.Name, &c.Email, &c.Phone, &c.Note, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, dberr.Wrap(err, "get_contact")
}

func (repository *PostgresRepository) CreateContact(context context.Context, contact *Contact) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.AdminContact.Table,
		schema.AdminContact.ID, schema.AdminContact.TitleID, schema.AdminContact.Name, schema.AdminContact.Email,
		schema.AdminContact.Phone, schema.AdminContact.Note, schema.AdminContact.CreatedAt, schema.AdminContact.UpdatedAt,
		schema.AdminContact.CreatedAt, schema.AdminContact.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		contact.ID, contact.TitleID, contact.Name, contact.Email, contact.Phone, contact.Note,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)
	return dberr.Wrap(err, "create_contact")
}

func (repository *PostgresRepository) UpdateContact(context context.Context, contact *Contact) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.AdminContact.Table,
		schema.AdminContact.Name, schema.AdminContact.Email, schema.AdminContact.Phone, schema.AdminContact.Note,
		schema.AdminContact.UpdatedAt,
		schema.AdminContact.ID, schema.AdminContact.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Note,
	).Scan(&contact.UpdatedAt)
	return dberr.Wrap(err, "update_contact")
}

func (repository *PostgresRepository) DeleteContact(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.AdminContact.Table, schema.AdminContact.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_contact")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
