package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledger-backend/internal/models"
)

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

const clientColumns = `id, full_name, phone_number, address, created_at`

func scanClient(row scanner) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.FullName, &c.PhoneNumber, &c.Address, &c.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	return scanClient(r.DB.QueryRow(ctx,
		`INSERT INTO clients(full_name, phone_number, address)
         VALUES($1, $2, $3)
         RETURNING `+clientColumns,
		req.FullName, req.PhoneNumber, req.Address,
	))
}

func (r *ClientRepository) Get(ctx context.Context, id int) (*models.Client, error) {
	return scanClient(r.DB.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
}

// List returns clients by name. A non-empty query keeps rows whose name, phone
// or address contains it, ignoring case.
func (r *ClientRepository) List(ctx context.Context, query string) ([]models.Client, error) {
	sql := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	if query != "" {
		sql += ` WHERE full_name ILIKE $1 OR phone_number ILIKE $1 OR address ILIKE $1`
		args = append(args, "%"+escapeLike(query)+"%")
	}
	sql += ` ORDER BY full_name ASC, id ASC`

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	return scanClient(r.DB.QueryRow(ctx,
		`UPDATE clients SET full_name=$1, phone_number=$2, address=$3
         WHERE id=$4
         RETURNING `+clientColumns,
		req.FullName, req.PhoneNumber, req.Address, id))
}

func (r *ClientRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes the client's payments, its purchases and the client in
// one transaction. Nothing is removed if any step fails.
func (r *ClientRepository) DeleteCascade(ctx context.Context, id int) (CascadeResult, error) {
	var res CascadeResult

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM paiements WHERE client_id=$1`, id)
	if err != nil {
		return res, fmt.Errorf("Failed to delete client payments: %w", err)
	}
	res.Payments = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM achats WHERE client_id=$1`, id)
	if err != nil {
		return res, fmt.Errorf("Failed to delete client purchases: %w", err)
	}
	res.Purchases = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return res, fmt.Errorf("Failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return res, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// CascadeResult counts the dependent rows removed with a client.
type CascadeResult struct {
	Payments  int64 `json:"payments"`
	Purchases int64 `json:"purchases"`
}
