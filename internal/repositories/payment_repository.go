package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledger-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, client_id, to_char(date_paiement, 'YYYY-MM-DD'), type_paiement, paiement::float8`

func scanPayment(row scanner) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.ClientID, &p.Date, &p.Type, &p.Amount); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx,
		`INSERT INTO paiements(client_id, date_paiement, type_paiement, paiement)
         VALUES($1, $2::date, $3, $4)
         RETURNING `+paymentColumns,
		p.ClientID, p.Date, p.Type, p.Amount,
	))
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM paiements WHERE id=$1`, id))
}

// ListByClient returns every payment of a client, newest first, undated last.
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID int) ([]models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM paiements
         WHERE client_id=$1
         ORDER BY date_paiement DESC NULLS LAST, id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx,
		`UPDATE paiements SET date_paiement=$1::date, type_paiement=$2, paiement=$3
         WHERE id=$4
         RETURNING `+paymentColumns,
		p.Date, p.Type, p.Amount, p.ID))
}

func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM paiements WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) DeleteByClient(ctx context.Context, clientID int) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM paiements WHERE client_id=$1`, clientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListPage returns one window of all payments with the owning client's name,
// together with the overall count.
func (r *PaymentRepository) ListPage(ctx context.Context, offset, limit int) ([]models.Payment, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM paiements`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.client_id, to_char(p.date_paiement, 'YYYY-MM-DD'), p.type_paiement,
                p.paiement::float8, c.full_name
         FROM paiements p
         INNER JOIN clients c ON c.id = p.client_id
         ORDER BY p.date_paiement DESC NULLS LAST, p.id DESC
         OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Date, &p.Type, &p.Amount, &p.ClientName); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

// Total sums every recorded payment.
func (r *PaymentRepository) Total(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(SUM(paiement), 0)::float8 FROM paiements`).Scan(&total)
	return total, err
}
