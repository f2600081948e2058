package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledger-backend/internal/models"
)

type PurchaseRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

const purchaseColumns = `id, client_id, to_char(date_achat, 'YYYY-MM-DD'), quantite::float8, type, classe,
        poids::float8, prix_unitaire::float8, prix_total::float8`

func scanPurchase(row scanner, extra ...any) (*models.Purchase, error) {
	var p models.Purchase
	dest := []any{&p.ID, &p.ClientID, &p.Date, &p.Quantity, &p.Type, &p.Class, &p.Weight, &p.UnitPrice, &p.TotalPrice}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) (*models.Purchase, error) {
	return scanPurchase(r.DB.QueryRow(ctx,
		`INSERT INTO achats(client_id, date_achat, quantite, type, classe, poids, prix_unitaire, prix_total)
         VALUES($1, $2::date, $3, $4, $5, $6, $7, $8)
         RETURNING `+purchaseColumns,
		p.ClientID, p.Date, p.Quantity, p.Type, p.Class, p.Weight, p.UnitPrice, p.TotalPrice,
	))
}

func (r *PurchaseRepository) Get(ctx context.Context, id int) (*models.Purchase, error) {
	return scanPurchase(r.DB.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM achats WHERE id=$1`, id))
}

func (r *PurchaseRepository) ListByClient(ctx context.Context, clientID int) ([]models.Purchase, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM achats
         WHERE client_id=$1
         ORDER BY date_achat DESC NULLS LAST, id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

func (r *PurchaseRepository) Update(ctx context.Context, p *models.Purchase) (*models.Purchase, error) {
	return scanPurchase(r.DB.QueryRow(ctx,
		`UPDATE achats SET date_achat=$1::date, quantite=$2, type=$3, classe=$4, poids=$5,
                prix_unitaire=$6, prix_total=$7
         WHERE id=$8
         RETURNING `+purchaseColumns,
		p.Date, p.Quantity, p.Type, p.Class, p.Weight, p.UnitPrice, p.TotalPrice, p.ID))
}

func (r *PurchaseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM achats WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) DeleteByClient(ctx context.Context, clientID int) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM achats WHERE client_id=$1`, clientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PurchaseRepository) ListPage(ctx context.Context, offset, limit int) ([]models.Purchase, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM achats`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT a.id, a.client_id, to_char(a.date_achat, 'YYYY-MM-DD'), a.quantite::float8, a.type, a.classe,
                a.poids::float8, a.prix_unitaire::float8, a.prix_total::float8, c.full_name
         FROM achats a
         INNER JOIN clients c ON c.id = a.client_id
         ORDER BY a.date_achat DESC NULLS LAST, a.id DESC
         OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var name string
		p, err := scanPurchase(rows, &name)
		if err != nil {
			return nil, 0, err
		}
		p.ClientName = name
		purchases = append(purchases, *p)
	}
	return purchases, total, rows.Err()
}

// Total sums every purchase's total price.
func (r *PurchaseRepository) Total(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(SUM(prix_total), 0)::float8 FROM achats`).Scan(&total)
	return total, err
}
