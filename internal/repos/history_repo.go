package repos

import (
	"github.com/jmoiron/sqlx"
)

type HistoryRepo struct{ db *sqlx.DB }

func NewHistoryRepo(db *sqlx.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Record stores one observed price point for a product.
func (r *HistoryRepo) Record(productName string, price int, platform string) error {
	_, err := r.db.Exec(`
		INSERT INTO price_history(product_name, price, platform)
		VALUES(?,?,?)`, productName, price, platform)
	return err
}

// LatestPrice returns the most recently recorded price for a product,
// or sql.ErrNoRows when the product was never observed.
func (r *HistoryRepo) LatestPrice(productName string) (int, error) {
	var price int
	err := r.db.Get(&price, `
		SELECT price FROM price_history
		WHERE LOWER(product_name)=LOWER(?)
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1`, productName)
	return price, err
}
