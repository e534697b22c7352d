package repos

import (
	"pricesmart/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WatchlistRepo struct{ db *sqlx.DB }

func NewWatchlistRepo(db *sqlx.DB) *WatchlistRepo { return &WatchlistRepo{db: db} }

// Upsert adds a product to a user's watchlist, or refreshes the current
// price on the existing row. Returns the entry id.
func (r *WatchlistRepo) Upsert(userID, productName string, currentPrice, targetPrice int) (string, error) {
	var id string
	err := r.db.Get(&id, `
		SELECT id FROM watchlist
		WHERE user_id=? AND LOWER(product_name)=LOWER(?)`, userID, productName)
	if err == nil {
		_, uerr := r.db.Exec(`
			UPDATE watchlist
			SET current_price=?, last_checked=CURRENT_TIMESTAMP, is_active=1
			WHERE id=?`, currentPrice, id)
		return id, uerr
	}
	id = uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO watchlist(id,user_id,product_name,current_price,target_price)
		VALUES(?,?,?,?,?)`,
		id, userID, productName, currentPrice, targetPrice)
	return id, err
}

func (r *WatchlistRepo) ListByUser(userID string) ([]domain.WatchlistEntry, error) {
	var out []domain.WatchlistEntry
	err := r.db.Select(&out, `
		SELECT id,user_id,product_name,current_price,target_price,
		       added_at, COALESCE(last_checked,'') AS last_checked, is_active
		FROM watchlist
		WHERE user_id=? AND is_active=1
		ORDER BY added_at DESC`, userID)
	return out, err
}

func (r *WatchlistRepo) SetTarget(userID, entryID string, targetPrice int) error {
	_, err := r.db.Exec(`
		UPDATE watchlist SET target_price=?
		WHERE id=? AND user_id=?`, targetPrice, entryID, userID)
	return err
}

// Deactivate is a logical delete; the row stays for history.
func (r *WatchlistRepo) Deactivate(userID, entryID string) error {
	_, err := r.db.Exec(`
		UPDATE watchlist SET is_active=0
		WHERE id=? AND user_id=?`, entryID, userID)
	return err
}

// ActiveRow is one active watchlist entry joined with its owner's email.
type ActiveRow struct {
	domain.WatchlistEntry
	Email string `db:"email"`
}

// ListActiveWithEmail returns every active entry joined to the owning
// user's contact address, in insertion order.
func (r *WatchlistRepo) ListActiveWithEmail() ([]ActiveRow, error) {
	var out []ActiveRow
	err := r.db.Select(&out, `
		SELECT w.id, w.user_id, w.product_name, w.current_price, w.target_price,
		       w.added_at, COALESCE(w.last_checked,'') AS last_checked, w.is_active,
		       u.email
		FROM watchlist w
		JOIN users u ON u.id = w.user_id
		WHERE w.is_active=1 AND u.is_active=1
		ORDER BY w.added_at`)
	return out, err
}

func (r *WatchlistRepo) MarkChecked(entryID string) error {
	_, err := r.db.Exec(`UPDATE watchlist SET last_checked=CURRENT_TIMESTAMP WHERE id=?`, entryID)
	return err
}

// UpdateCurrentPrice refreshes the stored price for an entry, used when
// a new search observes the product at a different price.
func (r *WatchlistRepo) UpdateCurrentPrice(entryID string, price int) error {
	_, err := r.db.Exec(`UPDATE watchlist SET current_price=? WHERE id=?`, price, entryID)
	return err
}
