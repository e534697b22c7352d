package repos

import (
	"github.com/jmoiron/sqlx"
)

type SearchRepo struct{ db *sqlx.DB }

func NewSearchRepo(db *sqlx.DB) *SearchRepo { return &SearchRepo{db: db} }

// Log records one search. userID may be empty for anonymous searches.
func (r *SearchRepo) Log(query string, resultsCount int, userID string) error {
	if userID == "" {
		_, err := r.db.Exec(`
			INSERT INTO searches(query, results_count) VALUES(?,?)`,
			query, resultsCount)
		return err
	}
	_, err := r.db.Exec(`
		INSERT INTO searches(query, results_count, user_id) VALUES(?,?,?)`,
		query, resultsCount, userID)
	return err
}

type TrendingRow struct {
	Query string `db:"query"`
	Count int    `db:"cnt"`
}

// Trending returns the most searched queries of the last 7 days.
func (r *SearchRepo) Trending(limit int) ([]TrendingRow, error) {
	var out []TrendingRow
	err := r.db.Select(&out, `
		SELECT LOWER(query) AS query, COUNT(*) AS cnt
		FROM searches
		WHERE searched_at >= datetime('now','-7 days')
		GROUP BY LOWER(query)
		ORDER BY cnt DESC, query
		LIMIT ?`, limit)
	return out, err
}
