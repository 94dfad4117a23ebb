package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/tournament-portal/models"
)

type BadgeRepository interface {
	// CountsByUserID groups the badges a user owns, most owned first.
	CountsByUserID(ctx context.Context, userID int) ([]models.BadgeCount, error)
}

type postgresBadgeRepository struct {
	db SQLExecutor
}

func NewPostgresBadgeRepository(db *sql.DB) BadgeRepository {
	return &postgresBadgeRepository{db: db}
}

func (r *postgresBadgeRepository) CountsByUserID(ctx context.Context, userID int) ([]models.BadgeCount, error) {
	query := `
		SELECT b.code, b.display_name, b.hue, count(*) AS owned
		FROM badge_owners bo
		JOIN badges b ON b.id = bo.badge_id
		WHERE bo.user_id = $1
		GROUP BY b.id, b.code, b.display_name, b.hue
		ORDER BY owned DESC, b.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]models.BadgeCount, 0)
	for rows.Next() {
		var c models.BadgeCount
		if err := rows.Scan(&c.Code, &c.DisplayName, &c.Hue, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
