package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"personalblog/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (*models.Counts, error) {
	var counts models.Counts

	err := r.db.GetContext(ctx, &counts, `
			SELECT
				(SELECT COUNT(*) FROM users) AS users,
				(SELECT COUNT(*) FROM blog_posts) AS posts,
				(SELECT COUNT(*) FROM comments) AS comments
		`)

	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	return &counts, nil
}
