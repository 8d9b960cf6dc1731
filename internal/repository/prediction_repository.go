package repository

import (
	"context"
	"database/sql"

	"stancewatch/internal/model"
)

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// GetArticleIDsWithoutPrediction returns, in random order, the articles that
// have no prediction for the target yet. With force every article qualifies.
// A limit of zero means no limit.
func (r *PredictionRepository) GetArticleIDsWithoutPrediction(ctx context.Context, target, targetType string, limit int, force bool) ([]int64, error) {
	var limitArg sql.NullInt64
	if limit > 0 {
		limitArg = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	var rows *sql.Rows
	var err error
	if force {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id FROM articles
			ORDER BY random()
			LIMIT $1
		`, limitArg)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT a.id
			FROM articles a
			LEFT JOIN stance_predictions sp
				ON sp.article_id = a.id AND sp.target = $1 AND sp.target_type = $2
			WHERE sp.id IS NULL
			ORDER BY random()
			LIMIT $3
		`, target, targetType, limitArg)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// SavePrediction inserts the prediction or replaces the existing one for the
// same article, target and target type.
func (r *PredictionRepository) SavePrediction(ctx context.Context, p *model.StancePrediction) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO stance_predictions(article_id, target, target_type, stance, justification)
		VALUES($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT unique_article_target_prediction DO UPDATE
			SET stance = EXCLUDED.stance,
				justification = EXCLUDED.justification,
				created_at = now()
		RETURNING id, created_at
	`, p.ArticleID, p.Target, p.TargetType, p.Stance, p.Justification).Scan(&p.ID, &p.CreatedAt)
}

// CountPredictions tallies stored predictions per target and target type.
// Empty filters match everything.
func (r *PredictionRepository) CountPredictions(ctx context.Context, target, targetType string) ([]model.PredictionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT target, target_type, COUNT(id)
		FROM stance_predictions
		WHERE ($1 = '' OR target = $1)
			AND ($2 = '' OR target_type = $2)
		GROUP BY target, target_type
		ORDER BY target, target_type
	`, target, targetType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.PredictionCount
	for rows.Next() {
		var c model.PredictionCount
		if err := rows.Scan(&c.Target, &c.TargetType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
