package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stancewatch/internal/model"

	"github.com/lib/pq"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// articleListQuery builds the listing query. Only articles that have at least
// one category and one prediction are listed; prediction filters narrow the
// set but every prediction of a matching article is still returned.
func articleListQuery(filter model.ArticleFilter) (string, []any) {
	var conds []string
	var args []any

	predictionConds := []string{"sp.article_id = a.id"}
	if filter.Target != "" {
		args = append(args, filter.Target)
		predictionConds = append(predictionConds, fmt.Sprintf("sp.target = $%d", len(args)))
	}
	if filter.TargetType != "" {
		args = append(args, filter.TargetType)
		predictionConds = append(predictionConds, fmt.Sprintf("sp.target_type = $%d", len(args)))
	}
	if filter.Stance != "" {
		args = append(args, filter.Stance)
		predictionConds = append(predictionConds, fmt.Sprintf("sp.stance = $%d", len(args)))
	}

	conds = append(conds,
		"EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id)",
		"EXISTS (SELECT 1 FROM stance_predictions sp WHERE "+strings.Join(predictionConds, " AND ")+")",
	)

	args = append(args, filter.Limit, filter.Skip)

	query := fmt.Sprintf(`
		SELECT a.id, a.title, COALESCE(a.content, ''), a.article_url, a.published_date,
			b.id, b.name, b.profile_url
		FROM articles a
		JOIN bloggers b ON b.id = a.blogger_id
		WHERE %s
		ORDER BY a.published_date DESC NULLS LAST, a.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conds, "\n\t\t\tAND "), len(args)-1, len(args))

	return query, args
}

func (r *ArticleRepository) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error) {
	query, args := articleListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return articles, nil
	}

	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	categories, err := r.GetCategoriesByArticleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	predictions, err := r.GetPredictionsByArticleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].Categories = categories[articles[i].ID]
		articles[i].Predictions = predictions[articles[i].ID]
	}

	return articles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var a model.Article
	var published sql.NullTime

	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.ArticleURL, &published,
		&a.Blogger.ID, &a.Blogger.Name, &a.Blogger.ProfileURL)
	if err != nil {
		return nil, err
	}

	if published.Valid {
		t := published.Time
		a.PublishedDate = &t
	}

	return &a, nil
}

func (r *ArticleRepository) GetArticleByID(ctx context.Context, id int64) (*model.Article, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT a.id, a.title, COALESCE(a.content, ''), a.article_url, a.published_date,
			b.id, b.name, b.profile_url
		FROM articles a
		JOIN bloggers b ON b.id = a.blogger_id
		WHERE a.id = $1
	`, id)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return a, nil
}

func (r *ArticleRepository) GetCategoriesByArticleIDs(ctx context.Context, ids []int64) (map[int64][]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ac.article_id, c.id, c.name
		FROM article_categories ac
		JOIN categories c ON c.id = ac.category_id
		WHERE ac.article_id = ANY($1)
		ORDER BY c.name
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]model.Category)
	for rows.Next() {
		var articleID int64
		var c model.Category
		if err := rows.Scan(&articleID, &c.ID, &c.Name); err != nil {
			return nil, err
		}
		result[articleID] = append(result[articleID], c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ArticleRepository) GetPredictionsByArticleIDs(ctx context.Context, ids []int64) (map[int64][]model.StancePrediction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, article_id, target, target_type, stance, justification, created_at
		FROM stance_predictions
		WHERE article_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]model.StancePrediction)
	for rows.Next() {
		var p model.StancePrediction
		var justification sql.NullString
		err := rows.Scan(&p.ID, &p.ArticleID, &p.Target, &p.TargetType, &p.Stance, &justification, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		if justification.Valid {
			j := justification.String
			p.Justification = &j
		}
		result[p.ArticleID] = append(result[p.ArticleID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// SaveScraped stores a scraped article together with its blogger and
// categories. It reports false when an article with the same URL exists.
func (r *ArticleRepository) SaveScraped(ctx context.Context, article *model.Article) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bloggers(name, profile_url)
		VALUES($1, $2)
		ON CONFLICT (name) DO UPDATE
			SET profile_url = CASE WHEN bloggers.profile_url = '' THEN EXCLUDED.profile_url ELSE bloggers.profile_url END
		RETURNING id
	`, article.Blogger.Name, article.Blogger.ProfileURL).Scan(&article.Blogger.ID)
	if err != nil {
		return false, fmt.Errorf("save blogger: %w", err)
	}

	var published any
	if article.PublishedDate != nil {
		published = *article.PublishedDate
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO articles(blogger_id, title, content, article_url, published_date)
		VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (article_url) DO NOTHING
		RETURNING id
	`, article.Blogger.ID, article.Title, article.Content, article.ArticleURL, published).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("save article: %w", err)
	}

	article.ID = id

	names := make([]string, 0, len(article.Categories))
	for _, c := range article.Categories {
		names = append(names, c.Name)
	}

	if len(names) > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories(name)
			SELECT unnest($1::text[])
			ON CONFLICT (name) DO NOTHING
		`, pq.Array(names))
		if err != nil {
			return false, fmt.Errorf("save categories: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO article_categories(article_id, category_id)
			SELECT $1, id FROM categories WHERE name = ANY($2)
			ON CONFLICT DO NOTHING
		`, id, pq.Array(names))
		if err != nil {
			return false, fmt.Errorf("link categories: %w", err)
		}
	}

	return true, tx.Commit()
}

func (r *ArticleRepository) SaveError(ctx context.Context, articleID int64, errMsg string, errType string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_error(article_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, articleID, errMsg, errType)

	return err
}

func (r *ArticleRepository) GetErrorCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM processing_error
		WHERE article_id = $1
	`, id).Scan(&count)

	return count, err
}

