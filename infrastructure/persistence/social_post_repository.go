package persistence

import (
	"context"
	"database/sql"
	"time"

	"hireboard/domain/model"
)

// SocialPostRepository persists successful publishes (PostgreSQL). One row per
// (job, account); re-publishing updates the existing row.
type SocialPostRepository struct {
	db *sql.DB
}

func NewSocialPostRepository(db *sql.DB) *SocialPostRepository {
	return &SocialPostRepository{db: db}
}

func (r *SocialPostRepository) Upsert(ctx context.Context, post *model.SocialPost) error {
	now := time.Now().UTC()
	q := `INSERT INTO social_posts (job_id, account_id, platform, external_post_id, canonical_url, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
ON CONFLICT (job_id, account_id) DO UPDATE SET
  external_post_id = EXCLUDED.external_post_id,
  canonical_url = EXCLUDED.canonical_url,
  updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, post.JobID, post.AccountID, post.Platform, post.ExternalPostID, post.CanonicalURL, now)
	return err
}

func (r *SocialPostRepository) ListByJob(ctx context.Context, jobID string) ([]*model.SocialPost, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, job_id, account_id, platform, external_post_id, canonical_url, created_at, updated_at
FROM social_posts WHERE job_id=$1`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.SocialPost
	for rows.Next() {
		p := &model.SocialPost{}
		if err := rows.Scan(&p.ID, &p.JobID, &p.AccountID, &p.Platform, &p.ExternalPostID, &p.CanonicalURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
