package persistence

import (
	"context"
	"database/sql"
	"time"

	"hireboard/domain/model"
)

// SocialPostRepositoryMSSQL persists successful publishes on SQL Server /
// Azure SQL using MERGE for the (job, account) upsert.
type SocialPostRepositoryMSSQL struct{ db *sql.DB }

func NewSocialPostRepositoryMSSQL(db *sql.DB) *SocialPostRepositoryMSSQL {
	return &SocialPostRepositoryMSSQL{db: db}
}

func (r *SocialPostRepositoryMSSQL) Upsert(ctx context.Context, post *model.SocialPost) error {
	now := time.Now().UTC()
	q := `MERGE dbo.[social_posts] AS target
USING (VALUES (@p1, @p2)) AS src(job_id, account_id)
ON target.job_id = src.job_id AND target.account_id = src.account_id
WHEN MATCHED THEN UPDATE SET
  external_post_id = @p4,
  canonical_url = @p5,
  updated_at = @p6
WHEN NOT MATCHED THEN
  INSERT (job_id, account_id, platform, external_post_id, canonical_url, created_at, updated_at)
  VALUES (src.job_id, src.account_id, @p3, @p4, @p5, @p6, @p6);`
	_, err := r.db.ExecContext(ctx, q, post.JobID, post.AccountID, post.Platform, post.ExternalPostID, post.CanonicalURL, now)
	return err
}

func (r *SocialPostRepositoryMSSQL) ListByJob(ctx context.Context, jobID string) ([]*model.SocialPost, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, job_id, account_id, platform, external_post_id, canonical_url, created_at, updated_at
FROM dbo.[social_posts] WHERE job_id=@p1`, jobID)
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
