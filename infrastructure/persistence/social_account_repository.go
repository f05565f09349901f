package persistence

import (
	"context"
	"database/sql"

	"hireboard/domain/model"
)

// SocialAccountRepository reads connected platform accounts (PostgreSQL).
// Rows are written by the OAuth connection flow in the main ATS app; this
// service never mutates them.
type SocialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) *SocialAccountRepository {
	return &SocialAccountRepository{db: db}
}

func (r *SocialAccountRepository) ListByOrganization(ctx context.Context, organizationID string) ([]*model.SocialAccount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, organization_id, platform, external_account_id, account_name, sealed_access_token, sealed_refresh_token, expires_at, created_at, updated_at
FROM social_accounts WHERE organization_id=$1`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.SocialAccount
	for rows.Next() {
		acct := &model.SocialAccount{}
		var name sql.NullString
		var expires sql.NullTime
		if err := rows.Scan(&acct.ID, &acct.OrganizationID, &acct.Platform, &acct.ExternalAccountID, &name, &acct.SealedAccessToken, &acct.SealedRefreshToken, &expires, &acct.CreatedAt, &acct.UpdatedAt); err != nil {
			return nil, err
		}
		if name.Valid {
			acct.AccountName = &name.String
		}
		if expires.Valid {
			acct.ExpiresAt = &expires.Time
		}
		list = append(list, acct)
	}
	return list, rows.Err()
}
