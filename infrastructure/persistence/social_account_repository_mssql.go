package persistence

import (
	"context"
	"database/sql"

	"hireboard/domain/model"
)

// SocialAccountRepositoryMSSQL reads connected platform accounts from SQL
// Server / Azure SQL.
type SocialAccountRepositoryMSSQL struct{ db *sql.DB }

func NewSocialAccountRepositoryMSSQL(db *sql.DB) *SocialAccountRepositoryMSSQL {
	return &SocialAccountRepositoryMSSQL{db: db}
}

func (r *SocialAccountRepositoryMSSQL) ListByOrganization(ctx context.Context, organizationID string) ([]*model.SocialAccount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, organization_id, platform, external_account_id, account_name, sealed_access_token, sealed_refresh_token, expires_at, created_at, updated_at
FROM dbo.[social_accounts] WHERE organization_id=@p1`, organizationID)
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
