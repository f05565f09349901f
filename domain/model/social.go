package model

import "time"

// SocialAccount is a connected platform account for an organization. Token
// columns are sealed at rest; this subsystem only reads them.
type SocialAccount struct {
	ID                 int64      `json:"id"`
	OrganizationID     string     `json:"organization_id"`
	Platform           string     `json:"platform"`
	ExternalAccountID  string     `json:"external_account_id"`
	AccountName        *string    `json:"account_name,omitempty"`
	SealedAccessToken  []byte     `json:"-"`
	SealedRefreshToken []byte     `json:"-"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TokenBundle holds decrypted credentials for the duration of a single adapter
// call. Never persisted or logged.
type TokenBundle struct {
	AccountID         int64
	ExternalAccountID string
	AccessToken       string
	RefreshToken      string
	ExpiresAt         *time.Time
}

// SocialResult is the outcome of one platform branch of a dispatch call.
type SocialResult struct {
	Platform      string `json:"platform"`
	OK            bool   `json:"ok"`
	PostID        string `json:"post_id,omitempty"`
	Message       string `json:"message,omitempty"`
	RetryAfterSec int    `json:"retry_after_sec,omitempty"`
}

// SocialPost records a successful publish. Unique on (job_id, account_id);
// re-publishing updates the existing row.
type SocialPost struct {
	ID             int64     `json:"id"`
	JobID          string    `json:"job_id"`
	AccountID      int64     `json:"account_id"`
	Platform       string    `json:"platform"`
	ExternalPostID string    `json:"external_post_id"`
	CanonicalURL   string    `json:"canonical_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FilePayload is an optional media attachment for a publish call.
type FilePayload struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// PublishPayload is the immutable value shared by every platform branch of one
// dispatch call.
type PublishPayload struct {
	Title        string
	Body         string
	CanonicalURL string
	CompanyName  string
	TeamID       string
	ScheduleAt   *time.Time
	Media        []FilePayload
}

// RequeueTask is the minimal context a scheduled-queue message carries to
// re-invoke the dispatcher later with a narrowed platform list.
type RequeueTask struct {
	ID             string        `json:"id"`
	OrganizationID string        `json:"organization_id"`
	TeamID         string        `json:"team_id"`
	Job            JobSummary    `json:"job"`
	Platforms      []string      `json:"platforms"`
	Media          []FilePayload `json:"media,omitempty"`
}

// DispatchAudit is an append-only log entry of one platform branch outcome.
type DispatchAudit struct {
	JobID          string    `json:"job_id" bson:"job_id"`
	OrganizationID string    `json:"organization_id" bson:"organization_id"`
	TeamID         string    `json:"team_id" bson:"team_id"`
	Platform       string    `json:"platform" bson:"platform"`
	OK             bool      `json:"ok" bson:"ok"`
	Message        string    `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
