package repository

import (
	"context"
	"time"

	"hireboard/domain/model"
)

// ISocialAccount reads connected platform accounts. Accounts are written by
// the OAuth connection flow, which lives outside this service.
type ISocialAccount interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]*model.SocialAccount, error)
}

// ISocialPost persists successful publishes, one row per (job, account).
type ISocialPost interface {
	Upsert(ctx context.Context, post *model.SocialPost) error
	ListByJob(ctx context.Context, jobID string) ([]*model.SocialPost, error)
}

// IJob reads job summaries from the ATS jobs table. Used by the requeue worker
// to refresh titles that may have changed between failure and retry.
type IJob interface {
	GetSummary(ctx context.Context, jobID string) (*model.JobSummary, error)
}

// IRequeue submits a delayed re-dispatch task to the scheduled-queue service.
// A nil notBefore means run as soon as possible.
type IRequeue interface {
	Enqueue(ctx context.Context, task *model.RequeueTask, notBefore *time.Time) error
}

// IDispatchAudit appends per-branch outcomes to the audit trail.
type IDispatchAudit interface {
	Record(ctx context.Context, entries []*model.DispatchAudit) error
}

// IResultCache keeps the latest dispatch result array per job for the status
// endpoint. A miss returns (nil, nil).
type IResultCache interface {
	SetResults(ctx context.Context, jobID string, results []*model.SocialResult) error
	GetResults(ctx context.Context, jobID string) ([]*model.SocialResult, error)
}

// IDispatchEvents fans dispatch outcomes out to sibling services.
type IDispatchEvents interface {
	PublishOutcome(ctx context.Context, jobID, organizationID string, results []*model.SocialResult) (string, error)
}

// IPublisher is the uniform per-platform publish contract. Implementations map
// the generic payload into their wire format, own their HTTP timeout, and fold
// platform errors into SocialResult — marking transient/rate-limited failures
// with RetryAfterSec instead of treating them as permanent.
type IPublisher interface {
	Platform() string
	RequiresAccount() bool
	SupportsScheduling() bool
	Publish(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error)
}

// IPublisherRegistry resolves a case-insensitive platform key to its adapter.
type IPublisherRegistry interface {
	Lookup(platform string) (IPublisher, bool)
	Platforms() []string
}
