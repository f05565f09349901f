package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"hireboard/domain/model"
	"hireboard/domain/repository"
	"hireboard/infrastructure/logger"
	"hireboard/infrastructure/sealed"
	"hireboard/infrastructure/utils"
)

// ErrInvalidJob is the single caller-visible failure of Dispatch: the job
// fields the payload is built from are missing. Everything else is reported
// per platform inside the result array.
var ErrInvalidJob = errors.New("job id, title and company site are required")

const (
	msgUnsupported  = "Unsupported platform"
	msgNotConnected = "Not connected"
)

// DispatchInput is one publish request: a job, its tenant scope, and the
// requested platform set.
type DispatchInput struct {
	Job            model.JobSummary
	TeamID         string
	OrganizationID string
	Platforms      []string
	ScheduleAt     *time.Time
	Media          []model.FilePayload
}

type PlatformCapability struct {
	Platform           string `json:"platform"`
	RequiresAccount    bool   `json:"requires_account"`
	SupportsScheduling bool   `json:"supports_scheduling"`
}

type DispatchStatus struct {
	Posts       []*model.SocialPost   `json:"posts"`
	LastResults []*model.SocialResult `json:"last_results,omitempty"`
}

type ISocialDispatchUsecase interface {
	Dispatch(ctx context.Context, in *DispatchInput) ([]*model.SocialResult, error)
	Status(ctx context.Context, jobID string) (*DispatchStatus, error)
	Capabilities() []PlatformCapability
	WithAudit(audit repository.IDispatchAudit) ISocialDispatchUsecase
	WithResultCache(cache repository.IResultCache) ISocialDispatchUsecase
	WithEvents(events repository.IDispatchEvents) ISocialDispatchUsecase
	WithBroadcaster(broadcast func(organizationID, jobID string, results []*model.SocialResult)) ISocialDispatchUsecase
}

type socialDispatchUsecase struct {
	registry      repository.IPublisherRegistry
	accountRepo   repository.ISocialAccount
	postRepo      repository.ISocialPost
	requeueClient repository.IRequeue
	box           *sealed.Box
	branchTimeout time.Duration

	audit     repository.IDispatchAudit
	cache     repository.IResultCache
	events    repository.IDispatchEvents
	broadcast func(organizationID, jobID string, results []*model.SocialResult)
}

func NewSocialDispatchUsecase(
	registry repository.IPublisherRegistry,
	accountRepo repository.ISocialAccount,
	postRepo repository.ISocialPost,
	requeueClient repository.IRequeue,
	box *sealed.Box,
	branchTimeout time.Duration,
) ISocialDispatchUsecase {
	if branchTimeout <= 0 {
		branchTimeout = 30 * time.Second
	}
	return &socialDispatchUsecase{
		registry:      registry,
		accountRepo:   accountRepo,
		postRepo:      postRepo,
		requeueClient: requeueClient,
		box:           box,
		branchTimeout: branchTimeout,
	}
}

func (u *socialDispatchUsecase) WithAudit(audit repository.IDispatchAudit) ISocialDispatchUsecase {
	u.audit = audit
	return u
}

func (u *socialDispatchUsecase) WithResultCache(cache repository.IResultCache) ISocialDispatchUsecase {
	u.cache = cache
	return u
}

func (u *socialDispatchUsecase) WithEvents(events repository.IDispatchEvents) ISocialDispatchUsecase {
	u.events = events
	return u
}

func (u *socialDispatchUsecase) WithBroadcaster(broadcast func(organizationID, jobID string, results []*model.SocialResult)) ISocialDispatchUsecase {
	u.broadcast = broadcast
	return u
}

// Dispatch fans one publish request out to every requested platform. Platform
// branches run concurrently and are fully isolated: an adapter error, a
// missing account, or a decryption failure is reported in that platform's
// result and never aborts the siblings. Result order is not guaranteed;
// callers match by the Platform field.
func (u *socialDispatchUsecase) Dispatch(ctx context.Context, in *DispatchInput) ([]*model.SocialResult, error) {
	if in == nil || in.Job.ID == "" || in.Job.Title == "" || in.Job.CompanySite == "" {
		return nil, ErrInvalidJob
	}
	if len(in.Platforms) == 0 {
		return nil, errors.New("platforms required")
	}

	payload := buildPayload(in)

	// One batched read shared (read-only) by all branches
	accounts, accountsErr := u.accountRepo.ListByOrganization(ctx, in.OrganizationID)
	if accountsErr != nil {
		logger.GetLogger().WithField("organization_id", in.OrganizationID).WithField("error", accountsErr).Warn("account lookup failed; account-backed platforms will report the error")
	}
	byPlatform := make(map[string]*model.SocialAccount, len(accounts))
	for _, acct := range accounts {
		byPlatform[strings.ToLower(acct.Platform)] = acct
	}

	keys := normalizePlatforms(in.Platforms)
	results := make([]*model.SocialResult, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			results[i] = u.dispatchPlatform(ctx, key, payload, byPlatform[key], accountsErr, in)
		}(i, key)
	}
	wg.Wait()

	u.afterDispatch(ctx, in, results)
	return results, nil
}

// normalizePlatforms lowercases and deduplicates, keeping first-seen order.
func normalizePlatforms(platforms []string) []string {
	seen := make(map[string]struct{}, len(platforms))
	keys := make([]string, 0, len(platforms))
	for _, p := range platforms {
		k := strings.ToLower(strings.TrimSpace(p))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func buildPayload(in *DispatchInput) *model.PublishPayload {
	return &model.PublishPayload{
		Title:        in.Job.Title,
		Body:         in.Job.Description,
		CanonicalURL: canonicalJobURL(in.Job),
		CompanyName:  in.Job.CompanyName,
		TeamID:       in.TeamID,
		ScheduleAt:   in.ScheduleAt,
		Media:        in.Media,
	}
}

func canonicalJobURL(job model.JobSummary) string {
	return strings.TrimRight(job.CompanySite, "/") + "/jobs/" + url.PathEscape(job.ID)
}

func (u *socialDispatchUsecase) dispatchPlatform(ctx context.Context, key string, payload *model.PublishPayload, acct *model.SocialAccount, accountsErr error, in *DispatchInput) (res *model.SocialResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().WithField("platform", key).WithField("panic", r).Error("dispatch branch panicked")
			res = &model.SocialResult{Platform: key, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()

	pub, ok := u.registry.Lookup(key)
	if !ok {
		return &model.SocialResult{Platform: key, Message: msgUnsupported}
	}

	var creds model.TokenBundle
	if pub.RequiresAccount() {
		if accountsErr != nil {
			return &model.SocialResult{Platform: key, Message: "account lookup failed: " + accountsErr.Error()}
		}
		if acct == nil {
			return &model.SocialResult{Platform: key, Message: msgNotConnected}
		}
		var err error
		creds, err = u.unsealTokens(acct)
		if err != nil {
			return &model.SocialResult{Platform: key, Message: err.Error()}
		}
	}

	// Platforms without native scheduling defer the whole branch to the queue
	if in.ScheduleAt != nil && in.ScheduleAt.After(time.Now()) && !pub.SupportsScheduling() {
		task := &model.RequeueTask{
			OrganizationID: in.OrganizationID,
			TeamID:         in.TeamID,
			Job:            in.Job,
			Platforms:      []string{key},
			Media:          in.Media,
		}
		if err := u.requeueClient.Enqueue(ctx, task, in.ScheduleAt); err != nil {
			return &model.SocialResult{Platform: key, Message: "scheduling failed: " + err.Error()}
		}
		return &model.SocialResult{Platform: key, OK: true, Message: "scheduled"}
	}

	branchCtx, cancel := context.WithTimeout(ctx, u.branchTimeout)
	defer cancel()
	out, err := pub.Publish(branchCtx, payload, creds)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || branchCtx.Err() == context.DeadlineExceeded {
			msg = "timeout"
		}
		return &model.SocialResult{Platform: key, Message: msg}
	}
	if out == nil {
		return &model.SocialResult{Platform: key, Message: "adapter returned no result"}
	}
	out.Platform = key

	if out.OK && acct != nil {
		post := &model.SocialPost{
			JobID:          in.Job.ID,
			AccountID:      acct.ID,
			Platform:       key,
			ExternalPostID: out.PostID,
			CanonicalURL:   payload.CanonicalURL,
		}
		if err := u.postRepo.Upsert(ctx, post); err != nil {
			// The external post exists even though recording it failed
			logger.GetLogger().WithField("job_id", in.Job.ID).WithField("platform", key).WithField("error", err).Error("social post upsert failed")
			out.Message = "published but unrecorded"
		}
	}

	if !out.OK && out.RetryAfterSec > 0 {
		notBefore := time.Now().Add(time.Duration(out.RetryAfterSec) * time.Second)
		task := &model.RequeueTask{
			OrganizationID: in.OrganizationID,
			TeamID:         in.TeamID,
			Job:            in.Job,
			Platforms:      []string{key},
			Media:          in.Media,
		}
		if err := u.requeueClient.Enqueue(ctx, task, &notBefore); err != nil {
			logger.GetLogger().WithField("job_id", in.Job.ID).WithField("platform", key).WithField("error", err).Warn("requeue submission failed")
		}
	}
	return out
}

func (u *socialDispatchUsecase) unsealTokens(acct *model.SocialAccount) (model.TokenBundle, error) {
	if u.box == nil {
		return model.TokenBundle{}, errors.New("credential sealing not configured")
	}
	access, err := u.box.Open(acct.SealedAccessToken)
	if err != nil {
		return model.TokenBundle{}, err
	}
	bundle := model.TokenBundle{
		AccountID:         acct.ID,
		ExternalAccountID: acct.ExternalAccountID,
		AccessToken:       string(access),
		ExpiresAt:         acct.ExpiresAt,
	}
	if len(acct.SealedRefreshToken) > 0 {
		refresh, err := u.box.Open(acct.SealedRefreshToken)
		if err != nil {
			return model.TokenBundle{}, err
		}
		bundle.RefreshToken = string(refresh)
	}
	return bundle, nil
}

// afterDispatch records best-effort side effects of a finished call: the
// result cache for the status endpoint, the audit trail, the outcome event.
// None of them can fail the dispatch.
func (u *socialDispatchUsecase) afterDispatch(ctx context.Context, in *DispatchInput, results []*model.SocialResult) {
	if u.cache != nil {
		if err := u.cache.SetResults(ctx, in.Job.ID, results); err != nil {
			logger.GetLogger().WithField("job_id", in.Job.ID).WithField("error", err).Warn("result cache update failed")
		}
	}
	if u.audit != nil {
		now := utils.GetCurrentTime()
		entries := make([]*model.DispatchAudit, 0, len(results))
		for _, r := range results {
			entries = append(entries, &model.DispatchAudit{
				JobID:          in.Job.ID,
				OrganizationID: in.OrganizationID,
				TeamID:         in.TeamID,
				Platform:       r.Platform,
				OK:             r.OK,
				Message:        r.Message,
				CreatedAt:      now,
			})
		}
		if err := u.audit.Record(ctx, entries); err != nil {
			logger.GetLogger().WithField("job_id", in.Job.ID).WithField("error", err).Warn("dispatch audit failed")
		}
	}
	if u.events != nil {
		if _, err := u.events.PublishOutcome(ctx, in.Job.ID, in.OrganizationID, results); err != nil {
			logger.GetLogger().WithField("job_id", in.Job.ID).WithField("error", err).Warn("outcome event publish failed")
		}
	}
	if u.broadcast != nil {
		u.broadcast(in.OrganizationID, in.Job.ID, results)
	}
}

func (u *socialDispatchUsecase) Status(ctx context.Context, jobID string) (*DispatchStatus, error) {
	posts, err := u.postRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	status := &DispatchStatus{Posts: posts}
	if status.Posts == nil {
		status.Posts = []*model.SocialPost{}
	}
	if u.cache != nil {
		results, err := u.cache.GetResults(ctx, jobID)
		if err != nil {
			logger.GetLogger().WithField("job_id", jobID).WithField("error", err).Warn("result cache read failed")
		} else {
			status.LastResults = results
		}
	}
	return status, nil
}

func (u *socialDispatchUsecase) Capabilities() []PlatformCapability {
	keys := u.registry.Platforms()
	caps := make([]PlatformCapability, 0, len(keys))
	for _, k := range keys {
		pub, ok := u.registry.Lookup(k)
		if !ok {
			continue
		}
		caps = append(caps, PlatformCapability{
			Platform:           k,
			RequiresAccount:    pub.RequiresAccount(),
			SupportsScheduling: pub.SupportsScheduling(),
		})
	}
	return caps
}
