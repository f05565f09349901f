package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hireboard/domain/model"
	"hireboard/infrastructure/clients/social"
	"hireboard/infrastructure/sealed"
	"hireboard/usecase"
)

// Mock implementations

type MockSocialAccountRepo struct {
	mock.Mock
}

func (m *MockSocialAccountRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*model.SocialAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SocialAccount), args.Error(1)
}

type MockSocialPostRepo struct {
	mock.Mock
}

func (m *MockSocialPostRepo) Upsert(ctx context.Context, post *model.SocialPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockSocialPostRepo) ListByJob(ctx context.Context, jobID string) ([]*model.SocialPost, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SocialPost), args.Error(1)
}

type MockRequeue struct {
	mock.Mock
}

func (m *MockRequeue) Enqueue(ctx context.Context, task *model.RequeueTask, notBefore *time.Time) error {
	args := m.Called(ctx, task, notBefore)
	return args.Error(0)
}

type MockDispatchAudit struct {
	mock.Mock
}

func (m *MockDispatchAudit) Record(ctx context.Context, entries []*model.DispatchAudit) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) SetResults(ctx context.Context, jobID string, results []*model.SocialResult) error {
	args := m.Called(ctx, jobID, results)
	return args.Error(0)
}

func (m *MockResultCache) GetResults(ctx context.Context, jobID string) ([]*model.SocialResult, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SocialResult), args.Error(1)
}

// fakePublisher is a configurable in-memory adapter.
type fakePublisher struct {
	platform           string
	requiresAccount    bool
	supportsScheduling bool
	publish            func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error)
}

func (f *fakePublisher) Platform() string         { return f.platform }
func (f *fakePublisher) RequiresAccount() bool    { return f.requiresAccount }
func (f *fakePublisher) SupportsScheduling() bool { return f.supportsScheduling }

func (f *fakePublisher) Publish(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
	return f.publish(ctx, payload, creds)
}

func okPublisher(platform, postID string) *fakePublisher {
	return &fakePublisher{
		platform:        platform,
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			return &model.SocialResult{Platform: platform, OK: true, PostID: postID}, nil
		},
	}
}

var testSealKey = bytes.Repeat([]byte{0x42}, 32)

func newTestBox(t *testing.T) *sealed.Box {
	t.Helper()
	box, err := sealed.NewBox(testSealKey)
	require.NoError(t, err)
	return box
}

func sealedAccount(t *testing.T, box *sealed.Box, platform string, id int64) *model.SocialAccount {
	t.Helper()
	access, err := box.Seal([]byte("access-" + platform))
	require.NoError(t, err)
	return &model.SocialAccount{
		ID:                id,
		OrganizationID:    "org-1",
		Platform:          platform,
		ExternalAccountID: "ext-" + platform,
		SealedAccessToken: access,
	}
}

func testInput(platforms ...string) *usecase.DispatchInput {
	return &usecase.DispatchInput{
		Job: model.JobSummary{
			ID:          "job-1",
			Title:       "Backend Engineer",
			Description: "Build distributed systems.",
			CompanyName: "Acme",
			CompanySite: "https://acme.example/",
		},
		TeamID:         "team-1",
		OrganizationID: "org-1",
		Platforms:      platforms,
	}
}

func resultFor(t *testing.T, results []*model.SocialResult, platform string) *model.SocialResult {
	t.Helper()
	for _, r := range results {
		if r.Platform == platform {
			return r
		}
	}
	t.Fatalf("no result for platform %q in %+v", platform, results)
	return nil
}

func TestDispatch_InvalidJobHasNoSideEffects(t *testing.T) {
	accountRepo := new(MockSocialAccountRepo)
	postRepo := new(MockSocialPostRepo)
	requeue := new(MockRequeue)
	registry := social.NewRegistry(social.NewWebsite())

	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, postRepo, requeue, newTestBox(t), time.Second)

	for _, in := range []*usecase.DispatchInput{
		nil,
		{Job: model.JobSummary{Title: "t", CompanySite: "s"}, Platforms: []string{"website"}},
		{Job: model.JobSummary{ID: "j", CompanySite: "s"}, Platforms: []string{"website"}},
		{Job: model.JobSummary{ID: "j", Title: "t"}, Platforms: []string{"website"}},
	} {
		results, err := uc.Dispatch(context.Background(), in)
		assert.ErrorIs(t, err, usecase.ErrInvalidJob)
		assert.Nil(t, results)
	}

	// No account read, no upsert, no requeue happened
	accountRepo.AssertNotCalled(t, "ListByOrganization", mock.Anything, mock.Anything)
	postRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	requeue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_ResultPerRequestedPlatform(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "linkedin", 11)}, nil)

	postRepo := new(MockSocialPostRepo)
	postRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	requeue := new(MockRequeue)

	registry := social.NewRegistry(social.NewWebsite(), okPublisher("linkedin", "urn:li:share:1"))
	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, postRepo, requeue, box, time.Second)

	// Mixed-case duplicates collapse to one branch each; bogus key still gets a result
	results, err := uc.Dispatch(context.Background(), testInput("LinkedIn", "linkedin", "Website", "myspace"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	li := resultFor(t, results, "linkedin")
	assert.True(t, li.OK)
	assert.Equal(t, "urn:li:share:1", li.PostID)

	web := resultFor(t, results, "website")
	assert.True(t, web.OK)
	assert.Equal(t, "https://acme.example/jobs/job-1", web.PostID)

	bogus := resultFor(t, results, "myspace")
	assert.False(t, bogus.OK)
	assert.Equal(t, "Unsupported platform", bogus.Message)
}

func TestDispatch_NotConnected(t *testing.T) {
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{}, nil)

	postRepo := new(MockSocialPostRepo)
	requeue := new(MockRequeue)
	registry := social.NewRegistry(okPublisher("linkedin", "x"))
	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, postRepo, requeue, newTestBox(t), time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("linkedin"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Equal(t, "Not connected", results[0].Message)
	postRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestDispatch_BranchIsolation(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{
			sealedAccount(t, box, "linkedin", 11),
			sealedAccount(t, box, "facebook", 12),
			sealedAccount(t, box, "x", 13),
		}, nil)

	postRepo := new(MockSocialPostRepo)
	postRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	requeue := new(MockRequeue)

	failing := &fakePublisher{
		platform:        "facebook",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			return nil, errors.New("graph api rejected the page token")
		},
	}
	panicking := &fakePublisher{
		platform:        "x",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			panic("nil pointer in adapter")
		},
	}
	registry := social.NewRegistry(okPublisher("linkedin", "urn:li:share:9"), failing, panicking)
	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, postRepo, requeue, box, time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("linkedin", "facebook", "x"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, resultFor(t, results, "linkedin").OK)

	fb := resultFor(t, results, "facebook")
	assert.False(t, fb.OK)
	assert.Contains(t, fb.Message, "graph api rejected")

	xr := resultFor(t, results, "x")
	assert.False(t, xr.OK)
	assert.Contains(t, xr.Message, "panic")
}

func TestDispatch_UpsertOncePerSuccess(t *testing.T) {
	box := newTestBox(t)
	acct := sealedAccount(t, box, "linkedin", 11)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{acct}, nil)

	postRepo := new(MockSocialPostRepo)
	postRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.SocialPost) bool {
		return p.JobID == "job-1" && p.AccountID == 11 && p.ExternalPostID == "urn:li:share:7"
	})).Return(nil).Once()
	requeue := new(MockRequeue)

	registry := social.NewRegistry(okPublisher("linkedin", "urn:li:share:7"))
	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, postRepo, requeue, box, time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("linkedin"))
	require.NoError(t, err)
	assert.True(t, results[0].OK)
	postRepo.AssertExpectations(t)
}

func TestDispatch_PublishedButUnrecorded(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "linkedin", 11)}, nil)

	postRepo := new(MockSocialPostRepo)
	postRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	requeue := new(MockRequeue)

	registry := social.NewRegistry(okPublisher("linkedin", "urn:li:share:7"))
	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, postRepo, requeue, box, time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("linkedin"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	// The external post exists, so the branch still reports success
	assert.True(t, results[0].OK)
	assert.Equal(t, "published but unrecorded", results[0].Message)
}

func TestDispatch_RetryAfterRequeues(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "x", 13)}, nil)

	postRepo := new(MockSocialPostRepo)
	requeue := new(MockRequeue)

	before := time.Now()
	requeue.On("Enqueue", mock.Anything,
		mock.MatchedBy(func(task *model.RequeueTask) bool {
			return task.Job.ID == "job-1" && len(task.Platforms) == 1 && task.Platforms[0] == "x"
		}),
		mock.MatchedBy(func(notBefore *time.Time) bool {
			if notBefore == nil {
				return false
			}
			delay := notBefore.Sub(before)
			return delay > 890*time.Second && delay < 910*time.Second
		}),
	).Return(nil).Once()

	rateLimited := &fakePublisher{
		platform:        "x",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			return &model.SocialResult{Platform: "x", Message: "rate limited", RetryAfterSec: 900}, nil
		},
	}
	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(rateLimited), accountRepo, postRepo, requeue, box, time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("x"))
	require.NoError(t, err)
	assert.False(t, results[0].OK)
	assert.Equal(t, 900, results[0].RetryAfterSec)
	requeue.AssertExpectations(t)
	postRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestDispatch_RequeuedTaskKeepsMedia(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "x", 13)}, nil)

	requeue := new(MockRequeue)
	requeue.On("Enqueue", mock.Anything,
		mock.MatchedBy(func(task *model.RequeueTask) bool {
			return len(task.Media) == 1 &&
				task.Media[0].Name == "team.png" &&
				string(task.Media[0].Data) == "png-bytes"
		}),
		mock.Anything,
	).Return(nil).Once()

	rateLimited := &fakePublisher{
		platform:        "x",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			return &model.SocialResult{Platform: "x", Message: "rate limited", RetryAfterSec: 60}, nil
		},
	}
	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(rateLimited), accountRepo, new(MockSocialPostRepo), requeue, box, time.Second)

	in := testInput("x")
	in.Media = []model.FilePayload{{Name: "team.png", ContentType: "image/png", Data: []byte("png-bytes")}}
	_, err := uc.Dispatch(context.Background(), in)
	require.NoError(t, err)
	requeue.AssertExpectations(t)
}

func TestDispatch_RequeueFailureDoesNotChangeResult(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "x", 13)}, nil)

	requeue := new(MockRequeue)
	requeue.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("service bus unavailable"))

	rateLimited := &fakePublisher{
		platform:        "x",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			return &model.SocialResult{Platform: "x", Message: "rate limited", RetryAfterSec: 60}, nil
		},
	}
	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(rateLimited), accountRepo, new(MockSocialPostRepo), requeue, box, time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("x"))
	require.NoError(t, err)
	assert.Equal(t, "rate limited", results[0].Message)
	assert.Equal(t, 60, results[0].RetryAfterSec)
}

func TestDispatch_BranchTimeout(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "linkedin", 11)}, nil)

	slow := &fakePublisher{
		platform:        "linkedin",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(slow), accountRepo, new(MockSocialPostRepo), new(MockRequeue), box, 20*time.Millisecond)

	results, err := uc.Dispatch(context.Background(), testInput("linkedin"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Equal(t, "timeout", results[0].Message)
}

func TestDispatch_TamperedSealedToken(t *testing.T) {
	box := newTestBox(t)
	acct := sealedAccount(t, box, "linkedin", 11)
	acct.SealedAccessToken[len(acct.SealedAccessToken)-1] ^= 0xff

	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{acct}, nil)

	published := false
	adapter := &fakePublisher{
		platform:        "linkedin",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			published = true
			return &model.SocialResult{Platform: "linkedin", OK: true}, nil
		},
	}
	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(adapter), accountRepo, new(MockSocialPostRepo), new(MockRequeue), box, time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("linkedin"))
	require.NoError(t, err)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Message, "authentication")
	assert.False(t, published, "adapter must never run with unverified credentials")
}

func TestDispatch_AccountLookupFailureIsPerPlatform(t *testing.T) {
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return(nil, errors.New("pq: connection reset"))

	registry := social.NewRegistry(social.NewWebsite(), okPublisher("linkedin", "x"))
	uc := usecase.NewSocialDispatchUsecase(registry, accountRepo, new(MockSocialPostRepo), new(MockRequeue), newTestBox(t), time.Second)

	results, err := uc.Dispatch(context.Background(), testInput("website", "linkedin"))
	require.NoError(t, err)

	// The account-free platform is unaffected
	assert.True(t, resultFor(t, results, "website").OK)

	li := resultFor(t, results, "linkedin")
	assert.False(t, li.OK)
	assert.Contains(t, li.Message, "account lookup failed")
}

func TestDispatch_FutureScheduleRequeuesNonNativePlatforms(t *testing.T) {
	box := newTestBox(t)
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{sealedAccount(t, box, "x", 13)}, nil)

	scheduleAt := time.Now().Add(2 * time.Hour)
	requeue := new(MockRequeue)
	requeue.On("Enqueue", mock.Anything,
		mock.MatchedBy(func(task *model.RequeueTask) bool {
			return len(task.Platforms) == 1 && task.Platforms[0] == "x"
		}),
		mock.MatchedBy(func(notBefore *time.Time) bool {
			return notBefore != nil && notBefore.Equal(scheduleAt)
		}),
	).Return(nil).Once()

	published := false
	noScheduling := &fakePublisher{
		platform:        "x",
		requiresAccount: true,
		publish: func(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
			published = true
			return &model.SocialResult{Platform: "x", OK: true}, nil
		},
	}
	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(noScheduling, social.NewWebsite()), accountRepo, new(MockSocialPostRepo), requeue, box, time.Second)

	in := testInput("x", "website")
	in.ScheduleAt = &scheduleAt
	results, err := uc.Dispatch(context.Background(), in)
	require.NoError(t, err)

	xr := resultFor(t, results, "x")
	assert.True(t, xr.OK)
	assert.Equal(t, "scheduled", xr.Message)
	assert.False(t, published, "non-native platform must not publish immediately")

	// Website supports scheduling natively and publishes inline
	assert.True(t, resultFor(t, results, "website").OK)
	requeue.AssertExpectations(t)
}

func TestDispatch_ResultsCachedAfterCall(t *testing.T) {
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{}, nil)

	cache := new(MockResultCache)
	cache.On("SetResults", mock.Anything, "job-1", mock.MatchedBy(func(results []*model.SocialResult) bool {
		return len(results) == 1 && results[0].Platform == "website"
	})).Return(nil).Once()

	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(social.NewWebsite()), accountRepo, new(MockSocialPostRepo), new(MockRequeue), newTestBox(t), time.Second).
		WithResultCache(cache)

	_, err := uc.Dispatch(context.Background(), testInput("website"))
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestDispatch_AuditRecordedWithUTCTimestamps(t *testing.T) {
	accountRepo := new(MockSocialAccountRepo)
	accountRepo.On("ListByOrganization", mock.Anything, "org-1").
		Return([]*model.SocialAccount{}, nil)

	before := time.Now().UTC()
	audit := new(MockDispatchAudit)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(entries []*model.DispatchAudit) bool {
		if len(entries) != 1 || entries[0].Platform != "website" {
			return false
		}
		createdAt := entries[0].CreatedAt
		return createdAt.Location() == time.UTC && !createdAt.Before(before)
	})).Return(nil).Once()

	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(social.NewWebsite()), accountRepo, new(MockSocialPostRepo), new(MockRequeue), newTestBox(t), time.Second).
		WithAudit(audit)

	_, err := uc.Dispatch(context.Background(), testInput("website"))
	require.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestStatus(t *testing.T) {
	postRepo := new(MockSocialPostRepo)
	postRepo.On("ListByJob", mock.Anything, "job-1").
		Return([]*model.SocialPost{{ID: 1, JobID: "job-1", Platform: "linkedin", ExternalPostID: "urn:li:share:7"}}, nil)

	cache := new(MockResultCache)
	cache.On("GetResults", mock.Anything, "job-1").
		Return([]*model.SocialResult{{Platform: "linkedin", OK: true}}, nil)

	uc := usecase.NewSocialDispatchUsecase(social.NewRegistry(), new(MockSocialAccountRepo), postRepo, new(MockRequeue), nil, time.Second).
		WithResultCache(cache)

	status, err := uc.Status(context.Background(), "job-1")
	require.NoError(t, err)
	require.Len(t, status.Posts, 1)
	assert.Equal(t, "urn:li:share:7", status.Posts[0].ExternalPostID)
	require.Len(t, status.LastResults, 1)
	assert.True(t, status.LastResults[0].OK)
}

func TestCapabilities(t *testing.T) {
	registry := social.NewRegistry(social.NewWebsite(), okPublisher("linkedin", ""))
	uc := usecase.NewSocialDispatchUsecase(registry, new(MockSocialAccountRepo), new(MockSocialPostRepo), new(MockRequeue), nil, time.Second)

	caps := uc.Capabilities()
	require.Len(t, caps, 2)
	assert.Equal(t, "linkedin", caps[0].Platform)
	assert.True(t, caps[0].RequiresAccount)
	assert.Equal(t, "website", caps[1].Platform)
	assert.False(t, caps[1].RequiresAccount)
	assert.True(t, caps[1].SupportsScheduling)
}
