package social

import (
	"context"

	"hireboard/domain/model"
)

// Website mirrors the posting to the organization's own careers page. The
// mirror is rendered from the jobs table directly, so there is no external
// call and no account to connect.
type Website struct{}

func NewWebsite() *Website { return &Website{} }

func (w *Website) Platform() string         { return "website" }
func (w *Website) RequiresAccount() bool    { return false }
func (w *Website) SupportsScheduling() bool { return true }

func (w *Website) Publish(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
	return &model.SocialResult{Platform: "website", OK: true, PostID: payload.CanonicalURL}, nil
}
