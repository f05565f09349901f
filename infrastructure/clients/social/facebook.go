package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hireboard/domain/model"

	"github.com/google/go-querystring/query"
)

// Facebook publishes page feed posts via the Graph API. Scheduling is native:
// a future ScheduleAt becomes an unpublished post with scheduled_publish_time.
// When the payload carries an image attachment the post goes through the page
// photos edge instead of the plain feed.
type Facebook struct {
	httpClient *http.Client
	baseURL    string
}

func NewFacebook() *Facebook {
	return &Facebook{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://graph.facebook.com/v19.0",
	}
}

func (f *Facebook) Platform() string         { return "facebook" }
func (f *Facebook) RequiresAccount() bool    { return true }
func (f *Facebook) SupportsScheduling() bool { return true }

type feedParams struct {
	Message              string `url:"message"`
	Link                 string `url:"link"`
	AccessToken          string `url:"access_token"`
	Published            *bool  `url:"published,omitempty"`
	ScheduledPublishTime int64  `url:"scheduled_publish_time,omitempty"`
}

// Graph API codes signalling throttling rather than a permanent failure.
func transientGraphCode(code int) bool {
	switch code {
	case 4, 17, 32, 613:
		return true
	}
	return false
}

func firstImage(media []model.FilePayload) *model.FilePayload {
	for i := range media {
		if strings.HasPrefix(media[i].ContentType, "image/") {
			return &media[i]
		}
	}
	return nil
}

func (f *Facebook) Publish(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
	parts := []string{payload.Title}
	if payload.Body != "" {
		parts = append(parts, payload.Body)
	}
	parts = append(parts, payload.CanonicalURL)
	message := strings.Join(parts, "\n\n")

	if img := firstImage(payload.Media); img != nil {
		return f.publishPhoto(ctx, payload, creds, message, img)
	}

	params := feedParams{
		Message:     message,
		Link:        payload.CanonicalURL,
		AccessToken: creds.AccessToken,
	}
	if payload.ScheduleAt != nil && payload.ScheduleAt.After(time.Now()) {
		published := false
		params.Published = &published
		params.ScheduledPublishTime = payload.ScheduleAt.Unix()
	}
	form, err := query.Values(params)
	if err != nil {
		return nil, err
	}

	postURL := fmt.Sprintf("%s/%s/feed", f.baseURL, url.PathEscape(creds.ExternalAccountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusOK {
		var ok struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(respBody, &ok); err != nil || ok.ID == "" {
			return &model.SocialResult{Platform: "facebook", Message: "facebook returned no post id"}, nil
		}
		return &model.SocialResult{Platform: "facebook", OK: true, PostID: ok.ID}, nil
	}
	return f.failureFrom(resp, respBody), nil
}

// publishPhoto posts through the page photos edge, attaching the image bytes
// as a multipart source part. The photo response carries both the photo id and
// the resulting page post id; the post id is what the status endpoint links to.
func (f *Facebook) publishPhoto(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle, message string, img *model.FilePayload) (*model.SocialResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("source", img.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, err
	}
	_ = w.WriteField("message", message)
	_ = w.WriteField("access_token", creds.AccessToken)
	if payload.ScheduleAt != nil && payload.ScheduleAt.After(time.Now()) {
		_ = w.WriteField("published", "false")
		_ = w.WriteField("scheduled_publish_time", strconv.FormatInt(payload.ScheduleAt.Unix(), 10))
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	postURL := fmt.Sprintf("%s/%s/photos", f.baseURL, url.PathEscape(creds.ExternalAccountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusOK {
		var ok struct {
			ID     string `json:"id"`
			PostID string `json:"post_id"`
		}
		if err := json.Unmarshal(respBody, &ok); err != nil || (ok.ID == "" && ok.PostID == "") {
			return &model.SocialResult{Platform: "facebook", Message: "facebook returned no post id"}, nil
		}
		postID := ok.PostID
		if postID == "" {
			postID = ok.ID
		}
		return &model.SocialResult{Platform: "facebook", OK: true, PostID: postID}, nil
	}
	return f.failureFrom(resp, respBody), nil
}

func (f *Facebook) failureFrom(resp *http.Response, respBody []byte) *model.SocialResult {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	msg := fmt.Sprintf("facebook responded %d", resp.StatusCode)
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	}
	if resp.StatusCode == http.StatusTooManyRequests || transientGraphCode(apiErr.Error.Code) {
		return &model.SocialResult{
			Platform:      "facebook",
			Message:       msg,
			RetryAfterSec: retryAfterSeconds(resp, 300),
		}
	}
	return &model.SocialResult{Platform: "facebook", Message: msg}
}
