package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hireboard/domain/model"

	"golang.org/x/oauth2"
	oauthlinkedin "golang.org/x/oauth2/linkedin"
)

const linkedInVersion = "202406"

// LinkedIn publishes organization posts via the Community Management API.
type LinkedIn struct {
	httpClient *http.Client
	baseURL    string
	oauthCfg   *oauth2.Config
}

// NewLinkedIn builds the adapter. Client credentials enable refresh of expired
// access tokens; without them stale tokens fail at the API and surface as a
// per-platform failure.
func NewLinkedIn(clientID, clientSecret string) *LinkedIn {
	var cfg *oauth2.Config
	if clientID != "" {
		cfg = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauthlinkedin.Endpoint,
		}
	}
	return &LinkedIn{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://api.linkedin.com",
		oauthCfg:   cfg,
	}
}

func (l *LinkedIn) Platform() string         { return "linkedin" }
func (l *LinkedIn) RequiresAccount() bool    { return true }
func (l *LinkedIn) SupportsScheduling() bool { return false }

func (l *LinkedIn) Publish(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
	token := creds.AccessToken
	if l.oauthCfg != nil && creds.RefreshToken != "" && creds.ExpiresAt != nil && creds.ExpiresAt.Before(time.Now()) {
		ts := l.oauthCfg.TokenSource(ctx, &oauth2.Token{
			AccessToken:  creds.AccessToken,
			RefreshToken: creds.RefreshToken,
			Expiry:       *creds.ExpiresAt,
		})
		fresh, err := ts.Token()
		if err != nil {
			return nil, fmt.Errorf("linkedin token refresh failed: %w", err)
		}
		token = fresh.AccessToken
	}

	parts := []string{payload.Title}
	if payload.Body != "" {
		parts = append(parts, payload.Body)
	}
	parts = append(parts, payload.CanonicalURL)
	post := map[string]interface{}{
		"author":         "urn:li:organization:" + creds.ExternalAccountID,
		"commentary":     strings.Join(parts, "\n\n"),
		"visibility":     "PUBLIC",
		"distribution":   map[string]interface{}{"feedDistribution": "MAIN_FEED"},
		"lifecycleState": "PUBLISHED",
	}
	body, err := json.Marshal(post)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/rest/posts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("LinkedIn-Version", linkedInVersion)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusCreated:
		return &model.SocialResult{Platform: "linkedin", OK: true, PostID: resp.Header.Get("x-restli-id")}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &model.SocialResult{
			Platform:      "linkedin",
			Message:       "rate limited",
			RetryAfterSec: retryAfterSeconds(resp, 300),
		}, nil
	case resp.StatusCode >= 500:
		return &model.SocialResult{
			Platform:      "linkedin",
			Message:       fmt.Sprintf("linkedin responded %d", resp.StatusCode),
			RetryAfterSec: retryAfterSeconds(resp, 60),
		}, nil
	default:
		var apiErr struct {
			Message string `json:"message"`
		}
		msg := fmt.Sprintf("linkedin responded %d", resp.StatusCode)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return &model.SocialResult{Platform: "linkedin", Message: msg}, nil
	}
}
