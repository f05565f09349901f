package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"hireboard/domain/model"
)

// maxPostRunes is the tweet length ceiling; the canonical URL is wrapped by
// t.co to a fixed 23 characters regardless of its real length.
const (
	maxPostRunes     = 280
	wrappedURLLen    = 23
	defaultXRetrySec = 900
)

// X publishes short-form posts via the v2 tweets endpoint.
type X struct {
	httpClient *http.Client
	baseURL    string
}

func NewX() *X {
	return &X{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://api.x.com",
	}
}

func (x *X) Platform() string         { return "x" }
func (x *X) RequiresAccount() bool    { return true }
func (x *X) SupportsScheduling() bool { return false }

func composeTweet(payload *model.PublishPayload) string {
	budget := maxPostRunes - wrappedURLLen - 2 // "\n\n" separator
	text := payload.Title
	if payload.CompanyName != "" {
		text = payload.CompanyName + " is hiring: " + payload.Title
	}
	runes := []rune(text)
	if len(runes) > budget {
		runes = append(runes[:budget-1], '…')
	}
	return string(runes) + "\n\n" + payload.CanonicalURL
}

func (x *X) Publish(ctx context.Context, payload *model.PublishPayload, creds model.TokenBundle) (*model.SocialResult, error) {
	body, err := json.Marshal(map[string]string{"text": composeTweet(payload)})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.baseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusCreated {
		var ok struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(respBody, &ok); err != nil || ok.Data.ID == "" {
			return &model.SocialResult{Platform: "x", Message: "x returned no post id"}, nil
		}
		return &model.SocialResult{Platform: "x", OK: true, PostID: ok.Data.ID}, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := retryAfterSeconds(resp, defaultXRetrySec)
		// x-rate-limit-reset carries the window reset as a unix timestamp
		if v := resp.Header.Get("x-rate-limit-reset"); v != "" {
			if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
				if secs := reset - time.Now().Unix(); secs > 0 {
					retryAfter = int(secs)
				}
			}
		}
		return &model.SocialResult{Platform: "x", Message: "rate limited", RetryAfterSec: retryAfter}, nil
	}

	var apiErr struct {
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	msg := fmt.Sprintf("x responded %d", resp.StatusCode)
	if json.Unmarshal(respBody, &apiErr) == nil {
		if apiErr.Detail != "" {
			msg = apiErr.Detail
		} else if len(apiErr.Errors) > 0 && apiErr.Errors[0].Message != "" {
			msg = apiErr.Errors[0].Message
		}
	}
	if resp.StatusCode >= 500 {
		return &model.SocialResult{Platform: "x", Message: msg, RetryAfterSec: retryAfterSeconds(resp, 60)}, nil
	}
	return &model.SocialResult{Platform: "x", Message: msg}, nil
}
