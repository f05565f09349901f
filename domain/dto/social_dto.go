package dto

import "time"

// Res is the generic error envelope used by middleware rejections.
type Res struct {
	ResponseCode    string `json:"response_code"`
	ResponseMessage string `json:"response_message"`
}

// MediaPayload carries a base64-encoded attachment in the dispatch request.
type MediaPayload struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// SocialDispatchRequest is the body of POST /api/jobs/:jobId/social.
type SocialDispatchRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CompanyName string         `json:"company_name"`
	CompanySite string         `json:"company_site"`
	Platforms   []string       `json:"platforms"`
	ScheduleAt  *time.Time     `json:"schedule_at,omitempty"`
	Media       []MediaPayload `json:"media,omitempty"`
}
