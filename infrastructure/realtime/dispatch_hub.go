package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"hireboard/domain/model"
)

// DispatchEvent is the SSE payload pushed after each dispatch call.
type DispatchEvent struct {
	Type    string                `json:"type"`
	JobID   string                `json:"job_id"`
	Results []*model.SocialResult `json:"results"`
}

// Hub maintains per-organization subscribers listening for dispatch outcomes.
type Hub struct {
	mu            sync.RWMutex
	organizations map[string]map[chan DispatchEvent]struct{}
}

func NewDispatchHub() *Hub {
	return &Hub{organizations: make(map[string]map[chan DispatchEvent]struct{})}
}

// Serve registers an SSE stream scoped to the caller's organization
// (organization_id set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	if organizationID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan DispatchEvent, 8)
	h.addSubscriber(organizationID, ch)
	defer h.removeSubscriber(organizationID, ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: dispatch_status\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(organizationID string, ch chan DispatchEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.organizations[organizationID] == nil {
		h.organizations[organizationID] = make(map[chan DispatchEvent]struct{})
	}
	h.organizations[organizationID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(organizationID string, ch chan DispatchEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.organizations[organizationID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.organizations, organizationID)
		}
	}
}

// BroadcastDispatch pushes one dispatch outcome to every subscriber of the
// owning organization.
func (h *Hub) BroadcastDispatch(organizationID, jobID string, results []*model.SocialResult) {
	evt := DispatchEvent{Type: "dispatch_status", JobID: jobID, Results: results}
	h.mu.RLock()
	subs := h.organizations[organizationID]
	for ch := range subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
