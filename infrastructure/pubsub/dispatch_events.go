package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"hireboard/domain/model"
	"hireboard/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

// DispatchEvents publishes per-dispatch outcome summaries so sibling services
// (notifications, analytics) can react without polling.
type DispatchEvents struct {
	client *pubsub.Client
	topic  string
}

func NewDispatchEvents(client *pubsub.Client, topic string) *DispatchEvents {
	return &DispatchEvents{client: client, topic: topic}
}

type outcomeEvent struct {
	JobID          string                `json:"job_id"`
	OrganizationID string                `json:"organization_id"`
	Results        []*model.SocialResult `json:"results"`
	At             time.Time             `json:"at"`
}

func (e *DispatchEvents) PublishOutcome(ctx context.Context, jobID, organizationID string, results []*model.SocialResult) (string, error) {
	payload, err := json.Marshal(outcomeEvent{
		JobID:          jobID,
		OrganizationID: organizationID,
		Results:        results,
		At:             time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	topic := e.client.Topic(e.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		logger.GetLogger().WithField("topic", e.topic).Info("Topic doesn't exist - creating it")
		if _, err := e.client.CreateTopic(ctx, e.topic); err != nil {
			return "", err
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return "", err
	}
	logger.GetLogger().WithField("server ID", serverID).Info("Dispatch outcome published")
	return serverID, nil
}
