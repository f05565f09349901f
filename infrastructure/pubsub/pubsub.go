package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// NewPubSub connects to Google Pub/Sub for dispatch outcome events. An empty
// credentials file falls back to ambient credentials.
func NewPubSub(ctx context.Context, projectID, credentialsFile string) (*pubsub.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return pubsub.NewClient(ctx, projectID, opts...)
}
