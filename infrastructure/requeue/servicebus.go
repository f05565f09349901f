package requeue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hireboard/domain/model"
	"hireboard/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/google/uuid"
)

// NewServiceBus connects to the Azure Service Bus namespace backing the
// scheduled re-dispatch queue.
func NewServiceBus(ctx context.Context, namespace string) (*azservicebus.Client, error) {
	if namespace == "" {
		return nil, fmt.Errorf("service bus namespace not configured")
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

// ServiceBusRequeue submits delayed re-dispatch tasks. A notBefore in the
// future becomes the message's scheduled enqueue time; nil means run as soon
// as the queue delivers it.
type ServiceBusRequeue struct {
	client *azservicebus.Client
	queue  string
}

func NewServiceBusRequeue(client *azservicebus.Client, queue string) *ServiceBusRequeue {
	return &ServiceBusRequeue{client: client, queue: queue}
}

func (r *ServiceBusRequeue) Enqueue(ctx context.Context, task *model.RequeueTask, notBefore *time.Time) error {
	if r.client == nil {
		return fmt.Errorf("scheduled queue not configured")
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	body, err := json.Marshal(task)
	if err != nil {
		return err
	}

	sender, err := r.client.NewSender(r.queue, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender for requeue.")
		return err
	}
	defer func() {
		if err := sender.Close(context.Background()); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing requeue sender.")
		}
	}()

	contentType := "application/json"
	msg := &azservicebus.Message{
		Body:        body,
		MessageID:   &task.ID,
		ContentType: &contentType,
	}
	if notBefore != nil {
		msg.ScheduledEnqueueTime = notBefore
	}
	if err := sender.SendMessage(ctx, msg, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending requeue message.")
		return err
	}
	return nil
}
