package requeue

import (
	"context"
	"encoding/json"
	"time"

	"hireboard/domain/model"
	"hireboard/domain/repository"
	"hireboard/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// DispatchFunc re-invokes the dispatcher for a narrowed requeue task.
type DispatchFunc func(ctx context.Context, task *model.RequeueTask) ([]*model.SocialResult, error)

// RunWorker drains the scheduled re-dispatch queue until ctx is cancelled.
// Each message re-invokes the dispatcher with the task's platform list; when a
// job store is available the job summary is refreshed first, since titles can
// change between the original failure and the retry.
func RunWorker(ctx context.Context, client *azservicebus.Client, queue string, jobRepo repository.IJob, dispatch DispatchFunc) error {
	receiver, err := client.NewReceiverForQueue(queue, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := receiver.Close(context.Background()); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing requeue receiver.")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		messages, err := receiver.ReceiveMessages(ctx, 10, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.GetLogger().WithField("error", err).Warn("requeue receive failed; backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, msg := range messages {
			task := &model.RequeueTask{}
			if err := json.Unmarshal(msg.Body, task); err != nil {
				logger.GetLogger().WithField("error", err).Error("requeue message body is not a task; dead-lettering")
				_ = receiver.DeadLetterMessage(ctx, msg, nil)
				continue
			}
			if jobRepo != nil {
				if fresh, err := jobRepo.GetSummary(ctx, task.Job.ID); err == nil {
					task.Job = *fresh
				} else {
					logger.GetLogger().WithField("job_id", task.Job.ID).WithField("error", err).Warn("could not refresh job summary; dispatching with queued snapshot")
				}
			}

			dispatchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			results, err := dispatch(dispatchCtx, task)
			cancel()
			if err != nil {
				// Caller-contract violations cannot heal on retry
				logger.GetLogger().WithField("task_id", task.ID).WithField("error", err).Error("re-dispatch rejected; dead-lettering")
				_ = receiver.DeadLetterMessage(ctx, msg, nil)
				continue
			}
			for _, res := range results {
				if !res.OK {
					logger.GetLogger().WithField("task_id", task.ID).WithField("platform", res.Platform).WithField("message", res.Message).Warn("re-dispatch branch failed")
				}
			}
			if err := receiver.CompleteMessage(ctx, msg, nil); err != nil {
				logger.GetLogger().WithField("error", err).Error("Error while completing requeue message.")
			}
		}
	}
}
