// Package workflows holds the Temporal workflows of the subscription context.
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// PendingExpiryWorkflowName is the registered workflow type name.
const PendingExpiryWorkflowName = "PendingSubscriptionExpiry"

// PendingExpiryInput is the workflow argument.
type PendingExpiryInput struct {
	SubscriberID uuid.UUID     `json:"subscriber_id"`
	TTL          time.Duration `json:"ttl"`
}

// PendingExpiryResult reports whether the subscriber was removed.
type PendingExpiryResult struct {
	Expired bool `json:"expired"`
}

// Expirer deletes a subscriber that is still pending.
type Expirer interface {
	ExpirePending(ctx context.Context, id uuid.UUID) (bool, error)
}

// Activities are the activity implementations backing PendingExpiryWorkflow.
type Activities struct {
	Expirer Expirer
}

// ExpirePending is a thin activity over Expirer.ExpirePending.
func (a *Activities) ExpirePending(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.Expirer.ExpirePending(ctx, id)
}

// PendingExpiryWorkflow sleeps for the confirmation window, then removes the
// subscriber if it never confirmed.
func PendingExpiryWorkflow(ctx workflow.Context, in PendingExpiryInput) (PendingExpiryResult, error) {
	if err := workflow.Sleep(ctx, in.TTL); err != nil {
		return PendingExpiryResult{}, err
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    5,
		},
	})

	var a *Activities
	var expired bool
	if err := workflow.ExecuteActivity(ctx, a.ExpirePending, in.SubscriberID).Get(ctx, &expired); err != nil {
		return PendingExpiryResult{}, fmt.Errorf("expire pending subscriber: %w", err)
	}

	workflow.GetLogger(ctx).Info("pending expiry finished",
		"subscriber_id", in.SubscriberID.String(), "expired", expired)
	return PendingExpiryResult{Expired: expired}, nil
}

// Register adds the workflow and its activities to a worker.
func Register(acts *Activities) func(worker.Registry) {
	return func(w worker.Registry) {
		w.RegisterWorkflowWithOptions(PendingExpiryWorkflow, workflow.RegisterOptions{Name: PendingExpiryWorkflowName})
		w.RegisterActivity(acts)
	}
}

// WorkflowID is deterministic per subscriber so a redelivered event cannot
// start a second timer.
func WorkflowID(id uuid.UUID) string {
	return "pending-expiry-" + id.String()
}

// StartPendingExpiry schedules the expiry workflow for one subscriber.
func StartPendingExpiry(ctx context.Context, c client.Client, taskQueue string, id uuid.UUID, ttl time.Duration) error {
	_, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(id),
		TaskQueue: taskQueue,
	}, PendingExpiryWorkflowName, PendingExpiryInput{SubscriberID: id, TTL: ttl})
	if err != nil {
		return fmt.Errorf("start pending expiry workflow: %w", err)
	}
	return nil
}
