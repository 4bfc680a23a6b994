// Package approval drives the submit/review state machines for property
// listings and merchant KYC. Both share one shape, so the engine is written
// once and instantiated per entity.
package approval

import (
	"context"
	"strings"

	"roost/internal/errors"
	"roost/internal/models"
	"roost/internal/queue"
	"roost/internal/services/notification"
)

// Reviewable is the contract an entity must satisfy to be driven by the
// workflow: a Pending/Approved/Rejected status plus the review bookkeeping
// fields.
type Reviewable interface {
	ReviewStatus() models.ApprovalStatus
	SetReviewStatus(models.ApprovalStatus)
	SetReviewRejectionReason(string)
	SetReviewNote(string)
	ReviewMerchantID() uint
	ReviewEntityID() uint
}

// Workflow is one instance of the review state machine. Approved and
// Rejected are terminal: re-entering Pending takes a new submission, never a
// transition.
type Workflow[T Reviewable] struct {
	entity   string
	load     func(id uint) (T, error)
	save     func(T) error
	notifier notification.Service
}

func NewWorkflow[T Reviewable](entity string, load func(id uint) (T, error), save func(T) error, notifier notification.Service) *Workflow[T] {
	if load == nil || save == nil {
		panic("load and save are required")
	}
	if notifier == nil {
		notifier = notification.NewLogService()
	}
	return &Workflow[T]{entity: entity, load: load, save: save, notifier: notifier}
}

// Approve moves a Pending record to Approved.
func (w *Workflow[T]) Approve(ctx context.Context, id uint) (T, error) {
	return w.transition(ctx, id, models.StatusApproved, "", queue.ReviewApproved)
}

// Reject moves a Pending record to Rejected. The reason is mandatory and
// stored on the record; a silent rejection is a validation error.
func (w *Workflow[T]) Reject(ctx context.Context, id uint, reason string) (T, error) {
	var zero T
	if strings.TrimSpace(reason) == "" {
		return zero, errors.ErrValidation.WithDetail("rejection reason is required")
	}
	return w.transition(ctx, id, models.StatusRejected, reason, queue.ReviewRejected)
}

// RequestChanges keeps the record Pending, stores the reviewer's note and
// notifies the merchant.
func (w *Workflow[T]) RequestChanges(ctx context.Context, id uint, note string) (T, error) {
	var zero T
	record, err := w.load(id)
	if err != nil {
		return zero, err
	}
	if record.ReviewStatus() != models.StatusPending {
		return zero, errors.ErrInvalidTransition.WithDetail("%s is %s, not Pending", w.entity, record.ReviewStatus())
	}
	record.SetReviewNote(note)
	if err := w.save(record); err != nil {
		return zero, err
	}
	w.notify(ctx, record, changesKind(w.entity), note)
	return record, nil
}

func (w *Workflow[T]) transition(ctx context.Context, id uint, to models.ApprovalStatus, reason, kind string) (T, error) {
	var zero T
	record, err := w.load(id)
	if err != nil {
		return zero, err
	}
	if record.ReviewStatus() != models.StatusPending {
		return zero, errors.ErrInvalidTransition.WithDetail("%s is %s, not Pending", w.entity, record.ReviewStatus())
	}
	record.SetReviewStatus(to)
	if reason != "" {
		record.SetReviewRejectionReason(reason)
	}
	if err := w.save(record); err != nil {
		return zero, err
	}
	w.notify(ctx, record, kind, reason)
	return record, nil
}

func (w *Workflow[T]) notify(ctx context.Context, record T, kind, note string) {
	// Best effort; the review decision stands even if the broker is down.
	_ = w.notifier.NotifyMerchantReview(ctx, queue.MerchantReviewEvent{
		MerchantID: record.ReviewMerchantID(),
		Entity:     w.entity,
		EntityID:   record.ReviewEntityID(),
		Kind:       kind,
		Note:       note,
	})
}

func changesKind(entity string) string {
	if entity == "kyc" {
		return queue.ReviewMoreDocsNeeded
	}
	return queue.ReviewChangesNeeded
}
