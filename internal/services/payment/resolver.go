package payment

import (
	"time"

	"roost/internal/models"
)

// Resolve derives a member's payment status from its payment dates. It is a
// pure function; the Member.PaymentStatus column is only a display cache and
// is refreshed from this on every payment mutation.
//
//   - no due date (unassigned member): NotApplicable
//   - due date strictly in the past: Overdue
//   - a payment on record with the due date still ahead: Paid
//   - otherwise (assigned, nothing recorded yet): Pending
//
// Recording a payment always advances the due date to the end of the period
// the payment covers, and leaving a room clears both dates, so a non-nil
// lastPaid together with a future due date means the current cycle is paid.
func Resolve(lastPaid, nextDue *time.Time, now time.Time) models.PaymentStatus {
	if nextDue == nil {
		return models.PaymentNotApplicable
	}
	if nextDue.Before(now) {
		return models.PaymentOverdue
	}
	if lastPaid != nil && lastPaid.Before(*nextDue) {
		return models.PaymentPaid
	}
	return models.PaymentPending
}
