// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewQueue is the durable queue merchant review events are published to.
const ReviewQueue = "merchant.review"

// Review event kinds.
const (
	ReviewApproved       = "approved"
	ReviewRejected       = "rejected"
	ReviewChangesNeeded  = "changes_requested"
	ReviewMoreDocsNeeded = "documents_requested"
)

// MerchantReviewEvent notifies a merchant of a review decision on one of
// their submissions. Entity is "property" or "kyc".
type MerchantReviewEvent struct {
	MerchantID uint   `json:"merchant_id"`
	Entity     string `json:"entity"`
	EntityID   uint   `json:"entity_id"`
	Kind       string `json:"kind"`
	Note       string `json:"note,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
