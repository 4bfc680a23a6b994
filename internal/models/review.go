package models

// Review accessors let the approval workflow drive the property and KYC
// state machines through one generic implementation.

func (p *Property) ReviewStatus() ApprovalStatus        { return p.Status }
func (p *Property) SetReviewStatus(s ApprovalStatus)    { p.Status = s }
func (p *Property) SetReviewRejectionReason(r string)   { p.RejectionReason = r }
func (p *Property) SetReviewNote(n string)              { p.ReviewNote = n }
func (p *Property) ReviewMerchantID() uint              { return p.MerchantID }
func (p *Property) ReviewEntityID() uint                { return p.ID }

func (k *KYCVerification) ReviewStatus() ApprovalStatus     { return k.Status }
func (k *KYCVerification) SetReviewStatus(s ApprovalStatus) { k.Status = s }
func (k *KYCVerification) SetReviewRejectionReason(r string) {
	k.RejectionReason = r
}
func (k *KYCVerification) SetReviewNote(n string) { k.AdminNote = n }
func (k *KYCVerification) ReviewMerchantID() uint { return k.MerchantID }
func (k *KYCVerification) ReviewEntityID() uint   { return k.ID }
