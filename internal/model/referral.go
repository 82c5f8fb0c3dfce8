package model

import "time"

// Referral is a referral to a specialist or procedure.
type Referral struct {
	Owned
	Title          string    `json:"title" db:"title"`
	IssueDate      time.Time `json:"issue_date" db:"issue_date"`
	ExpirationDate time.Time `json:"expiration_date" db:"expiration_date"`
	ReferralType   string    `json:"referral_type" db:"referral_type"`
	ReferralNumber string    `json:"referral_number" db:"referral_number"`
}

type ReferralRequest struct {
	Title          string    `form:"title" binding:"required"`
	IssueDate      time.Time `form:"issue_date" binding:"required" time_format:"2006-01-02"`
	ExpirationDate time.Time `form:"expiration_date" binding:"required" time_format:"2006-01-02"`
	ReferralType   string    `form:"referral_type" binding:"required"`
	ReferralNumber string    `form:"referral_number" binding:"required"`
}

func (r *ReferralRequest) ToModel() *Referral {
	return &Referral{
		Title:          r.Title,
		IssueDate:      r.IssueDate,
		ExpirationDate: r.ExpirationDate,
		ReferralType:   r.ReferralType,
		ReferralNumber: r.ReferralNumber,
	}
}
