package model

import "time"

// Certificate is an issued medical certificate.
type Certificate struct {
	Owned
	Title       string    `json:"title" db:"title"`
	IssueDate   time.Time `json:"issue_date" db:"issue_date"`
	Description string    `json:"description" db:"description"`
}

type CertificateRequest struct {
	Title       string    `form:"title" binding:"required"`
	IssueDate   time.Time `form:"issue_date" binding:"required" time_format:"2006-01-02"`
	Description string    `form:"description" binding:"required"`
}

func (r *CertificateRequest) ToModel() *Certificate {
	return &Certificate{
		Title:       r.Title,
		IssueDate:   r.IssueDate,
		Description: r.Description,
	}
}
