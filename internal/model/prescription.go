package model

import "time"

// Prescription is an issued medication prescription.
type Prescription struct {
	Owned
	MedicationName string    `json:"medication_name" db:"medication_name"`
	IssueDate      time.Time `json:"issue_date" db:"issue_date"`
	Dosage         string    `json:"dosage" db:"dosage"`
	Instructions   string    `json:"instructions" db:"instructions"`
}

type PrescriptionRequest struct {
	MedicationName string    `form:"medication_name" binding:"required"`
	IssueDate      time.Time `form:"issue_date" binding:"required" time_format:"2006-01-02"`
	Dosage         string    `form:"dosage" binding:"required"`
	Instructions   string    `form:"instructions" binding:"required"`
}

func (r *PrescriptionRequest) ToModel() *Prescription {
	return &Prescription{
		MedicationName: r.MedicationName,
		IssueDate:      r.IssueDate,
		Dosage:         r.Dosage,
		Instructions:   r.Instructions,
	}
}
