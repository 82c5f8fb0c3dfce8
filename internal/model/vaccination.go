package model

import "time"

// Vaccination is an administered vaccine record.
type Vaccination struct {
	Owned
	VaccineName     string    `json:"vaccine_name" db:"vaccine_name"`
	VaccinationDate time.Time `json:"vaccination_date" db:"vaccination_date"`
	Manufacturer    string    `json:"manufacturer" db:"manufacturer"`
	DoseNumber      string    `json:"dose_number" db:"dose_number"`
}

type VaccinationRequest struct {
	VaccineName     string    `form:"vaccine_name" binding:"required"`
	VaccinationDate time.Time `form:"vaccination_date" binding:"required,pastdate" time_format:"2006-01-02"`
	Manufacturer    string    `form:"manufacturer" binding:"required"`
	DoseNumber      string    `form:"dose_number" binding:"required"`
}

func (r *VaccinationRequest) ToModel() *Vaccination {
	return &Vaccination{
		VaccineName:     r.VaccineName,
		VaccinationDate: r.VaccinationDate,
		Manufacturer:    r.Manufacturer,
		DoseNumber:      r.DoseNumber,
	}
}
