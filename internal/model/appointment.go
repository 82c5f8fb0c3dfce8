package model

import "time"

// Appointment is a doctor-visit note.
type Appointment struct {
	Owned
	Title                string    `json:"title" db:"title"`
	AppointmentDate      time.Time `json:"appointment_date" db:"appointment_date"`
	DoctorName           string    `json:"doctor_name" db:"doctor_name"`
	Complaints           string    `json:"complaints" db:"complaints"`
	ProcedureDescription string    `json:"procedure_description" db:"procedure_description"`
	Diagnosis            string    `json:"diagnosis" db:"diagnosis"`
}

// AppointmentRequest carries the scalar fields for create and update. The
// optional attachment travels separately as the multipart "document" part.
type AppointmentRequest struct {
	Title                string    `form:"title" binding:"required"`
	AppointmentDate      time.Time `form:"appointment_date" binding:"required" time_format:"2006-01-02"`
	DoctorName           string    `form:"doctor_name" binding:"required"`
	Complaints           string    `form:"complaints" binding:"required"`
	ProcedureDescription string    `form:"procedure_description" binding:"required"`
	Diagnosis            string    `form:"diagnosis" binding:"required"`
}

func (r *AppointmentRequest) ToModel() *Appointment {
	return &Appointment{
		Title:                r.Title,
		AppointmentDate:      r.AppointmentDate,
		DoctorName:           r.DoctorName,
		Complaints:           r.Complaints,
		ProcedureDescription: r.ProcedureDescription,
		Diagnosis:            r.Diagnosis,
	}
}
