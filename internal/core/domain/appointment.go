package domain

import (
	"errors"
	"time"
)

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrForbidden = errors.New("access forbidden")

// Appointment is a single booked visit. Appointments are immutable once
// created: the clinic has no update or cancel operation, and double-booking
// a slot is allowed.
type Appointment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PatientID string    `json:"patient_id" bson:"patient_id"`
	Date      string    `json:"date" bson:"date"` // YYYY-MM-DD
	Time      string    `json:"time" bson:"time"` // HH:mm
	Reason    string    `json:"reason" bson:"reason"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// PatientAppointment is an appointment joined with the owning patient's
// contact details, used by the staff overview.
type PatientAppointment struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reason       string `json:"reason"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
}
