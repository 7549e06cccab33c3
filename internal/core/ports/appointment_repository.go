package ports

import (
	"context"

	"github.com/smilecare/clinic-api/internal/core/domain"
)

// AppointmentRepository persists bookings. Every write is a single atomic
// insert; there is no update or delete.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// FindByPatient returns the patient's appointments ordered by date, then time.
	FindByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	// FindAllWithPatients returns every appointment joined with the owning
	// patient's name and email, ordered by date, then time.
	FindAllWithPatients(ctx context.Context) ([]domain.PatientAppointment, error)
}
