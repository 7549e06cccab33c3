package ports

import (
	"context"

	"github.com/smilecare/clinic-api/internal/core/domain"
)

// BookInput carries everything needed to book an appointment. PatientID comes
// from the verified session claims, never from the request body.
type BookInput struct {
	PatientID string
	Date      string
	Time      string
	Reason    string
}

// AppointmentService defines the booking use cases.
type AppointmentService interface {
	Book(ctx context.Context, input BookInput) (*domain.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListAll(ctx context.Context) ([]domain.PatientAppointment, error)
	ListPatients(ctx context.Context) ([]domain.PublicProfile, error)
}
