package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/smilecare/clinic-api/internal/api/metrics"
	"github.com/smilecare/clinic-api/internal/core/domain"
	"github.com/smilecare/clinic-api/internal/core/ports"
)

// AppointmentService implements booking and the patient/staff listings.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	users        ports.UserRepository
	notifier     ports.ConfirmationNotifier
	logger       zerolog.Logger
}

// NewAppointmentService wires the service. notifier may be nil, in which case
// no booking confirmations are sent.
func NewAppointmentService(appointments ports.AppointmentRepository, users ports.UserRepository, notifier ports.ConfirmationNotifier, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		notifier:     notifier,
		logger:       logger,
	}
}

// Book inserts a new appointment. There is deliberately no slot-conflict
// check: the clinic triages double-booked slots at the front desk.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookInput) (*domain.Appointment, error) {
	if input.Date == "" || input.Time == "" || input.Reason == "" {
		return nil, domain.ErrMissingFields
	}

	appt := &domain.Appointment{
		PatientID: input.PatientID,
		Date:      input.Date,
		Time:      input.Time,
		Reason:    input.Reason,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.appointments.Create(ctx, appt)
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", input.PatientID).Msg("failed to book appointment")
		return nil, err
	}

	metrics.AppointmentsBookedTotal.Inc()
	s.logger.Info().
		Str("appointment_id", created.ID).
		Str("patient_id", created.PatientID).
		Str("date", created.Date).
		Msg("appointment booked")

	if s.notifier != nil {
		s.notifier.Enqueue(ports.BookingConfirmation{
			AppointmentID: created.ID,
			PatientID:     created.PatientID,
			Date:          created.Date,
			Time:          created.Time,
			Reason:        created.Reason,
		})
	}

	return created, nil
}

// ListForPatient returns the patient's own appointments, earliest first.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return s.appointments.FindByPatient(ctx, patientID)
}

// ListAll returns every appointment with patient contact details, for staff.
func (s *AppointmentService) ListAll(ctx context.Context) ([]domain.PatientAppointment, error) {
	return s.appointments.FindAllWithPatients(ctx)
}

// ListPatients returns the public profile of every registered client.
func (s *AppointmentService) ListPatients(ctx context.Context) ([]domain.PublicProfile, error) {
	users, err := s.users.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles, nil
}
