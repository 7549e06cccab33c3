package ports

// BookingConfirmation is handed to the notification dispatcher after an
// appointment is persisted.
type BookingConfirmation struct {
	AppointmentID string
	PatientID     string
	Date          string
	Time          string
	Reason        string
}

// ConfirmationNotifier delivers booking confirmations out of band.
type ConfirmationNotifier interface {
	Enqueue(confirmation BookingConfirmation)
}
