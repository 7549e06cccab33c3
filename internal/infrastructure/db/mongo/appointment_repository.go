package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smilecare/clinic-api/internal/core/domain"
)

const appointmentsCollection = "appointments"

// AppointmentRepository persists bookings in MongoDB.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type appointmentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PatientID string             `bson:"patient_id"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Reason    string             `bson:"reason"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d appointmentDoc) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:        d.ID.Hex(),
		PatientID: d.PatientID,
		Date:      d.Date,
		Time:      d.Time,
		Reason:    d.Reason,
		CreatedAt: d.CreatedAt,
	}
}

// Create inserts a new appointment document. A single atomic insert; there is
// no multi-step mutation to coordinate.
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := appointmentDoc{
		PatientID: appt.PatientID,
		Date:      appt.Date,
		Time:      appt.Time,
		Reason:    appt.Reason,
		CreatedAt: appt.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *appt
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByPatient returns the patient's appointments ordered by date, then time.
func (r *AppointmentRepository) FindByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var appts []domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appts = append(appts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	return appts, nil
}

type joinedAppointmentDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Date         string             `bson:"date"`
	Time         string             `bson:"time"`
	Reason       string             `bson:"reason"`
	PatientName  string             `bson:"patient_name"`
	PatientEmail string             `bson:"patient_email"`
}

// FindAllWithPatients joins every appointment against the users collection so
// staff see patient name and email alongside each booking. patient_id is the
// hex form of the user's ObjectID, hence the $toObjectId step.
func (r *AppointmentRepository) FindAllWithPatients(ctx context.Context) ([]domain.PatientAppointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"patient_oid": bson.M{"$toObjectId": "$patient_id"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "patient_oid",
			"foreignField": "_id",
			"as":           "patient",
		}}},
		{{Key: "$unwind", Value: "$patient"}},
		{{Key: "$project", Value: bson.M{
			"date":          1,
			"time":          1,
			"reason":        1,
			"patient_name":  "$patient.name",
			"patient_email": "$patient.email",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate appointments: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.PatientAppointment
	for cur.Next(ctx) {
		var doc joinedAppointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode joined appointment: %w", err)
		}
		out = append(out, domain.PatientAppointment{
			ID:           doc.ID.Hex(),
			Date:         doc.Date,
			Time:         doc.Time,
			Reason:       doc.Reason,
			PatientName:  doc.PatientName,
			PatientEmail: doc.PatientEmail,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregate appointments: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the lookup indexes the listing queries rely on.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
