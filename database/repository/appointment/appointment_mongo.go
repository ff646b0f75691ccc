package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database("medibook")
	repo := &MongoAppointmentRepo{coll: db.Collection("appointments")}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (repo *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("appointment with id %s not found", id)
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// overlapFilter builds the half-open interval query: an appointment
// conflicts iff scheduledStart < end AND scheduledEnd > start.
func overlapFilter(doctorID string, start, end time.Time, excludeStatuses []string) bson.M {
	filter := bson.M{
		"doctorId":       doctorID,
		"scheduledStart": bson.M{"$lt": end},
		"scheduledEnd":   bson.M{"$gt": start},
	}
	if len(excludeStatuses) > 0 {
		filter["status"] = bson.M{"$nin": excludeStatuses}
	}
	return filter
}

func (repo *MongoAppointmentRepo) FindOverlapping(doctorID string, start, end time.Time, excludeStatuses []string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, overlapFilter(doctorID, start, end, excludeStatuses))
	if err != nil {
		return nil, fmt.Errorf("error finding overlapping appointments for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding overlapping appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) UpdateStatus(id string, update models.Appointment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    update.Status,
		"updatedAt": time.Now(),
	}
	if update.Notes != "" {
		set["notes"] = update.Notes
	}
	if !update.ActualStart.IsZero() {
		set["actualStart"] = update.ActualStart
	}
	if !update.ActualEnd.IsZero() {
		set["actualEnd"] = update.ActualEnd
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

func (repo *MongoAppointmentRepo) List(q models.AppointmentQuery) ([]models.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.DoctorID != "" {
		filter["doctorId"] = q.DoctorID
	}
	if q.PatientID != "" {
		filter["patientId"] = q.PatientID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	startRange := bson.M{}
	if !q.From.IsZero() {
		startRange["$gte"] = q.From
	}
	if !q.To.IsZero() {
		startRange["$lte"] = q.To
	}
	if len(startRange) > 0 {
		filter["scheduledStart"] = startRange
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting appointments: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledStart", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, 0, fmt.Errorf("error decoding appointment page: %w", err)
	}
	return appts, total, nil
}
