package scheduleRepo

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

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("medibook")
	repo := &MongoScheduleRepo{coll: db.Collection("doctor_clinics")}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (repo *MongoScheduleRepo) GetDoctorClinics(doctorID, clinicID string) ([]models.DoctorClinic, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "isActive": true}
	if clinicID != "" {
		filter["clinicId"] = clinicID
	}

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching doctor clinics for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var pairings []models.DoctorClinic
	if err := cursor.All(ctx, &pairings); err != nil {
		return nil, fmt.Errorf("error decoding doctor clinics: %w", err)
	}
	return pairings, nil
}

func (repo *MongoScheduleRepo) GetDoctorClinic(doctorID, clinicID string) (*models.DoctorClinic, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var dc models.DoctorClinic
	filter := bson.M{"doctorId": doctorID, "clinicId": clinicID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&dc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching doctor clinic pairing: %w", err)
	}
	return &dc, nil
}

// UpsertDoctorClinic replaces the stored schedule blocks for the pairing in
// one write, mirroring the set-schedule operation which always sends the
// full weekly picture.
func (repo *MongoScheduleRepo) UpsertDoctorClinic(dc *models.DoctorClinic) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dc.UpdatedAt = time.Now()
	filter := bson.M{"doctorId": dc.DoctorID, "clinicId": dc.ClinicID}
	update := bson.M{
		"$set": bson.M{
			"consultationFee":      dc.ConsultationFee,
			"consultationDuration": dc.ConsultationDuration,
			"isActive":             true,
			"schedules":            dc.Schedules,
			"updatedAt":            dc.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":        dc.ID,
			"doctorId":  dc.DoctorID,
			"clinicId":  dc.ClinicID,
			"createdAt": dc.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting doctor clinic schedule: %w", err)
	}
	return nil
}

func (repo *MongoScheduleRepo) DeactivateDoctorClinic(doctorID, clinicID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "clinicId": clinicID}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error deactivating doctor clinic pairing: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor clinic pairing not found for doctor %s and clinic %s", doctorID, clinicID)
	}
	return nil
}
