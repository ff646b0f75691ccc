package clinicRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClinicRepository is the data access surface for clinic records.
type ClinicRepository interface {
	Create(clinic *models.Clinic) error
	GetByID(id string) (*models.Clinic, error)
	// GetByIDs returns the clinics for the given ids, keyed by id, for
	// cheap name lookups when grouping availability.
	GetByIDs(ids []string) (map[string]models.Clinic, error)
}

// MongoClinicRepo implements ClinicRepository using MongoDB.
type MongoClinicRepo struct {
	coll *mongo.Collection
}

// NewMongoClinicRepo constructs a new instance of MongoClinicRepo.
func NewMongoClinicRepo() ClinicRepository {
	db := database.MongoClient.Database("medibook")
	return &MongoClinicRepo{coll: db.Collection("clinics")}
}

func (repo *MongoClinicRepo) Create(clinic *models.Clinic) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, clinic); err != nil {
		return fmt.Errorf("error creating clinic: %w", err)
	}
	return nil
}

func (repo *MongoClinicRepo) GetByID(id string) (*models.Clinic, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var clinic models.Clinic
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&clinic); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("clinic with id %s not found", id)
		}
		return nil, fmt.Errorf("error fetching clinic %s: %w", id, err)
	}
	return &clinic, nil
}

func (repo *MongoClinicRepo) GetByIDs(ids []string) (map[string]models.Clinic, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching clinics: %w", err)
	}
	defer cursor.Close(ctx)

	clinics := make(map[string]models.Clinic, len(ids))
	for cursor.Next(ctx) {
		var c models.Clinic
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("error decoding clinic: %w", err)
		}
		clinics[c.ID] = c
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return clinics, nil
}
