package prescriptionRepo

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

// PrescriptionRepository is the data access surface for prescriptions.
type PrescriptionRepository interface {
	Create(p *models.Prescription) error
	GetByID(id string) (*models.Prescription, error)
	// ListByPatient returns a patient's prescriptions, newest first.
	ListByPatient(patientID string) ([]models.Prescription, error)
}

// MongoPrescriptionRepo implements PrescriptionRepository using MongoDB.
type MongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo constructs a new instance of MongoPrescriptionRepo.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	db := database.MongoClient.Database("medibook")
	return &MongoPrescriptionRepo{coll: db.Collection("prescriptions")}
}

func (repo *MongoPrescriptionRepo) Create(p *models.Prescription) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("error creating prescription: %w", err)
	}
	return nil
}

func (repo *MongoPrescriptionRepo) GetByID(id string) (*models.Prescription, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p models.Prescription
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("prescription with id %s not found", id)
		}
		return nil, fmt.Errorf("error fetching prescription %s: %w", id, err)
	}
	return &p, nil
}

func (repo *MongoPrescriptionRepo) ListByPatient(patientID string) ([]models.Prescription, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing prescriptions for patient %s: %w", patientID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Prescription
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding prescriptions: %w", err)
	}
	return out, nil
}
