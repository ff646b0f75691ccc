package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository is the data access surface for doctor profiles.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	GetByID(id string) (*models.Doctor, error)
	GetByUserID(userID string) (*models.Doctor, error)
	Update(doctor *models.Doctor) error
	// SetRatingStats overwrites the denormalized review aggregates.
	SetRatingStats(doctorID string, average float64, total int) error
}

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new instance of MongoDoctorRepo.
func NewMongoDoctorRepo() DoctorRepository {
	db := database.MongoClient.Database("medibook")
	return &MongoDoctorRepo{coll: db.Collection("doctors")}
}

func (repo *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("error creating doctor profile: %w", err)
	}
	return nil
}

func (repo *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("doctor with id %s not found", id)
		}
		return nil, fmt.Errorf("error fetching doctor %s: %w", id, err)
	}
	return &doctor, nil
}

func (repo *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": doctor.ID}, bson.M{"$set": doctor})
	if err != nil {
		return fmt.Errorf("error updating doctor %s: %w", doctor.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctor.ID)
	}
	return nil
}

func (repo *MongoDoctorRepo) SetRatingStats(doctorID string, average float64, total int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"averageRating": average, "totalRatings": total, "updatedAt": time.Now()}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": doctorID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating rating stats for doctor %s: %w", doctorID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctorID)
	}
	return nil
}

func (repo *MongoDoctorRepo) GetByUserID(userID string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := repo.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("doctor profile for user %s not found", userID)
		}
		return nil, fmt.Errorf("error fetching doctor by user id: %w", err)
	}
	return &doctor, nil
}
