package ratingRepo

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

// RatingRepository is the data access surface for appointment ratings.
type RatingRepository interface {
	Create(r *models.Rating) error
	// GetByAppointmentID returns (nil, nil) when the appointment has no
	// rating yet.
	GetByAppointmentID(appointmentID string) (*models.Rating, error)
	// ListByDoctor returns a doctor's ratings, newest first.
	ListByDoctor(doctorID string) ([]models.Rating, error)
	// DoctorRatingStats aggregates the average score and rating count.
	DoctorRatingStats(doctorID string) (average float64, total int64, err error)
}

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo constructs a new instance of MongoRatingRepo.
func NewMongoRatingRepo() RatingRepository {
	db := database.MongoClient.Database("medibook")
	return &MongoRatingRepo{coll: db.Collection("ratings")}
}

func (repo *MongoRatingRepo) Create(r *models.Rating) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("error creating rating: %w", err)
	}
	return nil
}

func (repo *MongoRatingRepo) GetByAppointmentID(appointmentID string) (*models.Rating, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var r models.Rating
	err := repo.coll.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching rating for appointment %s: %w", appointmentID, err)
	}
	return &r, nil
}

func (repo *MongoRatingRepo) ListByDoctor(doctorID string) ([]models.Rating, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"doctorId": doctorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing ratings for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Rating
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding ratings: %w", err)
	}
	return out, nil
}

func (repo *MongoRatingRepo) DoctorRatingStats(doctorID string) (float64, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"doctorId": doctorID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$score"},
			"total":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating ratings for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var stats []struct {
		Average float64 `bson:"average"`
		Total   int64   `bson:"total"`
	}
	if err := cursor.All(ctx, &stats); err != nil {
		return 0, 0, fmt.Errorf("error decoding rating stats: %w", err)
	}
	if len(stats) == 0 {
		return 0, 0, nil
	}
	return stats[0].Average, stats[0].Total, nil
}
