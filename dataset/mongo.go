package dataset

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// MongoSource loads the two tables from survey collections.
type MongoSource struct {
	DB                     *mongo.Database
	DemographicsCollection string
	ServicesCollection     string
}

func NewMongoSource(db *mongo.Database, demographicsCollection, servicesCollection string) *MongoSource {
	return &MongoSource{
		DB:                     db,
		DemographicsCollection: demographicsCollection,
		ServicesCollection:     servicesCollection,
	}
}

func (s *MongoSource) Load(ctx context.Context) (*Tables, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	t := &Tables{}

	opts := options.Find().SetSort(bson.D{{Key: "respondent_id", Value: 1}})

	cursor, err := s.DB.Collection(s.DemographicsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &models.DataLoadError{Source: "demographics", Reason: "find failed", Err: err}
	}
	if err := cursor.All(ctx, &t.Demographics); err != nil {
		return nil, &models.DataLoadError{Source: "demographics", Reason: "decode failed", Err: err}
	}

	cursor, err = s.DB.Collection(s.ServicesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &models.DataLoadError{Source: "financial_services", Reason: "find failed", Err: err}
	}
	if err := cursor.All(ctx, &t.Services); err != nil {
		return nil, &models.DataLoadError{Source: "financial_services", Reason: "decode failed", Err: err}
	}

	return finishLoad(t)
}
