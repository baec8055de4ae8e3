package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Bukkimarh/cinetrends/db/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	summarycol *mongo.Collection
}

func NewMongoRepo(summarycol *mongo.Collection) *MongoRepo {
	return &MongoRepo{
		summarycol: summarycol,
	}
}

func (m *MongoRepo) SaveSummaries(ctx context.Context, summaries []models.Summary) error {
	if len(summaries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(summaries))
	for i := range summaries {
		docs[i] = summaries[i]
	}

	_, err := m.summarycol.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to save summaries: %w", err)
	}
	return nil
}

func (m *MongoRepo) GetSummariesByEntity(ctx context.Context, entity string) ([]models.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opt := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := m.summarycol.Find(ctx, bson.M{"entity": entity}, opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.Summary
	for cursor.Next(ctx) {
		var s models.Summary
		if err = cursor.Decode(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no summaries found for entity %s", entity)
	}
	return summaries, nil
}

func (m *MongoRepo) GetRecentSummaries(ctx context.Context, limit, skip int64) ([]models.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opt := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := m.summarycol.Find(ctx, bson.M{}, opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.Summary
	for cursor.Next(ctx) {
		var s models.Summary
		if err = cursor.Decode(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (m *MongoRepo) GetSummariesByRun(ctx context.Context, runID string) ([]models.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.summarycol.Find(ctx, bson.M{"run_id": runID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.Summary
	for cursor.Next(ctx) {
		var s models.Summary
		if err = cursor.Decode(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no summaries found for run %s", runID)
	}
	return summaries, nil
}
