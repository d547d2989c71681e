package databases

// go generate: mockery --name EventDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const eventName = "events"

// EventDatabase contains the methods to use with the event log
type EventDatabase interface {
	LastSeq(ctx context.Context) (uint64, error)
	After(ctx context.Context, after uint64, limit int) ([]models.Event, error)
	InsertMany(ctx context.Context, events []models.Event) error
}

type eventDatabase struct {
	db DatabaseHelper
}

// NewEventDatabase initializes a new instance of event database with the provided db connection
func NewEventDatabase(db DatabaseHelper) EventDatabase {
	return &eventDatabase{
		db: db,
	}
}

func (e *eventDatabase) LastSeq(ctx context.Context) (uint64, error) {
	var last models.Event
	err := e.db.Collection(eventName).FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Seq, nil
}

func (e *eventDatabase) After(ctx context.Context, after uint64, limit int) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(limit))
	curr, err := e.db.Collection(eventName).Find(ctx, bson.M{"_id": bson.M{"$gt": after}}, opts)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)

	var events []models.Event
	if err := curr.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (e *eventDatabase) InsertMany(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, len(events))
	for i := range events {
		docs[i] = events[i]
	}
	return e.db.Collection(eventName).InsertMany(ctx, docs)
}
