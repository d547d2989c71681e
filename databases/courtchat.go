package databases

// go generate: mockery --name MessageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const messageName = "messages"

// MessageDatabase contains the methods to use with the case message database
type MessageDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Message, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error)
	InsertOne(ctx context.Context, m models.Message) error
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Message, error) {
	msg := &models.Message{}
	err := m.db.Collection(messageName).FindOne(ctx, filter, opts...).Decode(msg)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *messageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error) {
	var msgs []models.Message
	curr, err := m.db.Collection(messageName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &msgs)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (m *messageDatabase) InsertOne(ctx context.Context, msg models.Message) error {
	_, err := m.db.Collection(messageName).InsertOne(ctx, msg)
	return err
}
