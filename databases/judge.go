package databases

// go generate: mockery --name JudgeDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const judgeName = "judges"

type judgeDoc struct {
	Address      models.Address `bson:"_id"`
	RegisteredAt time.Time      `bson:"registeredAt"`
}

// JudgeDatabase contains the methods to use with the judge registry
type JudgeDatabase interface {
	Exists(ctx context.Context, a models.Address) (bool, error)
	Register(ctx context.Context, a models.Address, at time.Time) error
}

type judgeDatabase struct {
	db DatabaseHelper
}

// NewJudgeDatabase initializes a new instance of judge database with the provided db connection
func NewJudgeDatabase(db DatabaseHelper) JudgeDatabase {
	return &judgeDatabase{
		db: db,
	}
}

func (j *judgeDatabase) Exists(ctx context.Context, a models.Address) (bool, error) {
	var doc judgeDoc
	err := j.db.Collection(judgeName).FindOne(ctx, bson.M{"_id": a}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Register upserts the judge flag. The flag is never cleared.
func (j *judgeDatabase) Register(ctx context.Context, a models.Address, at time.Time) error {
	return j.db.Collection(judgeName).ReplaceOne(ctx, bson.M{"_id": a}, judgeDoc{Address: a, RegisteredAt: at},
		options.Replace().SetUpsert(true))
}
