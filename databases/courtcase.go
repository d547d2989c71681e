package databases

// go generate: mockery --name CaseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const caseName = "cases"

// CaseDatabase contains the methods to use with the case database
type CaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Case, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Case, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, c models.Case) error
	ReplaceOne(ctx context.Context, c models.Case) error
}

type caseDatabase struct {
	db DatabaseHelper
}

// NewCaseDatabase initializes a new instance of case database with the provided db connection
func NewCaseDatabase(db DatabaseHelper) CaseDatabase {
	return &caseDatabase{
		db: db,
	}
}

func (c *caseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Case, error) {
	cs := &models.Case{}
	err := c.db.Collection(caseName).FindOne(ctx, filter, opts...).Decode(cs)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func (c *caseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Case, error) {
	var cases []models.Case
	curr, err := c.db.Collection(caseName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &cases)
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *caseDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(caseName).CountDocuments(ctx, filter, opts...)
}

func (c *caseDatabase) InsertOne(ctx context.Context, cs models.Case) error {
	_, err := c.db.Collection(caseName).InsertOne(ctx, cs)
	return err
}

func (c *caseDatabase) ReplaceOne(ctx context.Context, cs models.Case) error {
	return c.db.Collection(caseName).ReplaceOne(ctx, bson.M{"_id": cs.ID}, cs)
}

// caseFilter translates a listing filter into a mongo query document
func caseFilter(f models.CaseFilter) bson.M {
	var conds bson.A
	if !f.Judge.IsZero() {
		conds = append(conds, bson.M{"judge": f.Judge})
	}
	if !f.Advocate.IsZero() {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"advocate1": f.Advocate},
			bson.M{"advocate2": f.Advocate},
		}})
	}
	if !f.Participant.IsZero() {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"judge": f.Participant},
			bson.M{"advocate1": f.Participant},
			bson.M{"advocate2": f.Participant},
		}})
	}
	if f.Resolved != nil {
		conds = append(conds, bson.M{"isResolved": *f.Resolved})
	}
	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}
