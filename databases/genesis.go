package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const (
	courtName  = "court"
	genesisKey = "genesis"
)

type genesisDoc struct {
	ID             string `bson:"_id"`
	models.Genesis `bson:",inline"`
}

// GenesisDatabase reads and writes the one-time court initialization record
type GenesisDatabase interface {
	Find(ctx context.Context) (*models.Genesis, error)
	Insert(ctx context.Context, g models.Genesis) error
}

type genesisDatabase struct {
	db DatabaseHelper
}

// NewGenesisDatabase initializes a new instance of genesis database with the provided db connection
func NewGenesisDatabase(db DatabaseHelper) GenesisDatabase {
	return &genesisDatabase{
		db: db,
	}
}

// Find returns nil, nil when the court has not been initialized
func (g *genesisDatabase) Find(ctx context.Context) (*models.Genesis, error) {
	var doc genesisDoc
	err := g.db.Collection(courtName).FindOne(ctx, bson.M{"_id": genesisKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Genesis, nil
}

// Insert fails with a duplicate key error if genesis already exists
func (g *genesisDatabase) Insert(ctx context.Context, gen models.Genesis) error {
	_, err := g.db.Collection(courtName).InsertOne(ctx, genesisDoc{ID: genesisKey, Genesis: gen})
	return err
}
