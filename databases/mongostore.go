package databases

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// MongoStore keeps the court in mongo collections. Apply runs in a
// multi-document transaction, which needs a replica set deployment.
type MongoStore struct {
	client   ClientHelper
	cases    CaseDatabase
	messages MessageDatabase
	judges   JudgeDatabase
	events   EventDatabase
	genesis  GenesisDatabase
}

// NewMongoStore wires the per-collection databases of db
func NewMongoStore(client ClientHelper, db DatabaseHelper) *MongoStore {
	return &MongoStore{
		client:   client,
		cases:    NewCaseDatabase(db),
		messages: NewMessageDatabase(db),
		judges:   NewJudgeDatabase(db),
		events:   NewEventDatabase(db),
		genesis:  NewGenesisDatabase(db),
	}
}

// Genesis returns the stored genesis or nil
func (s *MongoStore) Genesis(ctx context.Context) (*models.Genesis, error) {
	return s.genesis.Find(ctx)
}

// InitGenesis writes genesis once
func (s *MongoStore) InitGenesis(ctx context.Context, g models.Genesis) error {
	return s.genesis.Insert(ctx, g)
}

// CaseCount relies on case ids being dense from 1
func (s *MongoStore) CaseCount(ctx context.Context) (uint64, error) {
	n, err := s.cases.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// FindCase returns one case by id
func (s *MongoStore) FindCase(ctx context.Context, id uint64) (*models.Case, error) {
	return s.cases.FindOne(ctx, bson.M{"_id": id})
}

// FindCases returns a page of matching cases ordered by id, and the match count
func (s *MongoStore) FindCases(ctx context.Context, filter models.CaseFilter, skip, limit int) ([]models.Case, int64, error) {
	q := caseFilter(filter)
	total, err := s.cases.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cases, err := s.cases.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// Messages returns the log of a case in index order
func (s *MongoStore) Messages(ctx context.Context, caseID uint64) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "index", Value: 1}})
	return s.messages.Find(ctx, bson.M{"caseId": caseID}, opts)
}

// Message returns one message by case and index
func (s *MongoStore) Message(ctx context.Context, caseID, index uint64) (*models.Message, error) {
	return s.messages.FindOne(ctx, bson.M{"caseId": caseID, "index": index})
}

// IsJudge reads the judge flag
func (s *MongoStore) IsJudge(ctx context.Context, a models.Address) (bool, error) {
	return s.judges.Exists(ctx, a)
}

// LastEventSeq returns 0 for an empty log
func (s *MongoStore) LastEventSeq(ctx context.Context) (uint64, error) {
	return s.events.LastSeq(ctx)
}

// Events returns up to limit events with seq > after
func (s *MongoStore) Events(ctx context.Context, after uint64, limit int) ([]models.Event, error) {
	return s.events.After(ctx, after, limit)
}

// Apply writes the changeset inside one session transaction
func (s *MongoStore) Apply(ctx context.Context, cs models.Changeset) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, s.write(sc, cs)
	})
	return err
}

func (s *MongoStore) write(ctx context.Context, cs models.Changeset) error {
	if cs.NewCase {
		if err := s.cases.InsertOne(ctx, cs.Case); err != nil {
			return fmt.Errorf("insert case %d: %w", cs.Case.ID, err)
		}
	} else if err := s.cases.ReplaceOne(ctx, cs.Case); err != nil {
		return fmt.Errorf("replace case %d: %w", cs.Case.ID, err)
	}
	if cs.Message != nil {
		if err := s.messages.InsertOne(ctx, *cs.Message); err != nil {
			return fmt.Errorf("insert message %d of case %d: %w", cs.Message.Index, cs.Case.ID, err)
		}
	}
	if !cs.Judge.IsZero() {
		at := time.Now().UTC()
		if len(cs.Events) > 0 {
			at = cs.Events[0].Timestamp
		}
		if err := s.judges.Register(ctx, cs.Judge, at); err != nil {
			return fmt.Errorf("register judge %s: %w", cs.Judge, err)
		}
	}
	if err := s.events.InsertMany(ctx, cs.Events); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

// Close disconnects the client
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
