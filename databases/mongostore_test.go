package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/databases"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/databases/mocks"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

type mongoFixture struct {
	client   *mocks.ClientHelper
	db       *mocks.DatabaseHelper
	cases    *mocks.CollectionHelper
	messages *mocks.CollectionHelper
	judges   *mocks.CollectionHelper
	events   *mocks.CollectionHelper
	court    *mocks.CollectionHelper
	store    *databases.MongoStore
}

func newMongoFixture() *mongoFixture {
	f := &mongoFixture{
		client:   &mocks.ClientHelper{},
		db:       &mocks.DatabaseHelper{},
		cases:    &mocks.CollectionHelper{},
		messages: &mocks.CollectionHelper{},
		judges:   &mocks.CollectionHelper{},
		events:   &mocks.CollectionHelper{},
		court:    &mocks.CollectionHelper{},
	}
	f.db.On("Collection", "cases").Return(f.cases)
	f.db.On("Collection", "messages").Return(f.messages)
	f.db.On("Collection", "judges").Return(f.judges)
	f.db.On("Collection", "events").Return(f.events)
	f.db.On("Collection", "court").Return(f.court)
	f.store = databases.NewMongoStore(f.client, f.db)
	return f
}

func TestNewMongoStore(t *testing.T) {
	conf := &config.Config{URL: "mongodb://127.0.0.1:27017", DatabaseName: "test"}

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)
	assert.NotEmpty(t, databases.NewMongoStore(dbClient, db))
}

func TestMongoStore_Genesis(t *testing.T) {
	f := newMongoFixture()
	notFound := &mocks.SingleResultHelper{}
	notFound.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	f.court.On("FindOne", mock.Anything, bson.M{"_id": "genesis"}).Return(notFound).Once()

	g, err := f.store.Genesis(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, g)

	f.court.On("InsertOne", mock.Anything, mock.Anything).Return("genesis", nil)
	assert.NoError(t, f.store.InitGenesis(context.Background(), models.Genesis{Admin: "0xadmin", CaseDurationSeconds: 300}))
	f.court.AssertCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestMongoStore_FindCase(t *testing.T) {
	f := newMongoFixture()
	srErr := &mocks.SingleResultHelper{}
	srErr.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	srOK := &mocks.SingleResultHelper{}
	srOK.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Case)
		arg.ID = 7
		arg.Description = "mocked-case"
	})
	f.cases.On("FindOne", mock.Anything, bson.M{"_id": uint64(6)}).Return(srErr)
	f.cases.On("FindOne", mock.Anything, bson.M{"_id": uint64(7)}).Return(srOK)

	cs, err := f.store.FindCase(context.Background(), 6)
	assert.Nil(t, cs)
	assert.EqualError(t, err, "mocked-error")

	cs, err = f.store.FindCase(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "mocked-case", cs.Description)
}

func TestMongoStore_CaseCount(t *testing.T) {
	f := newMongoFixture()
	f.cases.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(3), nil)

	n, err := f.store.CaseCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestMongoStore_FindCases(t *testing.T) {
	f := newMongoFixture()
	judge := models.Address("0xjudge")
	resolved := false
	want := bson.M{"$and": bson.A{
		bson.M{"judge": judge},
		bson.M{"isResolved": false},
	}}

	cursor := &mocks.CursorHelper{}
	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Case)
		*arg = []models.Case{{ID: 4, Judge: judge}}
	})
	cursor.On("Close", mock.Anything).Return(nil)
	f.cases.On("CountDocuments", mock.Anything, want).Return(int64(11), nil)
	f.cases.On("Find", mock.Anything, want, mock.Anything).Return(cursor, nil)

	cases, total, err := f.store.FindCases(context.Background(), models.CaseFilter{Judge: judge, Resolved: &resolved}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, cases, 1)
	assert.Equal(t, uint64(4), cases[0].ID)
	cursor.AssertCalled(t, "Close", mock.Anything)
}

func TestMongoStore_IsJudge(t *testing.T) {
	f := newMongoFixture()
	notFound := &mocks.SingleResultHelper{}
	notFound.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	found := &mocks.SingleResultHelper{}
	found.On("Decode", mock.Anything).Return(nil)
	failed := &mocks.SingleResultHelper{}
	failed.On("Decode", mock.Anything).Return(errors.New("mocked-error"))

	f.judges.On("FindOne", mock.Anything, bson.M{"_id": models.Address("0xnobody")}).Return(notFound)
	f.judges.On("FindOne", mock.Anything, bson.M{"_id": models.Address("0xjudge")}).Return(found)
	f.judges.On("FindOne", mock.Anything, bson.M{"_id": models.Address("0xbroken")}).Return(failed)

	ok, err := f.store.IsJudge(context.Background(), "0xnobody")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.store.IsJudge(context.Background(), "0xjudge")
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = f.store.IsJudge(context.Background(), "0xbroken")
	assert.EqualError(t, err, "mocked-error")
}

func TestMongoStore_LastEventSeq(t *testing.T) {
	f := newMongoFixture()
	sr := &mocks.SingleResultHelper{}
	sr.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments).Once()
	sr.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Event).Seq = 42
	})
	f.events.On("FindOne", mock.Anything, bson.M{}, mock.Anything).Return(sr)

	seq, err := f.store.LastEventSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)

	seq, err = f.store.LastEventSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), seq)
}

func TestMongoStore_ApplyWritesInOneTransaction(t *testing.T) {
	f := newMongoFixture()
	session := &mocks.Session{}
	session.On("WithTransaction", mock.Anything).Return(nil, nil)
	session.On("EndSession", mock.Anything).Return()
	f.client.On("StartSession").Return(session, nil)

	judge := models.Address("0xjudge")
	cs := models.Case{ID: 1, Judge: judge, Advocate1: "0xa1", Advocate2: "0xa2", MessageCount: 1}
	msg := models.Message{CaseID: 1, Index: 0, Sender: judge, Text: "hello"}

	f.cases.On("ReplaceOne", mock.Anything, bson.M{"_id": uint64(1)}, cs).Return(nil)
	f.messages.On("InsertOne", mock.Anything, msg).Return(nil, nil)
	f.judges.On("ReplaceOne", mock.Anything, bson.M{"_id": judge}, mock.Anything, mock.Anything).Return(nil)
	f.events.On("InsertMany", mock.Anything, mock.Anything).Return(nil)

	err := f.store.Apply(context.Background(), models.Changeset{
		Case:    cs,
		Message: &msg,
		Judge:   judge,
		Events:  []models.Event{{Seq: 9, Name: models.EventMessageSent, CaseID: 1}},
	})
	require.NoError(t, err)

	session.AssertExpectations(t)
	f.cases.AssertExpectations(t)
	f.messages.AssertExpectations(t)
	f.judges.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestMongoStore_ApplyStopsOnFirstFailure(t *testing.T) {
	f := newMongoFixture()
	session := &mocks.Session{}
	session.On("WithTransaction", mock.Anything).Return(nil, nil)
	session.On("EndSession", mock.Anything).Return()
	f.client.On("StartSession").Return(session, nil)

	f.cases.On("InsertOne", mock.Anything, mock.Anything).Return(nil, errors.New("duplicate key"))

	err := f.store.Apply(context.Background(), models.Changeset{
		NewCase: true,
		Case:    models.Case{ID: 1},
		Events:  []models.Event{{Seq: 1, Name: models.EventCaseSubmitted, CaseID: 1}},
	})
	assert.EqualError(t, err, "insert case 1: duplicate key")
	f.events.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestMongoStore_ApplySessionError(t *testing.T) {
	f := newMongoFixture()
	f.client.On("StartSession").Return(nil, errors.New("no replica set"))

	err := f.store.Apply(context.Background(), models.Changeset{Case: models.Case{ID: 1}})
	assert.EqualError(t, err, "start session: no replica set")
}
