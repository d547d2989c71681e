package databases_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/databases"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// store is the method set both embedded backends share with court.Store
type store interface {
	Genesis(ctx context.Context) (*models.Genesis, error)
	InitGenesis(ctx context.Context, g models.Genesis) error
	CaseCount(ctx context.Context) (uint64, error)
	FindCase(ctx context.Context, id uint64) (*models.Case, error)
	FindCases(ctx context.Context, filter models.CaseFilter, skip, limit int) ([]models.Case, int64, error)
	Messages(ctx context.Context, caseID uint64) ([]models.Message, error)
	Message(ctx context.Context, caseID, index uint64) (*models.Message, error)
	IsJudge(ctx context.Context, a models.Address) (bool, error)
	LastEventSeq(ctx context.Context) (uint64, error)
	Events(ctx context.Context, after uint64, limit int) ([]models.Event, error)
	Apply(ctx context.Context, cs models.Changeset) error
	Close() error
}

var (
	ts    = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	judge = models.NewAddress("0x00000000000000000000000000000000000000J1")
	adv1  = models.NewAddress("0x00000000000000000000000000000000000000A1")
	adv2  = models.NewAddress("0x00000000000000000000000000000000000000A2")
)

func backends(t *testing.T) map[string]func() store {
	return map[string]func() store{
		"memory": func() store { return databases.NewMemoryStore() },
		"badger": func() store {
			s, err := databases.OpenBadgerStore(databases.BadgerConfig{InMemory: true})
			require.NoError(t, err)
			return s
		},
	}
}

func newCase(id uint64, seq uint64) models.Changeset {
	return models.Changeset{
		NewCase: true,
		Case:    models.Case{ID: id, Description: "case", SubmissionTime: ts},
		Events:  []models.Event{{Seq: seq, Name: models.EventCaseSubmitted, CaseID: id, Timestamp: ts}},
	}
}

func TestStore_Genesis(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()
			ctx := context.Background()

			g, err := s.Genesis(ctx)
			require.NoError(t, err)
			assert.Nil(t, g)

			want := models.Genesis{Admin: "0xadmin", CaseDurationSeconds: 300, CreatedAt: ts}
			require.NoError(t, s.InitGenesis(ctx, want))
			assert.Error(t, s.InitGenesis(ctx, want))

			g, err = s.Genesis(ctx)
			require.NoError(t, err)
			require.NotNil(t, g)
			assert.Equal(t, want.Admin, g.Admin)
			assert.Equal(t, want.CaseDurationSeconds, g.CaseDurationSeconds)
			assert.True(t, want.CreatedAt.Equal(g.CreatedAt))
		})
	}
}

func TestStore_ApplyCaseLifecycle(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()
			ctx := context.Background()

			require.NoError(t, s.Apply(ctx, newCase(1, 1)))
			require.NoError(t, s.Apply(ctx, newCase(2, 2)))

			count, err := s.CaseCount(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), count)

			cs, err := s.FindCase(ctx, 1)
			require.NoError(t, err)
			cs.Judge = judge
			require.NoError(t, s.Apply(ctx, models.Changeset{
				Case:   *cs,
				Judge:  judge,
				Events: []models.Event{{Seq: 3, Name: models.EventJudgeAssigned, CaseID: 1, Judge: judge, Timestamp: ts}},
			}))

			ok, err := s.IsJudge(ctx, judge)
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = s.IsJudge(ctx, adv1)
			require.NoError(t, err)
			assert.False(t, ok)

			cs.Advocate1, cs.Advocate2 = adv1, adv2
			cs.MessageCount = 1
			msg := models.Message{CaseID: 1, Index: 0, Sender: adv1, Text: "opening", EvidenceHash: "Qm1", Timestamp: ts}
			require.NoError(t, s.Apply(ctx, models.Changeset{
				Case:    *cs,
				Message: &msg,
				Events:  []models.Event{{Seq: 4, Name: models.EventMessageSent, CaseID: 1, Sender: adv1, Timestamp: ts}},
			}))

			msgs, err := s.Messages(ctx, 1)
			require.NoError(t, err)
			require.Len(t, msgs, 1)
			assert.Equal(t, "opening", msgs[0].Text)

			m, err := s.Message(ctx, 1, 0)
			require.NoError(t, err)
			assert.Equal(t, adv1, m.Sender)

			msgs, err = s.Messages(ctx, 2)
			require.NoError(t, err)
			assert.Empty(t, msgs)

			last, err := s.LastEventSeq(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(4), last)

			events, err := s.Events(ctx, 2, 10)
			require.NoError(t, err)
			require.Len(t, events, 2)
			assert.Equal(t, models.EventJudgeAssigned, events[0].Name)
			assert.Equal(t, uint64(4), events[1].Seq)

			events, err = s.Events(ctx, 0, 1)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, uint64(1), events[0].Seq)

			events, err = s.Events(ctx, 4, 10)
			require.NoError(t, err)
			assert.Empty(t, events)
		})
	}
}

func TestStore_ApplyRejectsWholeChangeset(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()
			ctx := context.Background()

			require.NoError(t, s.Apply(ctx, newCase(1, 1)))

			// case id skips ahead
			assert.Error(t, s.Apply(ctx, newCase(3, 2)))

			// event seq is stale, nothing of the case update may land
			cs, err := s.FindCase(ctx, 1)
			require.NoError(t, err)
			cs.Judge = judge
			err = s.Apply(ctx, models.Changeset{
				Case:   *cs,
				Judge:  judge,
				Events: []models.Event{{Seq: 1, Name: models.EventJudgeAssigned, CaseID: 1, Timestamp: ts}},
			})
			assert.Error(t, err)

			cs, err = s.FindCase(ctx, 1)
			require.NoError(t, err)
			assert.True(t, cs.Judge.IsZero())
			ok, err := s.IsJudge(ctx, judge)
			require.NoError(t, err)
			assert.False(t, ok)

			count, err := s.CaseCount(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), count)
			last, err := s.LastEventSeq(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), last)
		})
	}
}

func TestStore_ApplyHonoursCancelledContext(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.ErrorIs(t, s.Apply(ctx, newCase(1, 1)), context.Canceled)

			count, err := s.CaseCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, uint64(0), count)
			last, err := s.LastEventSeq(context.Background())
			require.NoError(t, err)
			assert.Equal(t, uint64(0), last)
		})
	}
}

func TestStore_EventsAfterLastSeq(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()
			ctx := context.Background()

			require.NoError(t, s.Apply(ctx, newCase(1, 1)))
			require.NoError(t, s.Apply(ctx, newCase(2, 2)))

			events, err := s.Events(ctx, math.MaxUint64, 10)
			require.NoError(t, err)
			assert.Empty(t, events)

			events, err = s.Events(ctx, math.MaxUint64-1, 10)
			require.NoError(t, err)
			assert.Empty(t, events)

			events, err = s.Events(ctx, 1, 10)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, uint64(2), events[0].Seq)
		})
	}
}

func TestStore_FindCases(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()
			ctx := context.Background()

			for i := uint64(1); i <= 5; i++ {
				require.NoError(t, s.Apply(ctx, newCase(i, i)))
			}
			cs, err := s.FindCase(ctx, 2)
			require.NoError(t, err)
			cs.Judge, cs.Advocate1 = judge, adv1
			cs.IsResolved, cs.Resolution = true, models.ResolutionApproved
			require.NoError(t, s.Apply(ctx, models.Changeset{Case: *cs}))

			page, total, err := s.FindCases(ctx, models.CaseFilter{}, 0, 2)
			require.NoError(t, err)
			assert.Equal(t, int64(5), total)
			require.Len(t, page, 2)
			assert.Equal(t, uint64(1), page[0].ID)

			page, total, err = s.FindCases(ctx, models.CaseFilter{}, 4, 2)
			require.NoError(t, err)
			assert.Equal(t, int64(5), total)
			require.Len(t, page, 1)
			assert.Equal(t, uint64(5), page[0].ID)

			resolved := true
			page, total, err = s.FindCases(ctx, models.CaseFilter{Resolved: &resolved}, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			assert.Equal(t, uint64(2), page[0].ID)

			_, total, err = s.FindCases(ctx, models.CaseFilter{Advocate: adv1}, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)

			_, total, err = s.FindCases(ctx, models.CaseFilter{Participant: judge}, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)

			_, total, err = s.FindCases(ctx, models.CaseFilter{Judge: adv1}, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(0), total)
		})
	}
}

func TestBadgerStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := databases.OpenBadgerStore(databases.BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, s.InitGenesis(ctx, models.Genesis{Admin: "0xadmin", CaseDurationSeconds: 300, CreatedAt: ts}))
	require.NoError(t, s.Apply(ctx, newCase(1, 1)))
	require.NoError(t, s.Close())

	s, err = databases.OpenBadgerStore(databases.BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	g, err := s.Genesis(ctx)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, models.Address("0xadmin"), g.Admin)

	count, err := s.CaseCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestOpenBadgerStore_RequiresPath(t *testing.T) {
	_, err := databases.OpenBadgerStore(databases.BadgerConfig{})
	assert.EqualError(t, err, "path is required for persistent database")
}
