package databases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// MemoryStore keeps the court in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	genesis  *models.Genesis
	cases    []models.Case
	messages map[uint64][]models.Message
	judges   map[models.Address]bool
	events   []models.Event
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make(map[uint64][]models.Message),
		judges:   make(map[models.Address]bool),
	}
}

func (s *MemoryStore) Genesis(_ context.Context) (*models.Genesis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.genesis == nil {
		return nil, nil
	}
	g := *s.genesis
	return &g, nil
}

func (s *MemoryStore) InitGenesis(_ context.Context, g models.Genesis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.genesis != nil {
		return errors.New("genesis already initialized")
	}
	s.genesis = &g
	return nil
}

func (s *MemoryStore) CaseCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.cases)), nil
}

func (s *MemoryStore) FindCase(_ context.Context, id uint64) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == 0 || id > uint64(len(s.cases)) {
		return nil, fmt.Errorf("case %d is not stored", id)
	}
	cs := s.cases[id-1]
	return &cs, nil
}

func (s *MemoryStore) FindCases(_ context.Context, filter models.CaseFilter, skip, limit int) ([]models.Case, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		page  []models.Case
		total int64
	)
	for _, cs := range s.cases {
		if !filter.Matches(cs) {
			continue
		}
		if total >= int64(skip) && len(page) < limit {
			page = append(page, cs)
		}
		total++
	}
	return page, total, nil
}

func (s *MemoryStore) Messages(_ context.Context, caseID uint64) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[caseID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) Message(_ context.Context, caseID, index uint64) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[caseID]
	if index >= uint64(len(msgs)) {
		return nil, fmt.Errorf("message %d of case %d is not stored", index, caseID)
	}
	m := msgs[index]
	return &m, nil
}

func (s *MemoryStore) IsJudge(_ context.Context, a models.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.judges[a], nil
}

func (s *MemoryStore) LastEventSeq(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) == 0 {
		return 0, nil
	}
	return s.events[len(s.events)-1].Seq, nil
}

func (s *MemoryStore) Events(_ context.Context, after uint64, limit int) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// seqs are dense from 1, so after is also the slice offset
	if after >= uint64(len(s.events)) {
		return []models.Event{}, nil
	}
	rest := s.events[after:]
	if limit < len(rest) {
		rest = rest[:limit]
	}
	out := make([]models.Event, len(rest))
	copy(out, rest)
	return out, nil
}

// Apply validates the whole changeset before touching any state
func (s *MemoryStore) Apply(ctx context.Context, cs models.Changeset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := uint64(len(s.cases))
	switch {
	case cs.NewCase && cs.Case.ID != n+1:
		return fmt.Errorf("case %d is not the next case id %d", cs.Case.ID, n+1)
	case !cs.NewCase && (cs.Case.ID == 0 || cs.Case.ID > n):
		return fmt.Errorf("case %d is not stored", cs.Case.ID)
	}
	if m := cs.Message; m != nil && m.Index != uint64(len(s.messages[m.CaseID])) {
		return fmt.Errorf("message index %d of case %d is out of order", m.Index, m.CaseID)
	}
	next := uint64(len(s.events)) + 1
	for i, e := range cs.Events {
		if e.Seq != next+uint64(i) {
			return fmt.Errorf("event seq %d is out of order", e.Seq)
		}
	}

	if cs.NewCase {
		s.cases = append(s.cases, cs.Case)
	} else {
		s.cases[cs.Case.ID-1] = cs.Case
	}
	if m := cs.Message; m != nil {
		s.messages[m.CaseID] = append(s.messages[m.CaseID], *m)
	}
	if !cs.Judge.IsZero() {
		s.judges[cs.Judge] = true
	}
	s.events = append(s.events, cs.Events...)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
