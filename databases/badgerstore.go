package databases

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/logging"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// Key layout. Ids are zero padded so lexical key order is numeric order.
const (
	genesisBadgerKey = "genesis"
	caseCountKey     = "meta/caseCount"
	eventSeqKey      = "meta/eventSeq"
	casePrefix       = "case/"
	messagePrefix    = "msg/"
	judgePrefix      = "judge/"
	eventPrefix      = "event/"
)

func caseKey(id uint64) []byte { return []byte(fmt.Sprintf("%s%020d", casePrefix, id)) }

func messageCaseKey(caseID uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d/", messagePrefix, caseID))
}

func messageKey(caseID, index uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d/%010d", messagePrefix, caseID, index))
}

func judgeKey(a models.Address) []byte { return []byte(judgePrefix + a.String()) }

func eventKey(seq uint64) []byte { return []byte(fmt.Sprintf("%s%020d", eventPrefix, seq)) }

// BadgerConfig configures the embedded store
type BadgerConfig struct {
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     *zap.SugaredLogger
}

// BadgerStore keeps the court in an embedded badger database. Every Apply is
// one read-write transaction.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens or creates the database described by cfg
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(logging.NewBadgerLogger(cfg.Logger))
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func getJSON(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, b)
}

func getCounter(txn *badger.Txn, key string) (uint64, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("counter %s has %d bytes", key, len(val))
		}
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}

func setCounter(txn *badger.Txn, key string, n uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return txn.Set([]byte(key), b[:])
}

func (s *BadgerStore) Genesis(_ context.Context) (*models.Genesis, error) {
	var g models.Genesis
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(genesisBadgerKey), &g)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *BadgerStore) InitGenesis(_ context.Context, g models.Genesis) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(genesisBadgerKey))
		if err == nil {
			return errors.New("genesis already initialized")
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setJSON(txn, []byte(genesisBadgerKey), g)
	})
}

func (s *BadgerStore) CaseCount(_ context.Context) (uint64, error) {
	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = getCounter(txn, caseCountKey)
		return err
	})
	return n, err
}

func (s *BadgerStore) FindCase(_ context.Context, id uint64) (*models.Case, error) {
	var cs models.Case
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, caseKey(id), &cs)
	})
	if err != nil {
		return nil, fmt.Errorf("case %d: %w", id, err)
	}
	return &cs, nil
}

func (s *BadgerStore) FindCases(_ context.Context, filter models.CaseFilter, skip, limit int) ([]models.Case, int64, error) {
	var (
		page  []models.Case
		total int64
	)
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(casePrefix)
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: prefix})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var cs models.Case
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &cs) }); err != nil {
				return err
			}
			if !filter.Matches(cs) {
				continue
			}
			if total >= int64(skip) && len(page) < limit {
				page = append(page, cs)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

func (s *BadgerStore) Messages(_ context.Context, caseID uint64) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := messageCaseKey(caseID)
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: prefix})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var m models.Message
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &m) }); err != nil {
				return err
			}
			msgs = append(msgs, m)
		}
		return nil
	})
	return msgs, err
}

func (s *BadgerStore) Message(_ context.Context, caseID, index uint64) (*models.Message, error) {
	var m models.Message
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, messageKey(caseID, index), &m)
	})
	if err != nil {
		return nil, fmt.Errorf("message %d of case %d: %w", index, caseID, err)
	}
	return &m, nil
}

func (s *BadgerStore) IsJudge(_ context.Context, a models.Address) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(judgeKey(a))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *BadgerStore) LastEventSeq(_ context.Context) (uint64, error) {
	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = getCounter(txn, eventSeqKey)
		return err
	})
	return n, err
}

func (s *BadgerStore) Events(_ context.Context, after uint64, limit int) ([]models.Event, error) {
	events := []models.Event{}
	// nothing can follow the last representable seq, and after+1 would wrap to 0
	if after == math.MaxUint64 {
		return events, nil
	}
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(eventPrefix)
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: limit, Prefix: prefix})
		defer it.Close()

		for it.Seek(eventKey(after + 1)); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			var e models.Event
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
				return err
			}
			events = append(events, e)
		}
		return nil
	})
	return events, err
}

// Apply checks the changeset against the stored counters and writes it in one
// transaction. Any error discards the whole transaction.
func (s *BadgerStore) Apply(ctx context.Context, cs models.Changeset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		count, err := getCounter(txn, caseCountKey)
		if err != nil {
			return err
		}
		switch {
		case cs.NewCase && cs.Case.ID != count+1:
			return fmt.Errorf("case %d is not the next case id %d", cs.Case.ID, count+1)
		case !cs.NewCase && (cs.Case.ID == 0 || cs.Case.ID > count):
			return fmt.Errorf("case %d is not stored", cs.Case.ID)
		}
		if err := setJSON(txn, caseKey(cs.Case.ID), cs.Case); err != nil {
			return err
		}
		if cs.NewCase {
			if err := setCounter(txn, caseCountKey, cs.Case.ID); err != nil {
				return err
			}
		}

		if m := cs.Message; m != nil {
			if _, err := txn.Get(messageKey(m.CaseID, m.Index)); err == nil {
				return fmt.Errorf("message %d of case %d already exists", m.Index, m.CaseID)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := setJSON(txn, messageKey(m.CaseID, m.Index), m); err != nil {
				return err
			}
		}

		if !cs.Judge.IsZero() {
			if err := txn.Set(judgeKey(cs.Judge), []byte{1}); err != nil {
				return err
			}
		}

		seq, err := getCounter(txn, eventSeqKey)
		if err != nil {
			return err
		}
		for _, e := range cs.Events {
			if e.Seq != seq+1 {
				return fmt.Errorf("event seq %d is out of order", e.Seq)
			}
			seq = e.Seq
			if err := setJSON(txn, eventKey(e.Seq), e); err != nil {
				return err
			}
		}
		return setCounter(txn, eventSeqKey, seq)
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
