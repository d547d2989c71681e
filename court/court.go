// Package court implements the case lifecycle: submission, role assignment,
// gated debate messaging and resolution by judge vote or expiry.
//
// Every mutating operation runs under a single lock, checks all of its
// preconditions against committed state, and then hands one Changeset to the
// Store. A rejected operation writes nothing.
package court

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// Court owns the case store and serializes every mutation against it
type Court struct {
	mu      sync.Mutex
	store   Store
	genesis models.Genesis
	clock   func() time.Time
	pub     Publisher
	log     *zap.SugaredLogger
}

// Option configures a Court
type Option func(*Court)

// WithClock replaces time.Now, mostly for tests
func WithClock(clock func() time.Time) Option {
	return func(c *Court) { c.clock = clock }
}

// WithPublisher sets the receiver of committed events
func WithPublisher(p Publisher) Option {
	return func(c *Court) { c.pub = p }
}

// WithLogger sets the logger, zap.S() by default
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Court) { c.log = l }
}

// New opens a court on store. The first call against an empty store records
// genesis; later calls keep the stored admin and case duration.
func New(ctx context.Context, store Store, genesis models.Genesis, opts ...Option) (*Court, error) {
	c := &Court{
		store: store,
		clock: time.Now,
		log:   zap.S(),
	}
	for _, opt := range opts {
		opt(c)
	}

	stored, err := store.Genesis(ctx)
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	if stored != nil {
		if stored.Admin != genesis.Admin || stored.CaseDurationSeconds != genesis.CaseDurationSeconds {
			c.log.Warnw("configured genesis differs from stored genesis, keeping stored values",
				"storedAdmin", stored.Admin,
				"storedCaseDuration", stored.CaseDurationSeconds,
				"configuredAdmin", genesis.Admin,
				"configuredCaseDuration", genesis.CaseDurationSeconds,
			)
		}
		c.genesis = *stored
		return c, nil
	}

	if genesis.Admin.IsZero() {
		return nil, errors.New("genesis admin is required")
	}
	genesis.CreatedAt = c.now()
	if err := store.InitGenesis(ctx, genesis); err != nil {
		return nil, fmt.Errorf("write genesis: %w", err)
	}
	c.log.Infow("court initialized",
		"admin", genesis.Admin,
		"caseDuration", genesis.CaseDurationSeconds,
	)
	c.genesis = genesis
	return c, nil
}

// Admin returns the administrative identity
func (c *Court) Admin() models.Address {
	return c.genesis.Admin
}

// CaseDuration returns the expiry window applied to every case
func (c *Court) CaseDuration() time.Duration {
	return c.genesis.CaseDuration()
}

// Genesis returns the initialization record
func (c *Court) Genesis() models.Genesis {
	return c.genesis
}

// CaseCounter returns the number of cases ever submitted, which is also the highest case id
func (c *Court) CaseCounter(ctx context.Context) (uint64, error) {
	return c.store.CaseCount(ctx)
}

// Events returns up to limit events with a sequence number greater than after
func (c *Court) Events(ctx context.Context, after uint64, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	return c.store.Events(ctx, after, limit)
}

// now has second resolution, like the timestamps the court stores
func (c *Court) now() time.Time {
	return c.clock().UTC().Truncate(time.Second)
}

// loadCase returns the case or ErrNotFound when id is outside 1..caseCounter
func (c *Court) loadCase(ctx context.Context, id uint64) (*models.Case, error) {
	count, err := c.store.CaseCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}
	if id == 0 || id > count {
		return nil, fmt.Errorf("%w: case %d", ErrNotFound, id)
	}
	cs, err := c.store.FindCase(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find case %d: %w", id, err)
	}
	return cs, nil
}

// acquire takes c.mu unless ctx is already done. A request that was
// abandoned while waiting for the lock must not mutate anything.
func (c *Court) acquire(ctx context.Context) error {
	c.mu.Lock()
	if err := ctx.Err(); err != nil {
		c.mu.Unlock()
		return err
	}
	return nil
}

// commit numbers the events, applies the changeset and publishes the events.
// Callers hold c.mu.
func (c *Court) commit(ctx context.Context, cs models.Changeset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq, err := c.store.LastEventSeq(ctx)
	if err != nil {
		return fmt.Errorf("read event sequence: %w", err)
	}
	for i := range cs.Events {
		seq++
		cs.Events[i].Seq = seq
	}
	if err := c.store.Apply(ctx, cs); err != nil {
		return fmt.Errorf("apply changeset for case %d: %w", cs.Case.ID, err)
	}
	if c.pub != nil {
		c.pub.Publish(cs.Events)
	}
	return nil
}
