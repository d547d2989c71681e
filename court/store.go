package court

import (
	"context"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// Store is the durable state behind a Court. Reads must observe committed
// state only, and Apply must be all-or-nothing.
type Store interface {
	// Genesis returns nil, nil until InitGenesis has been called
	Genesis(ctx context.Context) (*models.Genesis, error)
	InitGenesis(ctx context.Context, g models.Genesis) error

	CaseCount(ctx context.Context) (uint64, error)
	FindCase(ctx context.Context, id uint64) (*models.Case, error)
	// FindCases returns one page of matching cases in caseId order and the total match count
	FindCases(ctx context.Context, filter models.CaseFilter, skip, limit int) ([]models.Case, int64, error)

	Messages(ctx context.Context, caseID uint64) ([]models.Message, error)
	Message(ctx context.Context, caseID, index uint64) (*models.Message, error)

	IsJudge(ctx context.Context, a models.Address) (bool, error)

	LastEventSeq(ctx context.Context) (uint64, error)
	Events(ctx context.Context, after uint64, limit int) ([]models.Event, error)

	Apply(ctx context.Context, cs models.Changeset) error
	Close() error
}

// Publisher receives committed events. Publish must not block.
type Publisher interface {
	Publish(events []models.Event)
}
