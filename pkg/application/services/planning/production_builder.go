package planning

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// DefaultNamePrefix is used to name productions created without a name
const DefaultNamePrefix = "Production"

// ProductionMetadata carries the caller-supplied fields of a production
type ProductionMetadata struct {
	Name    string
	DueDate time.Time
}

// ProductionOrderBuilder turns a feasibility outcome into a Production
type ProductionOrderBuilder struct {
	now        func() time.Time
	newID      func() string
	namePrefix string
}

// BuilderOption configures a ProductionOrderBuilder
type BuilderOption func(*ProductionOrderBuilder)

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) BuilderOption {
	return func(b *ProductionOrderBuilder) {
		b.now = now
	}
}

// WithIDGenerator overrides the production id generator
func WithIDGenerator(newID func() string) BuilderOption {
	return func(b *ProductionOrderBuilder) {
		b.newID = newID
	}
}

// WithNamePrefix sets the prefix used for generated production names
func WithNamePrefix(prefix string) BuilderOption {
	return func(b *ProductionOrderBuilder) {
		if prefix != "" {
			b.namePrefix = prefix
		}
	}
}

// NewProductionOrderBuilder creates a builder using wall-clock time and random UUIDs
func NewProductionOrderBuilder(opts ...BuilderOption) *ProductionOrderBuilder {
	b := &ProductionOrderBuilder{
		now:        time.Now,
		newID:      uuid.NewString,
		namePrefix: DefaultNamePrefix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates a production that is InProgress when feasible and Pending otherwise.
// The shortfall is recorded on the production so a pending run can be explained later.
func (b *ProductionOrderBuilder) Build(
	lines []entities.ProductionLineRequest,
	shortfall []entities.ShortfallEntry,
	feasible bool,
	meta ProductionMetadata,
) *entities.Production {
	createdAt := b.now()

	status := entities.Pending
	if feasible && len(shortfall) == 0 {
		status = entities.InProgress
	}

	name := meta.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", b.namePrefix, createdAt.Format("2006-01-02 15:04"))
	}

	items := make([]entities.ProductionLineRequest, len(lines))
	copy(items, lines)

	var recorded []entities.ShortfallEntry
	if len(shortfall) > 0 {
		recorded = make([]entities.ShortfallEntry, len(shortfall))
		copy(recorded, shortfall)
	}

	return &entities.Production{
		ID:        b.newID(),
		Name:      name,
		LineItems: items,
		Status:    status,
		Shortfall: recorded,
		CreatedAt: createdAt,
		DueDate:   meta.DueDate,
	}
}
