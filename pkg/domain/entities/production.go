package entities

import (
	"fmt"
	"time"
)

// ProductionStatus is the lifecycle state of a production run
type ProductionStatus string

const (
	Pending    ProductionStatus = "pending"
	InProgress ProductionStatus = "in_progress"
	Completed  ProductionStatus = "completed"
	Cancelled  ProductionStatus = "cancelled"
)

// String method for ProductionStatus
func (s ProductionStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case InProgress:
		return "InProgress"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transition is possible
func (s ProductionStatus) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ParseProductionStatus accepts either the stored or display form of a status
func ParseProductionStatus(value string) (ProductionStatus, error) {
	switch value {
	case "pending", "Pending":
		return Pending, nil
	case "in_progress", "InProgress":
		return InProgress, nil
	case "completed", "Completed":
		return Completed, nil
	case "cancelled", "Cancelled":
		return Cancelled, nil
	default:
		return "", fmt.Errorf("invalid production status: %s", value)
	}
}

var allowedTransitions = map[ProductionStatus][]ProductionStatus{
	Pending:    {InProgress, Cancelled},
	InProgress: {Completed, Cancelled},
}

// Production is a planned production run
type Production struct {
	ID        string                  `json:"id" yaml:"id"`
	Name      string                  `json:"name" yaml:"name"`
	LineItems []ProductionLineRequest `json:"line_items" yaml:"line_items"`
	Status    ProductionStatus        `json:"status" yaml:"status"`
	// Shortfall computed when the status was last decided
	Shortfall []ShortfallEntry `json:"shortfall,omitempty" yaml:"shortfall,omitempty"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
	DueDate   time.Time        `json:"due_date" yaml:"due_date"`
}

// TransitionTo moves the production to the next status if the move is allowed
func (p *Production) TransitionTo(next ProductionStatus) error {
	for _, allowed := range allowedTransitions[p.Status] {
		if allowed == next {
			p.Status = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, next)
}
