package inventory

import (
	"sort"

	"github.com/google/uuid"
)

// ProductMovementSummary aggregates a product's ledger activity in a window.
// All fields except NetChange are unsigned magnitudes; NetChange is the
// signed sum of every movement.
type ProductMovementSummary struct {
	ProductID uuid.UUID `json:"product_id"`
	Sold      int64     `json:"sold"`
	Received  int64     `json:"received"`
	Adjusted  int64     `json:"adjusted"` // Corrections, transfers and write-offs
	Returned  int64     `json:"returned"`
	NetChange int64     `json:"net_change"`
}

// SummarizeMovements folds ledger rows into per-product summaries using a
// running accumulator map, returned in deterministic product-ID order.
func SummarizeMovements(movements []StockMovement) []ProductMovementSummary {
	byProduct := make(map[uuid.UUID]*ProductMovementSummary)

	for i := range movements {
		m := &movements[i]
		summary, ok := byProduct[m.ProductID]
		if !ok {
			summary = &ProductMovementSummary{ProductID: m.ProductID}
			byProduct[m.ProductID] = summary
		}

		switch m.Type {
		case MovementTypeSale:
			summary.Sold += m.Magnitude()
		case MovementTypeReceipt:
			summary.Received += m.Magnitude()
		case MovementTypeReturn, MovementTypeRestoration:
			summary.Returned += m.Magnitude()
		default:
			// Adjustments, transfers and write-offs (damage/expired/theft)
			summary.Adjusted += m.Magnitude()
		}
		summary.NetChange += m.Quantity
	}

	result := make([]ProductMovementSummary, 0, len(byProduct))
	for _, summary := range byProduct {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID.String() < result[j].ProductID.String()
	})

	return result
}
