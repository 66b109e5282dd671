package inventory

import "github.com/medsupply/backend/internal/domain/shared"

// MovementType represents the kind of stock movement recorded in the ledger
type MovementType string

const (
	// MovementTypeSale represents stock sold to a customer
	MovementTypeSale MovementType = "sale"
	// MovementTypeReceipt represents stock received from a supplier
	MovementTypeReceipt MovementType = "receipt"
	// MovementTypeAdjustment represents a manual correction, positive or negative
	MovementTypeAdjustment MovementType = "adjustment"
	// MovementTypeReturn represents stock returned by a customer
	MovementTypeReturn MovementType = "return"
	// MovementTypeTransfer represents stock moved between locations, positive or negative
	MovementTypeTransfer MovementType = "transfer"
	// MovementTypeRestoration represents stock restored from a cancelled order
	MovementTypeRestoration MovementType = "restoration"
	// MovementTypeDamage represents stock written off as damaged
	MovementTypeDamage MovementType = "damage"
	// MovementTypeExpired represents stock written off past its expiry date
	MovementTypeExpired MovementType = "expired"
	// MovementTypeTheft represents stock written off as stolen
	MovementTypeTheft MovementType = "theft"
)

// MovementDirection classifies how a movement type affects stock
type MovementDirection int

const (
	// DirectionOutbound movements always decrease stock
	DirectionOutbound MovementDirection = iota
	// DirectionInbound movements always increase stock
	DirectionInbound
	// DirectionSigned movements carry their own sign (corrections, transfers)
	DirectionSigned
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is one of the closed set
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale,
		MovementTypeReceipt,
		MovementTypeAdjustment,
		MovementTypeReturn,
		MovementTypeTransfer,
		MovementTypeRestoration,
		MovementTypeDamage,
		MovementTypeExpired,
		MovementTypeTheft:
		return true
	}
	return false
}

// Direction returns how this movement type affects stock. The direction is
// intrinsic to the type: callers supply magnitudes for unidirectional kinds
// and the sign is derived here, never trusted from the caller.
func (t MovementType) Direction() MovementDirection {
	switch t {
	case MovementTypeSale, MovementTypeDamage, MovementTypeExpired, MovementTypeTheft:
		return DirectionOutbound
	case MovementTypeReceipt, MovementTypeReturn, MovementTypeRestoration:
		return DirectionInbound
	default:
		return DirectionSigned
	}
}

// IsOutbound returns true for types that always decrease stock
func (t MovementType) IsOutbound() bool {
	return t.Direction() == DirectionOutbound
}

// IsInbound returns true for types that always increase stock
func (t MovementType) IsInbound() bool {
	return t.Direction() == DirectionInbound
}

// SignedQuantity converts a caller-supplied quantity into the signed delta
// applied to stock. Unidirectional types take a positive magnitude and get
// their sign from the type; signed types take a non-zero signed delta as-is.
func (t MovementType) SignedQuantity(quantity int64) (int64, error) {
	if !t.IsValid() {
		return 0, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}

	switch t.Direction() {
	case DirectionOutbound:
		if quantity <= 0 {
			return 0, shared.NewDomainError("INVALID_QUANTITY", "Outbound movement quantity must be a positive magnitude")
		}
		return -quantity, nil
	case DirectionInbound:
		if quantity <= 0 {
			return 0, shared.NewDomainError("INVALID_QUANTITY", "Inbound movement quantity must be a positive magnitude")
		}
		return quantity, nil
	default:
		if quantity == 0 {
			return 0, shared.NewDomainError("INVALID_QUANTITY", "Signed movement quantity cannot be zero")
		}
		return quantity, nil
	}
}

// AllMovementTypes returns the closed set of movement types
func AllMovementTypes() []MovementType {
	return []MovementType{
		MovementTypeSale,
		MovementTypeReceipt,
		MovementTypeAdjustment,
		MovementTypeReturn,
		MovementTypeTransfer,
		MovementTypeRestoration,
		MovementTypeDamage,
		MovementTypeExpired,
		MovementTypeTheft,
	}
}
