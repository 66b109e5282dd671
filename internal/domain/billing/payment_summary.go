package billing

import (
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/shared/valueobject"
)

// paymentEpsilon is the tolerance under which a residual balance snaps to
// zero. Order totals originate from per-unit prices with two decimal places,
// so anything below a cent is rounding noise.
var paymentEpsilon = decimal.NewFromFloat(0.01)

// PaymentSummary is the derived, non-persisted payment state of an order.
// Exactly one of FullyPaid, PartiallyPaid and Pending is true.
type PaymentSummary struct {
	PaidAmount    valueobject.Money `json:"paid_amount"`
	BalanceDue    valueobject.Money `json:"balance_due"`
	FullyPaid     bool              `json:"is_fully_paid"`
	PartiallyPaid bool              `json:"is_partially_paid"`
	Pending       bool              `json:"is_pending"`
}

// CalculatePaymentSummary reconciles an order total against its payment
// transactions. Only settled transactions count; refunds subtract. When no
// settled transaction exists but the stored status says the order is paid,
// the full total is treated as paid (legacy orders predate transaction
// logging). The function is pure and side-effect-free.
func CalculatePaymentSummary(totalAmount decimal.Decimal, storedStatus PaymentStatus, transactions []PaymentTransaction) PaymentSummary {
	paid := decimal.Zero
	for i := range transactions {
		if transactions[i].IsSettled() {
			paid = paid.Add(transactions[i].SignedAmount())
		}
	}

	if paid.IsZero() && storedStatus == PaymentStatusPaid {
		paid = totalAmount
	}

	// Refunds exceeding payments clamp to zero; the transaction log keeps the
	// full picture.
	if paid.IsNegative() {
		paid = decimal.Zero
	}

	balance := totalAmount.Sub(paid)
	if balance.IsNegative() || balance.Abs().LessThan(paymentEpsilon) {
		balance = decimal.Zero
	}

	return classify(paid, balance)
}

// FallbackPaymentSummary derives a degenerate summary from the stored status
// alone, used when the transaction history cannot be fetched. A paid status
// yields a fully-paid summary for the whole total; anything else is fully
// pending.
func FallbackPaymentSummary(totalAmount decimal.Decimal, storedStatus PaymentStatus) PaymentSummary {
	if storedStatus == PaymentStatusPaid {
		return classify(totalAmount, decimal.Zero)
	}
	return classify(decimal.Zero, totalAmount)
}

func classify(paid, balance decimal.Decimal) PaymentSummary {
	summary := PaymentSummary{
		PaidAmount: valueobject.NewMoneyUSD(paid),
		BalanceDue: valueobject.NewMoneyUSD(balance),
	}

	switch {
	case paid.IsPositive() && balance.IsZero():
		summary.FullyPaid = true
	case paid.IsPositive():
		summary.PartiallyPaid = true
	default:
		summary.Pending = true
	}

	return summary
}

// Status maps the summary onto the stored PaymentStatus value
func (s PaymentSummary) Status() PaymentStatus {
	switch {
	case s.FullyPaid:
		return PaymentStatusPaid
	case s.PartiallyPaid:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}
