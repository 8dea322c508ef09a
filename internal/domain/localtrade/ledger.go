package localtrade

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryKind is the kind of event behind a ledger entry
type LedgerEntryKind string

const (
	LedgerEntryInvoice LedgerEntryKind = "INVOICE"
	LedgerEntryPayment LedgerEntryKind = "PAYMENT"
	LedgerEntryReturn  LedgerEntryKind = "RETURN_MARGIN"
)

// LedgerEntry is one row of a party's chronological timeline. Delta is
// signed: positive increases the party's debt toward the business, negative
// reduces it. Balance is the running balance after applying the entry.
type LedgerEntry struct {
	Kind        LedgerEntryKind `json:"kind"`
	ReferenceID uuid.UUID       `json:"reference_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	DeltaEgp    decimal.Decimal `json:"delta_egp"`
	BalanceEgp  decimal.Decimal `json:"balance_egp"`

	createdAt time.Time
}

// Ledger is the computed position of one party: the opening balance, the
// chronological entries, and the closing balance. Balances are always
// recomputed from the full event history, never read from a stored field.
type Ledger struct {
	PartyID           uuid.UUID       `json:"party_id"`
	OpeningBalanceEgp decimal.Decimal `json:"opening_balance_egp"`
	Entries           []LedgerEntry   `json:"entries"`
	CurrentBalanceEgp decimal.Decimal `json:"current_balance_egp"`
}

// ComputeLedger builds a party's running balance from its full history.
// The opening balance is signed by the party's opening balance type (debit
// positive, credit negative). Issued invoices add debt, payments subtract,
// resolved return margins subtract; pending return cases contribute nothing.
// Entries are applied in (date, createdAt, id) order so same-day events are
// stable regardless of storage insertion order.
func ComputeLedger(party *Party, invoices []*Invoice, payments []*PartyPayment, returns []*ReturnCase) *Ledger {
	entries := make([]LedgerEntry, 0, len(invoices)+len(payments)+len(returns))

	for _, inv := range invoices {
		if inv.PartyID != party.ID || !inv.AffectsBalance() {
			continue
		}
		entries = append(entries, LedgerEntry{
			Kind:        LedgerEntryInvoice,
			ReferenceID: inv.ID,
			Date:        inv.IssueDate,
			Description: "Invoice " + inv.Number,
			DeltaEgp:    inv.TotalEgp,
			createdAt:   inv.CreatedAt,
		})
	}
	for _, p := range payments {
		if p.PartyID != party.ID {
			continue
		}
		entries = append(entries, LedgerEntry{
			Kind:        LedgerEntryPayment,
			ReferenceID: p.ID,
			Date:        p.PaidAt,
			Description: "Payment (" + string(p.Method) + ")",
			DeltaEgp:    p.AmountEgp.Neg(),
			createdAt:   p.CreatedAt,
		})
	}
	for _, r := range returns {
		if r.PartyID != party.ID || !r.IsResolved() || r.ResolvedAt == nil {
			continue
		}
		entries = append(entries, LedgerEntry{
			Kind:        LedgerEntryReturn,
			ReferenceID: r.ID,
			Date:        *r.ResolvedAt,
			Description: "Return margin",
			DeltaEgp:    r.MarginEgp.Neg(),
			createdAt:   r.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if !entries[i].createdAt.Equal(entries[j].createdAt) {
			return entries[i].createdAt.Before(entries[j].createdAt)
		}
		return entries[i].ReferenceID.String() < entries[j].ReferenceID.String()
	})

	opening := party.SignedOpeningBalance()
	balance := opening
	for i := range entries {
		balance = balance.Add(entries[i].DeltaEgp)
		entries[i].BalanceEgp = balance
	}

	return &Ledger{
		PartyID:           party.ID,
		OpeningBalanceEgp: opening,
		Entries:           entries,
		CurrentBalanceEgp: balance,
	}
}
