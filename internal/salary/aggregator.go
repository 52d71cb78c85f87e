package salary

import "github.com/shopspring/decimal"

// GroupTotal is the element-wise sum of breakdowns for one group of records.
// Derived fresh on every aggregation pass, never persisted.
type GroupTotal struct {
	GroupKey string
	Count    int

	FinalSalary        decimal.Decimal
	TalabatDeduction   decimal.Decimal
	CompanyDeduction   decimal.Decimal
	PettyCashDeduction decimal.Decimal
	TotalDeductions    decimal.Decimal
	NetSalary          decimal.Decimal
	CashPayment        decimal.Decimal
	BankTransfer       decimal.Decimal
}

func zeroGroupTotal(key string) GroupTotal {
	return GroupTotal{
		GroupKey:           key,
		FinalSalary:        decimal.Zero,
		TalabatDeduction:   decimal.Zero,
		CompanyDeduction:   decimal.Zero,
		PettyCashDeduction: decimal.Zero,
		TotalDeductions:    decimal.Zero,
		NetSalary:          decimal.Zero,
		CashPayment:        decimal.Zero,
		BankTransfer:       decimal.Zero,
	}
}

func (g GroupTotal) add(rec Record, b Breakdown) GroupTotal {
	g.Count++
	g.FinalSalary = g.FinalSalary.Add(b.FinalSalary)
	g.TalabatDeduction = g.TalabatDeduction.Add(rec.TalabatDeduction)
	g.CompanyDeduction = g.CompanyDeduction.Add(rec.CompanyDeduction)
	g.PettyCashDeduction = g.PettyCashDeduction.Add(rec.PettyCashDeduction)
	g.TotalDeductions = g.TotalDeductions.Add(b.TotalDeductions)
	g.NetSalary = g.NetSalary.Add(b.NetSalary)
	g.CashPayment = g.CashPayment.Add(b.CashPayment)
	g.BankTransfer = g.BankTransfer.Add(b.BankTransfer)
	return g
}

// Aggregate computes per-record breakdowns and sums them per group key.
// Summary sentinel records are skipped. The pass is pure and idempotent:
// the same input always produces the same totals, whatever the record order,
// and the computed breakdown is the single source of truth (group sums are
// never re-derived from raw fields except for the per-source deduction
// columns, which have no derived counterpart).
func Aggregate(cfg ConfigSet, records []Record, keyFn func(Record) string) (map[string]GroupTotal, error) {
	groups := make(map[string]GroupTotal)

	for _, rec := range records {
		if rec.IsSummary {
			continue
		}

		breakdown, err := Compute(cfg, rec)
		if err != nil {
			return nil, err
		}

		key := keyFn(rec)
		group, ok := groups[key]
		if !ok {
			group = zeroGroupTotal(key)
		}
		groups[key] = group.add(rec, breakdown)
	}

	return groups, nil
}

// Totals folds all group rows into the grand-total row. Addition is
// commutative, so iteration order cannot change the result.
func Totals(groups map[string]GroupTotal) GroupTotal {
	total := zeroGroupTotal("total")

	for _, g := range groups {
		total.Count += g.Count
		total.FinalSalary = total.FinalSalary.Add(g.FinalSalary)
		total.TalabatDeduction = total.TalabatDeduction.Add(g.TalabatDeduction)
		total.CompanyDeduction = total.CompanyDeduction.Add(g.CompanyDeduction)
		total.PettyCashDeduction = total.PettyCashDeduction.Add(g.PettyCashDeduction)
		total.TotalDeductions = total.TotalDeductions.Add(g.TotalDeductions)
		total.NetSalary = total.NetSalary.Add(g.NetSalary)
		total.CashPayment = total.CashPayment.Add(g.CashPayment)
		total.BankTransfer = total.BankTransfer.Add(g.BankTransfer)
	}

	return total
}
