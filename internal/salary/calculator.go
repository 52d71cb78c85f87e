package salary

import "github.com/shopspring/decimal"

// Record is the fully resolved input for one driver or employee in one
// period: the base entity merged with the period's order counts and the
// deduction sums from every source. Missing numeric fields are coerced to
// zero where the record is assembled, never here.
type Record struct {
	ID              string
	FirstName       string
	LastName        string
	StaffType       string
	Vehicle         string
	Department      string
	MainSalary      decimal.Decimal
	MainOrder       int
	AdditionalOrder int

	TalabatDeduction   decimal.Decimal
	CompanyDeduction   decimal.Decimal
	PettyCashDeduction decimal.Decimal

	Remarks string

	// IsSummary marks a pre-built sum row fed in by a caller. The aggregator
	// skips it; Compute on it yields all zeros.
	IsSummary bool
}

// Breakdown is the derived pay figures for one record.
//
//	FinalSalary  = MainSalary + orders pay (main) + orders pay (additional)
//	NetSalary    = FinalSalary - TotalDeductions
//	CashPayment  = FinalSalary - MainSalary (order-derived pay goes out in cash)
//	BankTransfer = NetSalary - CashPayment (base salary net of deductions)
type Breakdown struct {
	FinalSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	CashPayment     decimal.Decimal
	BankTransfer    decimal.Decimal
}

// Compute derives the pay breakdown for one record. The record is never
// mutated; the two order buckets are rated independently, so pay is additive
// across the split but not required to be linear across tier boundaries.
func Compute(cfg ConfigSet, rec Record) (Breakdown, error) {
	if rec.IsSummary {
		return Breakdown{
			FinalSalary:     decimal.Zero,
			TotalDeductions: decimal.Zero,
			NetSalary:       decimal.Zero,
			CashPayment:     decimal.Zero,
			BankTransfer:    decimal.Zero,
		}, nil
	}

	// Salaried staff carry no vehicle and earn nothing per order. Orders on
	// a vehicle-less record still resolve, so bad data fails loudly.
	mainOrderPay := decimal.Zero
	additionalOrderPay := decimal.Zero
	if rec.Vehicle != "" || rec.MainOrder > 0 || rec.AdditionalOrder > 0 {
		var err error
		mainOrderPay, err = cfg.SalaryForOrders(rec.MainOrder, rec.Vehicle)
		if err != nil {
			return Breakdown{}, err
		}

		additionalOrderPay, err = cfg.SalaryForOrders(rec.AdditionalOrder, rec.Vehicle)
		if err != nil {
			return Breakdown{}, err
		}
	}

	finalSalary := rec.MainSalary.Add(mainOrderPay).Add(additionalOrderPay)
	totalDeductions := rec.TalabatDeduction.
		Add(rec.CompanyDeduction).
		Add(rec.PettyCashDeduction)
	netSalary := finalSalary.Sub(totalDeductions)
	cashPayment := finalSalary.Sub(rec.MainSalary)

	return Breakdown{
		FinalSalary:     finalSalary,
		TotalDeductions: totalDeductions,
		NetSalary:       netSalary,
		CashPayment:     cashPayment,
		BankTransfer:    netSalary.Sub(cashPayment),
	}, nil
}
