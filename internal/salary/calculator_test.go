package salary_test

import (
	"errors"
	"testing"

	"fleetops/internal/salary"

	"github.com/stretchr/testify/assert"
)

func bikeDriver() salary.Record {
	return salary.Record{
		ID:              "d-1",
		FirstName:       "Ahmed",
		LastName:        "Saleh",
		StaffType:       "driver",
		Vehicle:         salary.VehicleBike,
		MainSalary:      dec("100.000"),
		MainOrder:       30,
		AdditionalOrder: 10,
	}
}

func TestCompute_OrdersSalary(t *testing.T) {
	cfg := testConfigSet()

	got, err := salary.Compute(cfg, bikeDriver())
	assert.NoError(t, err)

	// 100.000 + 30*0.10 + 10*0.10
	assert.True(t, dec("104.000").Equal(got.FinalSalary), "final=%s", got.FinalSalary)
	assert.True(t, dec("4.000").Equal(got.CashPayment), "cash=%s", got.CashPayment)
}

func TestCompute_FixedTierOrders(t *testing.T) {
	cfg := testConfigSet()

	rec := bikeDriver()
	rec.MainOrder = 60
	rec.AdditionalOrder = 0

	got, err := salary.Compute(cfg, rec)
	assert.NoError(t, err)

	// 100.000 + 8.000 flat + 0
	assert.True(t, dec("108.000").Equal(got.FinalSalary), "final=%s", got.FinalSalary)
}

func TestCompute_Deductions(t *testing.T) {
	cfg := testConfigSet()

	rec := bikeDriver()
	rec.TalabatDeduction = dec("5.000")
	rec.CompanyDeduction = dec("2.500")

	got, err := salary.Compute(cfg, rec)
	assert.NoError(t, err)

	assert.True(t, dec("7.500").Equal(got.TotalDeductions))
	assert.True(t, dec("96.500").Equal(got.NetSalary))
	assert.True(t, dec("4.000").Equal(got.CashPayment))
	assert.True(t, dec("92.500").Equal(got.BankTransfer))
}

func TestCompute_Invariants(t *testing.T) {
	cfg := testConfigSet()

	records := []salary.Record{
		bikeDriver(),
		{
			ID: "d-2", Vehicle: salary.VehicleCar, StaffType: "driver",
			MainSalary: dec("250.000"), MainOrder: 80, AdditionalOrder: 120,
			TalabatDeduction: dec("1.250"), CompanyDeduction: dec("0.750"),
			PettyCashDeduction: dec("3.000"),
		},
		{
			ID: "e-1", Vehicle: salary.VehicleBike, StaffType: "employee",
			MainSalary: dec("400.000"),
			CompanyDeduction: dec("10.000"),
		},
	}

	for _, rec := range records {
		got, err := salary.Compute(cfg, rec)
		assert.NoError(t, err, rec.ID)

		assert.True(t, got.NetSalary.Equal(got.FinalSalary.Sub(got.TotalDeductions)), rec.ID)
		assert.True(t, got.CashPayment.Equal(got.FinalSalary.Sub(rec.MainSalary)), rec.ID)
		assert.True(t, got.BankTransfer.Add(got.CashPayment).Equal(got.NetSalary), rec.ID)
	}
}

func TestCompute_Additivity(t *testing.T) {
	cfg := testConfigSet()

	// finalSalary is mainSalary plus the two independent tier lookups, no
	// cross-term, whatever the a/b split
	splits := [][2]int{{40, 0}, {0, 40}, {30, 10}, {20, 20}}
	for _, split := range splits {
		rec := bikeDriver()
		rec.MainOrder = split[0]
		rec.AdditionalOrder = split[1]

		mainPay, err := cfg.SalaryForOrders(rec.MainOrder, rec.Vehicle)
		assert.NoError(t, err)
		addPay, err := cfg.SalaryForOrders(rec.AdditionalOrder, rec.Vehicle)
		assert.NoError(t, err)

		got, err := salary.Compute(cfg, rec)
		assert.NoError(t, err)
		assert.True(t, got.FinalSalary.Equal(rec.MainSalary.Add(mainPay).Add(addPay)),
			"split %v final=%s", split, got.FinalSalary)
	}
}

func TestCompute_SummarySentinel(t *testing.T) {
	cfg := testConfigSet()

	rec := bikeDriver()
	rec.IsSummary = true

	got, err := salary.Compute(cfg, rec)
	assert.NoError(t, err)
	assert.True(t, got.FinalSalary.IsZero())
	assert.True(t, got.NetSalary.IsZero())
	assert.True(t, got.CashPayment.IsZero())
}

func TestCompute_InputNotMutated(t *testing.T) {
	cfg := testConfigSet()

	rec := bikeDriver()
	before := rec

	_, err := salary.Compute(cfg, rec)
	assert.NoError(t, err)
	assert.Equal(t, before, rec)
}

func TestCompute_SalariedWithoutVehicle(t *testing.T) {
	cfg := testConfigSet()

	rec := salary.Record{
		ID: "e-2", StaffType: "employee",
		MainSalary:       dec("400.000"),
		CompanyDeduction: dec("10.000"),
	}

	got, err := salary.Compute(cfg, rec)
	assert.NoError(t, err)
	assert.True(t, dec("400.000").Equal(got.FinalSalary))
	assert.True(t, got.CashPayment.IsZero())
	assert.True(t, dec("390.000").Equal(got.BankTransfer))
}

func TestCompute_OrdersWithoutVehicleFail(t *testing.T) {
	cfg := testConfigSet()

	rec := salary.Record{
		ID: "e-3", StaffType: "employee",
		MainSalary: dec("400.000"),
		MainOrder:  5,
	}

	_, err := salary.Compute(cfg, rec)
	var missingErr *salary.MissingConfigError
	assert.True(t, errors.As(err, &missingErr))
}

func TestCompute_PropagatesResolverErrors(t *testing.T) {
	cfg := testConfigSet()

	rec := bikeDriver()
	rec.Vehicle = "Scooter"

	_, err := salary.Compute(cfg, rec)
	var missingErr *salary.MissingConfigError
	assert.True(t, errors.As(err, &missingErr))
}
