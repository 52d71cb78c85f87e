package salaryconfig_test

import (
	"context"
	"database/sql"
	"testing"

	"fleetops/internal/salary"
	"fleetops/internal/salaryconfig"
	salaryconfigerrors "fleetops/internal/salaryconfig/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeConfigRepository struct {
	withTxFn             func(tx *sql.Tx) salaryconfig.Repository
	createFn             func(ctx context.Context, config *salaryconfig.SalaryConfig) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]salaryconfig.SalaryConfig, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID string, id string) (*salaryconfig.SalaryConfig, error)
	findByVehicleFn      func(ctx context.Context, companyID string, vehicleType string) (*salaryconfig.SalaryConfig, error)
	replaceRulesFn       func(ctx context.Context, configID string, rules []salaryconfig.SalaryRule) error
	deleteFn             func(ctx context.Context, companyID string, id string) error
}

func (f *fakeConfigRepository) WithTx(tx *sql.Tx) salaryconfig.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeConfigRepository) Create(ctx context.Context, config *salaryconfig.SalaryConfig) error {
	if f.createFn != nil {
		return f.createFn(ctx, config)
	}
	return nil
}

func (f *fakeConfigRepository) FindAllByCompany(ctx context.Context, companyID string) ([]salaryconfig.SalaryConfig, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeConfigRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*salaryconfig.SalaryConfig, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return &salaryconfig.SalaryConfig{}, nil
}

func (f *fakeConfigRepository) FindByVehicleAndCompany(ctx context.Context, companyID string, vehicleType string) (*salaryconfig.SalaryConfig, error) {
	if f.findByVehicleFn != nil {
		return f.findByVehicleFn(ctx, companyID, vehicleType)
	}
	return &salaryconfig.SalaryConfig{}, nil
}

func (f *fakeConfigRepository) ReplaceRules(ctx context.Context, configID string, rules []salaryconfig.SalaryRule) error {
	if f.replaceRulesFn != nil {
		return f.replaceRulesFn(ctx, configID, rules)
	}
	return nil
}

func (f *fakeConfigRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func intPtr(v int) *int { return &v }

func validBikeRules() []salaryconfig.SalaryRuleInput {
	return []salaryconfig.SalaryRuleInput{
		{MinOrders: 0, MaxOrders: intPtr(50), Multiplier: decPtr("0.10")},
		{MinOrders: 51, FixedAmount: decPtr("8.000")},
	}
}

func setupConfigServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeConfigRepository, salaryconfig.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeConfigRepository{}
	svc := salaryconfig.NewService(db, repo)

	return db, sqlMock, repo, svc
}

func TestSalaryConfigService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupConfigServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var created *salaryconfig.SalaryConfig
		repo.createFn = func(ctx context.Context, config *salaryconfig.SalaryConfig) error {
			created = config
			return nil
		}

		resp, err := svc.Create(ctx, companyID, salaryconfig.CreateSalaryConfigRequest{
			VehicleType: salary.VehicleBike,
			Rules:       validBikeRules(),
		})

		assert.NoError(t, err)
		assert.Equal(t, salary.VehicleBike, resp.VehicleType)
		assert.Len(t, resp.Rules, 2)
		assert.NotNil(t, created)
		assert.Equal(t, companyID, created.CompanyID.String())
	})

	t.Run("invalid company id", func(t *testing.T) {
		db, _, _, svc := setupConfigServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, "not-a-uuid", salaryconfig.CreateSalaryConfigRequest{
			VehicleType: salary.VehicleBike,
			Rules:       validBikeRules(),
		})

		assert.Error(t, err)
	})

	t.Run("rule with both multiplier and fixed amount", func(t *testing.T) {
		db, _, _, svc := setupConfigServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, companyID, salaryconfig.CreateSalaryConfigRequest{
			VehicleType: salary.VehicleBike,
			Rules: []salaryconfig.SalaryRuleInput{
				{MinOrders: 0, Multiplier: decPtr("0.10"), FixedAmount: decPtr("8.000")},
			},
		})

		assert.ErrorIs(t, err, salaryconfigerrors.ErrRuleNotExclusive)
	})

	t.Run("rules with a gap", func(t *testing.T) {
		db, _, _, svc := setupConfigServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, companyID, salaryconfig.CreateSalaryConfigRequest{
			VehicleType: salary.VehicleBike,
			Rules: []salaryconfig.SalaryRuleInput{
				{MinOrders: 0, MaxOrders: intPtr(50), Multiplier: decPtr("0.10")},
				{MinOrders: 100, FixedAmount: decPtr("8.000")},
			},
		})

		assert.ErrorIs(t, err, salaryconfigerrors.ErrRulesNotContiguous)
	})

	t.Run("rules not starting at zero", func(t *testing.T) {
		db, _, _, svc := setupConfigServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, companyID, salaryconfig.CreateSalaryConfigRequest{
			VehicleType: salary.VehicleBike,
			Rules: []salaryconfig.SalaryRuleInput{
				{MinOrders: 10, FixedAmount: decPtr("8.000")},
			},
		})

		assert.ErrorIs(t, err, salaryconfigerrors.ErrRulesNotContiguous)
	})

	t.Run("bounded top rule", func(t *testing.T) {
		db, _, _, svc := setupConfigServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, companyID, salaryconfig.CreateSalaryConfigRequest{
			VehicleType: salary.VehicleBike,
			Rules: []salaryconfig.SalaryRuleInput{
				{MinOrders: 0, MaxOrders: intPtr(50), Multiplier: decPtr("0.10")},
			},
		})

		assert.ErrorIs(t, err, salaryconfigerrors.ErrRulesNotTerminated)
	})
}

func TestSalaryConfigService_LoadConfigSet(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	db, _, repo, svc := setupConfigServiceTest(t)
	defer db.Close()

	configID := uuid.New()
	repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]salaryconfig.SalaryConfig, error) {
		assert.Equal(t, companyID, cid)
		return []salaryconfig.SalaryConfig{
			{
				ID:          configID,
				VehicleType: salary.VehicleBike,
				Rules: []salaryconfig.SalaryRule{
					{ConfigID: configID, MinOrders: 0, MaxOrders: intPtr(50), Multiplier: decPtr("0.10")},
					{ConfigID: configID, MinOrders: 51, FixedAmount: decPtr("8.000")},
				},
			},
		}, nil
	}

	set, err := svc.LoadConfigSet(ctx, companyID)
	assert.NoError(t, err)

	// Multiplier tier resolves per order, unbounded fixed tier flat
	got, err := set.SalaryForOrders(30, salary.VehicleBike)
	assert.NoError(t, err)
	assert.True(t, dec("3.000").Equal(got), "got %s", got)

	got, err = set.SalaryForOrders(500, salary.VehicleBike)
	assert.NoError(t, err)
	assert.True(t, dec("8.000").Equal(got), "got %s", got)
}
