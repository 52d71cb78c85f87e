package salaryconfig

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"fleetops/internal/salary"
	salaryconfigerrors "fleetops/internal/salaryconfig/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=salary_config_service.go -destination=mock/salary_config_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryConfigRequest) (SalaryConfigResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryConfigResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryConfigResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryConfigRequest) (SalaryConfigResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	LoadConfigSet(ctx context.Context, companyID string) (salary.ConfigSet, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryConfigRequest,
) (SalaryConfigResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryConfigResponse{}, errors.New("invalid company id")
	}

	if err := validateRules(req.Rules); err != nil {
		return SalaryConfigResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	configID := uuid.New()
	config := &SalaryConfig{
		ID:          configID,
		CompanyID:   companyUUID,
		VehicleType: req.VehicleType,
		Rules:       mapRuleInputs(configID, req.Rules),
	}

	if err := qtx.Create(ctx, config); err != nil {
		return SalaryConfigResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryConfigResponse{}, err
	}

	return mapToResponse(*config), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]SalaryConfigResponse, error) {
	configs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(configs), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (SalaryConfigResponse, error) {
	config, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryConfigResponse{}, err
	}

	return mapToResponse(*config), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSalaryConfigRequest,
) (SalaryConfigResponse, error) {
	if err := validateRules(req.Rules); err != nil {
		return SalaryConfigResponse{}, err
	}

	config, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryConfigResponse{}, err
	}

	rules := mapRuleInputs(config.ID, req.Rules)
	if err := s.repo.ReplaceRules(ctx, id, rules); err != nil {
		return SalaryConfigResponse{}, err
	}

	config.Rules = rules
	return mapToResponse(*config), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, companyID, id)
}

// LoadConfigSet resolves the stored rate tables into the read-only config
// the calculation core consumes. Loaded once per reporting pass.
func (s *service) LoadConfigSet(ctx context.Context, companyID string) (salary.ConfigSet, error) {
	configs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	set := make(salary.ConfigSet, len(configs))
	for _, config := range configs {
		tiers := make([]salary.RateTier, 0, len(config.Rules))
		for _, rule := range config.Rules {
			tier := salary.RateTier{
				MinOrders:   rule.MinOrders,
				MaxOrders:   salary.UnboundedOrders,
				Multiplier:  rule.Multiplier,
				FixedAmount: rule.FixedAmount,
			}
			if rule.MaxOrders != nil {
				tier.MaxOrders = *rule.MaxOrders
			}
			tiers = append(tiers, tier)
		}
		set[config.VehicleType] = salary.Config{
			VehicleType: config.VehicleType,
			Tiers:       tiers,
		}
	}

	return set, nil
}

// validateRules enforces the partition invariant: sorted by min_orders the
// rules start at 0, are contiguous with inclusive bounds, and only the last
// one is unbounded. Each rule sets exactly one pay rule.
func validateRules(inputs []SalaryRuleInput) error {
	if len(inputs) == 0 {
		return salaryconfigerrors.ErrRulesNotContiguous
	}

	rules := make([]SalaryRuleInput, len(inputs))
	copy(rules, inputs)
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].MinOrders < rules[j].MinOrders
	})

	for i, rule := range rules {
		hasMultiplier := rule.Multiplier != nil
		hasFixed := rule.FixedAmount != nil
		if hasMultiplier == hasFixed {
			return salaryconfigerrors.ErrRuleNotExclusive
		}

		if i == 0 {
			if rule.MinOrders != 0 {
				return salaryconfigerrors.ErrRulesNotContiguous
			}
		} else {
			prev := rules[i-1]
			if prev.MaxOrders == nil {
				// An unbounded rule below the top overlaps everything above it
				return salaryconfigerrors.ErrRulesNotContiguous
			}
			if rule.MinOrders != *prev.MaxOrders+1 {
				return salaryconfigerrors.ErrRulesNotContiguous
			}
		}

		if rule.MaxOrders != nil && *rule.MaxOrders < rule.MinOrders {
			return salaryconfigerrors.ErrRulesNotContiguous
		}
	}

	if rules[len(rules)-1].MaxOrders != nil {
		return salaryconfigerrors.ErrRulesNotTerminated
	}

	return nil
}

func mapRuleInputs(configID uuid.UUID, inputs []SalaryRuleInput) []SalaryRule {
	rules := make([]SalaryRule, len(inputs))
	for i, input := range inputs {
		rules[i] = SalaryRule{
			ID:          uuid.New(),
			ConfigID:    configID,
			MinOrders:   input.MinOrders,
			MaxOrders:   input.MaxOrders,
			Multiplier:  input.Multiplier,
			FixedAmount: input.FixedAmount,
		}
	}
	return rules
}

func mapToResponse(config SalaryConfig) SalaryConfigResponse {
	rules := make([]SalaryRuleResponse, len(config.Rules))
	for i, rule := range config.Rules {
		resp := SalaryRuleResponse{
			ID:        rule.ID.String(),
			MinOrders: rule.MinOrders,
			MaxOrders: rule.MaxOrders,
		}
		if rule.Multiplier != nil {
			v := rule.Multiplier.StringFixed(3)
			resp.Multiplier = &v
		}
		if rule.FixedAmount != nil {
			v := rule.FixedAmount.StringFixed(3)
			resp.FixedAmount = &v
		}
		rules[i] = resp
	}

	return SalaryConfigResponse{
		ID:          config.ID.String(),
		CompanyID:   config.CompanyID.String(),
		VehicleType: config.VehicleType,
		Rules:       rules,
	}
}

func mapToListResponse(configs []SalaryConfig) []SalaryConfigResponse {
	resp := make([]SalaryConfigResponse, len(configs))
	for i, config := range configs {
		resp[i] = mapToResponse(config)
	}
	return resp
}
