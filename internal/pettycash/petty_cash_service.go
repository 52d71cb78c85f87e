package pettycash

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetops/internal/shared/contextutil"
	"fleetops/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=petty_cash_service.go -destination=mock/petty_cash_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateEntryRequest) (EntryResponse, error)
	GetAll(ctx context.Context, companyID string, from, to *time.Time) ([]EntryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EntryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEntryRequest) (EntryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("pettycash.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("pettycash.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateEntryRequest,
) (EntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create petty cash entry requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("spend_type", req.SpendType),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EntryResponse{}, errors.New("invalid company id")
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EntryResponse{}, errors.New("invalid actor id")
	}

	spentAt, err := parseDate(req.SpentAt)
	if err != nil {
		return EntryResponse{}, err
	}

	if req.Amount.Sign() <= 0 {
		return EntryResponse{}, errors.New("amount must be positive")
	}

	deductedFrom, err := s.resolveDeductionTarget(ctx, companyID, req.DeductedFromStaffID)
	if err != nil {
		return EntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	serial, err := s.counter.GetNextValue(ctx, companyID, counter.TypePettyCashSerial)
	if err != nil {
		s.logger.Error("petty cash serial allocation failed", zap.Error(err))
		return EntryResponse{}, err
	}

	entry := &PettyCashEntry{
		ID:                  uuid.New(),
		CompanyID:           companyUUID,
		SerialNumber:        serial,
		RequestedBy:         req.RequestedBy,
		DeductedFromStaffID: deductedFrom,
		SpendType:           req.SpendType,
		Description:         req.Description,
		Amount:              req.Amount,
		SpentAt:             spentAt,
		CreatedBy:           createdByUUID,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		return EntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	return mapToResponse(*entry), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	from, to *time.Time,
) ([]EntryResponse, error) {
	entries, err := s.repo.FindAllByCompany(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(entries), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EntryResponse, error) {
	entry, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EntryResponse{}, err
	}

	return mapToResponse(*entry), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEntryRequest,
) (EntryResponse, error) {
	entry, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EntryResponse{}, err
	}

	spentAt, err := parseDate(req.SpentAt)
	if err != nil {
		return EntryResponse{}, err
	}

	if req.Amount.Sign() <= 0 {
		return EntryResponse{}, errors.New("amount must be positive")
	}

	deductedFrom, err := s.resolveDeductionTarget(ctx, companyID, req.DeductedFromStaffID)
	if err != nil {
		return EntryResponse{}, err
	}

	entry.RequestedBy = req.RequestedBy
	entry.DeductedFromStaffID = deductedFrom
	entry.SpendType = req.SpendType
	entry.Description = req.Description
	entry.Amount = req.Amount
	entry.SpentAt = spentAt

	if err := s.repo.Update(ctx, entry); err != nil {
		return EntryResponse{}, err
	}

	return mapToResponse(*entry), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) resolveDeductionTarget(
	ctx context.Context,
	companyID string,
	staffID *string,
) (*uuid.UUID, error) {
	if staffID == nil || *staffID == "" {
		return nil, nil
	}

	parsed, err := uuid.Parse(*staffID)
	if err != nil {
		return nil, errors.New("invalid deducted_from_staff_id")
	}

	belongs, err := s.repo.StaffBelongsToCompany(ctx, companyID, *staffID)
	if err != nil {
		return nil, err
	}
	if !belongs {
		return nil, errors.New("staff member does not belong to this company")
	}

	return &parsed, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

func mapToResponse(entry PettyCashEntry) EntryResponse {
	resp := EntryResponse{
		ID:           entry.ID.String(),
		CompanyID:    entry.CompanyID.String(),
		SerialNumber: entry.SerialNumber,
		RequestedBy:  entry.RequestedBy,
		SpendType:    entry.SpendType,
		Description:  entry.Description,
		Amount:       entry.Amount.StringFixed(3),
		SpentAt:      entry.SpentAt.Format("2006-01-02"),
	}

	if entry.DeductedFromStaffID != nil {
		v := entry.DeductedFromStaffID.String()
		resp.DeductedFromStaffID = &v
	}

	return resp
}

func mapToListResponse(entries []PettyCashEntry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = mapToResponse(entry)
	}
	return resp
}
