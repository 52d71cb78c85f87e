package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fleetops/internal/events"
	"fleetops/internal/messaging/kafka"
	"fleetops/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const OptionsKeyPrefix = "staff:options:"

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context, companyID string, staffType string) ([]StaffResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]StaffResponse, error)
	GetByID(ctx context.Context, companyID, id string) (StaffResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	UpsertFigure(ctx context.Context, companyID, staffID string, year, month int, req UpsertFigureRequest) (StaffFigureResponse, error)
	GetFigure(ctx context.Context, companyID, staffID string, year, month int) (StaffFigureResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateStaffRequest,
) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create staff requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("staff_type", req.StaffType),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return StaffResponse{}, errors.New("invalid company id")
	}

	if req.StaffType == TypeDriver && req.Vehicle == "" {
		return StaffResponse{}, errors.New("vehicle is required for drivers")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	member := &Staff{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		StaffType:  req.StaffType,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Vehicle:    req.Vehicle,
		Department: req.Department,
		MainSalary: req.MainSalary,
	}

	if err := qtx.Create(ctx, member); err != nil {
		return StaffResponse{}, err
	}

	if s.outbox != nil {
		event := events.StaffCreatedEvent{
			EventType:  "staff_created",
			RequestID:  rid,
			StaffID:    member.ID.String(),
			CompanyID:  companyID,
			StaffType:  member.StaffType,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return StaffResponse{}, err
		}

		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "staff",
			AggregateID:   member.ID.String(),
			EventType:     event.EventType,
			Topic:         events.StaffCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return StaffResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*member), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	staffType string,
) ([]StaffResponse, error) {
	members, err := s.repo.FindAllByCompany(ctx, companyID, staffType)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(members), nil
}

// GetOptions serves the name/id pairs form screens need. Cached in redis
// and deduplicated with singleflight since every form open hits it.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]StaffResponse, error) {
	cacheKey := OptionsKeyPrefix + companyID

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []StaffResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		members, err := s.repo.FindAllByCompany(ctx, companyID, "")
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(members)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, 10*time.Minute).Err()
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]StaffResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (StaffResponse, error) {
	member, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return StaffResponse{}, err
	}

	return mapToResponse(*member), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateStaffRequest,
) (StaffResponse, error) {
	member, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return StaffResponse{}, err
	}

	if member.StaffType == TypeDriver && req.Vehicle == "" {
		return StaffResponse{}, errors.New("vehicle is required for drivers")
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Vehicle = req.Vehicle
	member.Department = req.Department
	member.MainSalary = req.MainSalary

	if err := s.repo.Update(ctx, member); err != nil {
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*member), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, companyID)
	return nil
}

// UpsertFigure is the override sink: the accountant sets or corrects one
// person's order counts and deductions for one period. The report is simply
// re-run against the refreshed rows afterwards.
func (s *service) UpsertFigure(
	ctx context.Context,
	companyID, staffID string,
	year, month int,
	req UpsertFigureRequest,
) (StaffFigureResponse, error) {
	member, err := s.repo.FindByIDAndCompany(ctx, companyID, staffID)
	if err != nil {
		return StaffFigureResponse{}, err
	}

	figure := &StaffFigure{
		ID:               uuid.New(),
		CompanyID:        member.CompanyID,
		StaffID:          member.ID,
		Year:             year,
		Month:            month,
		MainOrder:        req.MainOrder,
		AdditionalOrder:  req.AdditionalOrder,
		TalabatDeduction: req.TalabatDeduction,
		CompanyDeduction: req.CompanyDeduction,
		Remarks:          req.Remarks,
	}

	if err := s.repo.UpsertFigure(ctx, figure); err != nil {
		return StaffFigureResponse{}, err
	}

	return mapFigureToResponse(*figure), nil
}

func (s *service) GetFigure(
	ctx context.Context,
	companyID, staffID string,
	year, month int,
) (StaffFigureResponse, error) {
	figure, err := s.repo.FindFigure(ctx, companyID, staffID, year, month)
	if err != nil {
		return StaffFigureResponse{}, err
	}

	return mapFigureToResponse(*figure), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsKeyPrefix+companyID).Err(); err != nil {
		s.logger.Warn("invalidate staff options cache failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func mapToResponse(member Staff) StaffResponse {
	return StaffResponse{
		ID:         member.ID.String(),
		CompanyID:  member.CompanyID.String(),
		StaffType:  member.StaffType,
		FirstName:  member.FirstName,
		LastName:   member.LastName,
		Vehicle:    member.Vehicle,
		Department: member.Department,
		MainSalary: member.MainSalary.StringFixed(3),
	}
}

func mapToListResponse(members []Staff) []StaffResponse {
	resp := make([]StaffResponse, len(members))
	for i, member := range members {
		resp[i] = mapToResponse(member)
	}
	return resp
}

func mapFigureToResponse(figure StaffFigure) StaffFigureResponse {
	return StaffFigureResponse{
		ID:               figure.ID.String(),
		StaffID:          figure.StaffID.String(),
		Year:             figure.Year,
		Month:            figure.Month,
		MainOrder:        figure.MainOrder,
		AdditionalOrder:  figure.AdditionalOrder,
		TalabatDeduction: figure.TalabatDeduction.StringFixed(3),
		CompanyDeduction: figure.CompanyDeduction.StringFixed(3),
		Remarks:          figure.Remarks,
	}
}
