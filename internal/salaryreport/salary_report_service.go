package salaryreport

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"fleetops/internal/events"
	"fleetops/internal/messaging/kafka"
	"fleetops/internal/salary"
	"fleetops/internal/shared/contextutil"
	"fleetops/internal/staff"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	MonthlyKeyPrefix = "salaryreport:monthly:"
	monthlyCacheTTL  = 5 * time.Minute
)

// Narrow views over the sibling packages. The report only reads; keeping
// the surface small keeps the fakes small.
type StaffSource interface {
	FindAllByCompany(ctx context.Context, companyID string, staffType string) ([]staff.Staff, error)
	FindFiguresForPeriod(ctx context.Context, companyID string, year, month int) ([]staff.StaffFigure, error)
}

type DeductionSource interface {
	SumByStaffBetween(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

type ConfigSource interface {
	LoadConfigSet(ctx context.Context, companyID string) (salary.ConfigSet, error)
}

//go:generate mockgen -source=salary_report_service.go -destination=mock/salary_report_service_mock.go -package=mock
type Service interface {
	GetMonthly(ctx context.Context, companyID string, year, month int, q ReportQuery) (MonthlyReportResponse, error)
	GetYearly(ctx context.Context, companyID string, year int) (YearlyReportResponse, error)

	CreateExport(ctx context.Context, companyID, actorID string, req CreateExportRequest) (ExportResponse, error)
	GetExport(ctx context.Context, companyID, id string) (ExportResponse, error)
	ListExports(ctx context.Context, companyID string) ([]ExportResponse, error)
	ProcessExport(ctx context.Context, companyID, exportID string) error
}

type service struct {
	db        *sql.DB
	staffSrc  StaffSource
	deduction DeductionSource
	configSrc ConfigSource
	exports   ExportRepository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	exportDir string
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	staffSrc StaffSource,
	deduction DeductionSource,
	configSrc ConfigSource,
	exports ExportRepository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	exportDir string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salaryreport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryreport.service")
	}
	if exportDir == "" {
		exportDir = "exports"
	}
	return &service{
		db:        db,
		staffSrc:  staffSrc,
		deduction: deduction,
		configSrc: configSrc,
		exports:   exports,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		exportDir: exportDir,
		logger:    l,
	}
}

func monthlyCacheKey(companyID string, year, month int, q ReportQuery) string {
	return fmt.Sprintf("%s%s:%04d-%02d:%s:%s", MonthlyKeyPrefix, companyID, year, month, q.GroupBy, q.StaffType)
}

func (q ReportQuery) normalized() ReportQuery {
	if q.GroupBy == "" {
		q.GroupBy = GroupByStaffType
	}
	return q
}

// GetMonthly assembles the full salary sheet for one period: per-person
// rows, per-group totals and the grand total. A rate table gap or a
// missing vehicle config aborts the whole report rather than zeroing the
// affected rows.
func (s *service) GetMonthly(ctx context.Context, companyID string, year, month int, q ReportQuery) (MonthlyReportResponse, error) {
	q = q.normalized()
	cacheKey := monthlyCacheKey(companyID, year, month, q)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp MonthlyReportResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildMonthly(ctx, companyID, year, month, q)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, monthlyCacheTTL).Err()
			}
		}

		return resp, nil
	})
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	return v.(MonthlyReportResponse), nil
}

func groupKeyFn(groupBy string) func(salary.Record) string {
	switch groupBy {
	case GroupByVehicle:
		return func(r salary.Record) string {
			if r.Vehicle == "" {
				return "unassigned"
			}
			return r.Vehicle
		}
	case GroupByDepartment:
		return func(r salary.Record) string {
			if r.Department == "" {
				return "unassigned"
			}
			return r.Department
		}
	default:
		return func(r salary.Record) string { return r.StaffType }
	}
}

func (s *service) buildMonthly(ctx context.Context, companyID string, year, month int, q ReportQuery) (MonthlyReportResponse, error) {
	q = q.normalized()
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("building monthly salary report",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("group_by", q.GroupBy),
	)

	cfg, err := s.configSrc.LoadConfigSet(ctx, companyID)
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	records, err := s.buildRecords(ctx, companyID, year, month, q.StaffType)
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	rows := make([]ReportRow, 0, len(records))
	for _, rec := range records {
		breakdown, err := salary.Compute(cfg, rec)
		if err != nil {
			return MonthlyReportResponse{}, err
		}
		rows = append(rows, mapRow(rec, breakdown))
	}

	groups, err := salary.Aggregate(cfg, records, groupKeyFn(q.GroupBy))
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	var order []string
	if q.GroupBy == GroupByStaffType {
		order = []string{staff.TypeDriver, staff.TypeEmployee}
	} else {
		for key := range groups {
			order = append(order, key)
		}
		sort.Strings(order)
	}

	groupRows := make([]TotalRow, 0, len(groups))
	for _, key := range order {
		if g, ok := groups[key]; ok {
			groupRows = append(groupRows, mapTotal(g))
		}
	}

	return MonthlyReportResponse{
		Year:        year,
		Month:       month,
		GroupBy:     q.GroupBy,
		Rows:        rows,
		GroupTotals: groupRows,
		GrandTotal:  mapTotal(salary.Totals(groups)),
	}, nil
}

// buildRecords merges the three inputs for the period: the staff roster,
// the per-period figures and the recoverable petty cash sums. Staff with no
// figure row get zero orders and zero deductions.
func (s *service) buildRecords(ctx context.Context, companyID string, year, month int, staffType string) ([]salary.Record, error) {
	members, err := s.staffSrc.FindAllByCompany(ctx, companyID, staffType)
	if err != nil {
		return nil, err
	}

	figures, err := s.staffSrc.FindFiguresForPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	figureByStaff := make(map[string]staff.StaffFigure, len(figures))
	for _, f := range figures {
		figureByStaff[f.StaffID.String()] = f
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	pettyCash, err := s.deduction.SumByStaffBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	records := make([]salary.Record, 0, len(members))
	for _, m := range members {
		rec := salary.Record{
			ID:                 m.ID.String(),
			FirstName:          m.FirstName,
			LastName:           m.LastName,
			StaffType:          m.StaffType,
			Vehicle:            m.Vehicle,
			Department:         m.Department,
			MainSalary:         m.MainSalary,
			TalabatDeduction:   decimal.Zero,
			CompanyDeduction:   decimal.Zero,
			PettyCashDeduction: decimal.Zero,
		}

		if f, ok := figureByStaff[rec.ID]; ok {
			rec.MainOrder = f.MainOrder
			rec.AdditionalOrder = f.AdditionalOrder
			rec.TalabatDeduction = f.TalabatDeduction
			rec.CompanyDeduction = f.CompanyDeduction
			rec.Remarks = f.Remarks
		}
		if sum, ok := pettyCash[rec.ID]; ok {
			rec.PettyCashDeduction = sum
		}

		records = append(records, rec)
	}

	return records, nil
}

// GetYearly folds twelve monthly grand totals into one sheet. Months whose
// rate tables fail to resolve fail the year, same as the monthly view.
func (s *service) GetYearly(ctx context.Context, companyID string, year int) (YearlyReportResponse, error) {
	months := make([]MonthSummary, 0, 12)
	grand := salary.GroupTotal{
		GroupKey:           "total",
		FinalSalary:        decimal.Zero,
		TalabatDeduction:   decimal.Zero,
		CompanyDeduction:   decimal.Zero,
		PettyCashDeduction: decimal.Zero,
		TotalDeductions:    decimal.Zero,
		NetSalary:          decimal.Zero,
		CashPayment:        decimal.Zero,
		BankTransfer:       decimal.Zero,
	}

	cfg, err := s.configSrc.LoadConfigSet(ctx, companyID)
	if err != nil {
		return YearlyReportResponse{}, err
	}

	for month := 1; month <= 12; month++ {
		records, err := s.buildRecords(ctx, companyID, year, month, "")
		if err != nil {
			return YearlyReportResponse{}, err
		}

		groups, err := salary.Aggregate(cfg, records, func(r salary.Record) string {
			return "total"
		})
		if err != nil {
			return YearlyReportResponse{}, err
		}

		monthTotal := salary.Totals(groups)
		months = append(months, MonthSummary{Month: month, Totals: mapTotal(monthTotal)})

		grand.Count += monthTotal.Count
		grand.FinalSalary = grand.FinalSalary.Add(monthTotal.FinalSalary)
		grand.TalabatDeduction = grand.TalabatDeduction.Add(monthTotal.TalabatDeduction)
		grand.CompanyDeduction = grand.CompanyDeduction.Add(monthTotal.CompanyDeduction)
		grand.PettyCashDeduction = grand.PettyCashDeduction.Add(monthTotal.PettyCashDeduction)
		grand.TotalDeductions = grand.TotalDeductions.Add(monthTotal.TotalDeductions)
		grand.NetSalary = grand.NetSalary.Add(monthTotal.NetSalary)
		grand.CashPayment = grand.CashPayment.Add(monthTotal.CashPayment)
		grand.BankTransfer = grand.BankTransfer.Add(monthTotal.BankTransfer)
	}

	return YearlyReportResponse{
		Year:       year,
		Months:     months,
		GrandTotal: mapTotal(grand),
	}, nil
}

// CreateExport stages a workbook request: one pending export row plus an
// outbox event in the same transaction. The consumer does the heavy build.
func (s *service) CreateExport(ctx context.Context, companyID, actorID string, req CreateExportRequest) (ExportResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ExportResponse{}, errors.New("invalid company id")
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ExportResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExportResponse{}, err
	}
	defer tx.Rollback()

	export := &ReportExport{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Year:        req.Year,
		Month:       req.Month,
		Status:      ExportStatusPending,
		RequestedBy: actorUUID,
	}

	if err := s.exports.WithTx(tx).Create(ctx, export); err != nil {
		return ExportResponse{}, err
	}

	if s.outbox != nil {
		event := events.ReportExportRequestedEvent{
			EventType:   "report_export_requested",
			RequestID:   rid,
			ExportID:    export.ID.String(),
			CompanyID:   companyID,
			RequestedBy: actorID,
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ExportResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "report_export",
			AggregateID:   export.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ReportExportRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return ExportResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ExportResponse{}, err
	}

	s.logger.Info("report export requested",
		zap.String("request_id", rid),
		zap.String("export_id", export.ID.String()),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)

	return mapExport(*export), nil
}

func (s *service) GetExport(ctx context.Context, companyID, id string) (ExportResponse, error) {
	export, err := s.exports.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ExportResponse{}, err
	}

	return mapExport(*export), nil
}

func (s *service) ListExports(ctx context.Context, companyID string) ([]ExportResponse, error) {
	exports, err := s.exports.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]ExportResponse, len(exports))
	for i, e := range exports {
		resp[i] = mapExport(e)
	}
	return resp, nil
}

// ProcessExport builds the workbook for a pending export. Runs in the
// consumer, so failures land on the export row instead of an HTTP response.
func (s *service) ProcessExport(ctx context.Context, companyID, exportID string) error {
	export, err := s.exports.FindByIDAndCompany(ctx, companyID, exportID)
	if err != nil {
		return err
	}

	if export.Status == ExportStatusCompleted {
		return nil
	}

	report, err := s.buildMonthly(ctx, companyID, export.Year, export.Month, ReportQuery{})
	if err != nil {
		if markErr := s.exports.MarkFailed(ctx, exportID, err.Error()); markErr != nil {
			s.logger.Error("mark export failed errored", zap.String("export_id", exportID), zap.Error(markErr))
		}
		return err
	}

	filePath, err := writeWorkbook(s.exportDir, companyID, report)
	if err != nil {
		if markErr := s.exports.MarkFailed(ctx, exportID, err.Error()); markErr != nil {
			s.logger.Error("mark export failed errored", zap.String("export_id", exportID), zap.Error(markErr))
		}
		return err
	}

	if err := s.exports.MarkCompleted(ctx, exportID, filePath); err != nil {
		return err
	}

	s.logger.Info("report export completed",
		zap.String("export_id", exportID),
		zap.String("file_path", filePath),
	)
	return nil
}

func mapRow(rec salary.Record, b salary.Breakdown) ReportRow {
	return ReportRow{
		StaffID:            rec.ID,
		FirstName:          rec.FirstName,
		LastName:           rec.LastName,
		StaffType:          rec.StaffType,
		Vehicle:            rec.Vehicle,
		Department:         rec.Department,
		MainOrder:          rec.MainOrder,
		AdditionalOrder:    rec.AdditionalOrder,
		MainSalary:         rec.MainSalary.StringFixed(3),
		FinalSalary:        b.FinalSalary.StringFixed(3),
		TalabatDeduction:   rec.TalabatDeduction.StringFixed(3),
		CompanyDeduction:   rec.CompanyDeduction.StringFixed(3),
		PettyCashDeduction: rec.PettyCashDeduction.StringFixed(3),
		TotalDeductions:    b.TotalDeductions.StringFixed(3),
		NetSalary:          b.NetSalary.StringFixed(3),
		CashPayment:        b.CashPayment.StringFixed(3),
		BankTransfer:       b.BankTransfer.StringFixed(3),
		Remarks:            rec.Remarks,
	}
}

func mapTotal(g salary.GroupTotal) TotalRow {
	return TotalRow{
		GroupKey:           g.GroupKey,
		Count:              g.Count,
		FinalSalary:        g.FinalSalary.StringFixed(3),
		TalabatDeduction:   g.TalabatDeduction.StringFixed(3),
		CompanyDeduction:   g.CompanyDeduction.StringFixed(3),
		PettyCashDeduction: g.PettyCashDeduction.StringFixed(3),
		TotalDeductions:    g.TotalDeductions.StringFixed(3),
		NetSalary:          g.NetSalary.StringFixed(3),
		CashPayment:        g.CashPayment.StringFixed(3),
		BankTransfer:       g.BankTransfer.StringFixed(3),
	}
}

func mapExport(e ReportExport) ExportResponse {
	return ExportResponse{
		ID:        e.ID.String(),
		Year:      e.Year,
		Month:     e.Month,
		Status:    e.Status,
		FilePath:  e.FilePath,
		LastError: e.LastError,
	}
}
