package staff_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleetops/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeStaffService struct {
	CreateFn       func(ctx context.Context, companyID string, req staff.CreateStaffRequest) (staff.StaffResponse, error)
	GetAllFn       func(ctx context.Context, companyID string, staffType string) ([]staff.StaffResponse, error)
	GetOptionsFn   func(ctx context.Context, companyID string) ([]staff.StaffResponse, error)
	GetByIDFn      func(ctx context.Context, companyID, id string) (staff.StaffResponse, error)
	UpdateFn       func(ctx context.Context, companyID, id string, req staff.UpdateStaffRequest) (staff.StaffResponse, error)
	DeleteFn       func(ctx context.Context, companyID, id string) error
	UpsertFigureFn func(ctx context.Context, companyID, staffID string, year, month int, req staff.UpsertFigureRequest) (staff.StaffFigureResponse, error)
	GetFigureFn    func(ctx context.Context, companyID, staffID string, year, month int) (staff.StaffFigureResponse, error)
}

func (f *fakeStaffService) Create(ctx context.Context, companyID string, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeStaffService) GetAll(ctx context.Context, companyID string, staffType string) ([]staff.StaffResponse, error) {
	return f.GetAllFn(ctx, companyID, staffType)
}
func (f *fakeStaffService) GetOptions(ctx context.Context, companyID string) ([]staff.StaffResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeStaffService) GetByID(ctx context.Context, companyID, id string) (staff.StaffResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeStaffService) Update(ctx context.Context, companyID, id string, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeStaffService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}
func (f *fakeStaffService) UpsertFigure(ctx context.Context, companyID, staffID string, year, month int, req staff.UpsertFigureRequest) (staff.StaffFigureResponse, error) {
	return f.UpsertFigureFn(ctx, companyID, staffID, year, month, req)
}
func (f *fakeStaffService) GetFigure(ctx context.Context, companyID, staffID string, year, month int) (staff.StaffFigureResponse, error) {
	return f.GetFigureFn(ctx, companyID, staffID, year, month)
}

func TestStaffHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeStaffService{
			CreateFn: func(ctx context.Context, cid string, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, staff.TypeDriver, req.StaffType)
				return staff.StaffResponse{ID: uuid.New().String(), StaffType: req.StaffType, CompanyID: cid}, nil
			},
		}

		h := staff.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"staff_type":"driver","first_name":"Ahmed","last_name":"Saleh","vehicle":"Bike","main_salary":"100.000"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/staff", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error - unknown staff type", func(t *testing.T) {
		h := staff.NewHandler(&fakeStaffService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"staff_type":"contractor","first_name":"A","last_name":"B"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/staff", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeStaffService{
			CreateFn: func(ctx context.Context, cid string, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
				return staff.StaffResponse{}, errors.New("failed")
			},
		}

		h := staff.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"staff_type":"employee","first_name":"Sara","last_name":"Ali"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/staff", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStaffHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with type filter", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeStaffService{
			GetAllFn: func(ctx context.Context, cid string, staffType string) ([]staff.StaffResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, staff.TypeDriver, staffType)
				return []staff.StaffResponse{{ID: uuid.New().String(), StaffType: staffType}}, nil
			},
		}

		h := staff.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/staff?staff_type=driver", nil)
		c.Set("company_id", companyID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown type filter", func(t *testing.T) {
		h := staff.NewHandler(&fakeStaffService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/staff?staff_type=robot", nil)
		c.Set("company_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStaffHandler_GetById(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		staffID := uuid.New().String()

		svc := &fakeStaffService{
			GetByIDFn: func(ctx context.Context, cid, id string) (staff.StaffResponse, error) {
				assert.Equal(t, staffID, id)
				return staff.StaffResponse{ID: id, CompanyID: cid}, nil
			},
		}

		h := staff.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/staff/"+staffID, nil)
		c.Params = []gin.Param{{Key: "id", Value: staffID}}
		c.Set("company_id", companyID)

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestStaffHandler_UpsertFigure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		staffID := uuid.New().String()

		svc := &fakeStaffService{
			UpsertFigureFn: func(ctx context.Context, cid, sid string, year, month int, req staff.UpsertFigureRequest) (staff.StaffFigureResponse, error) {
				assert.Equal(t, staffID, sid)
				assert.Equal(t, 2026, year)
				assert.Equal(t, 7, month)
				assert.Equal(t, 420, req.MainOrder)
				return staff.StaffFigureResponse{StaffID: sid, Year: year, Month: month, MainOrder: req.MainOrder}, nil
			},
		}

		h := staff.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"main_order":420,"additional_order":35,"talabat_deduction":"12.250","company_deduction":"3.000"}`
		c.Request = httptest.NewRequest(http.MethodPut, "/staff/"+staffID+"/figures/2026/7", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{
			{Key: "id", Value: staffID},
			{Key: "year", Value: "2026"},
			{Key: "month", Value: "7"},
		}
		c.Set("company_id", companyID)

		h.UpsertFigure(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid month", func(t *testing.T) {
		h := staff.NewHandler(&fakeStaffService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPut, "/staff/x/figures/2026/13", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{
			{Key: "id", Value: uuid.New().String()},
			{Key: "year", Value: "2026"},
			{Key: "month", Value: "13"},
		}
		c.Set("company_id", uuid.New().String())

		h.UpsertFigure(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative orders rejected by binding", func(t *testing.T) {
		h := staff.NewHandler(&fakeStaffService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"main_order":-5}`
		c.Request = httptest.NewRequest(http.MethodPut, "/staff/x/figures/2026/7", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{
			{Key: "id", Value: uuid.New().String()},
			{Key: "year", Value: "2026"},
			{Key: "month", Value: "7"},
		}
		c.Set("company_id", uuid.New().String())

		h.UpsertFigure(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStaffHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		staffID := uuid.New().String()

		svc := &fakeStaffService{
			DeleteFn: func(ctx context.Context, cid, id string) error {
				assert.Equal(t, staffID, id)
				return nil
			},
		}

		h := staff.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodDelete, "/staff/"+staffID, nil)
		c.Params = []gin.Param{{Key: "id", Value: staffID}}
		c.Set("company_id", companyID)

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
