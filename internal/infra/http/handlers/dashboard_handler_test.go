package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gfranca7/branchboard/internal/entity"
	"github.com/gfranca7/branchboard/internal/usecase"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByFilter(ctx context.Context, f entity.Filter) ([]entity.Lead, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) DistinctOptions(ctx context.Context) (*entity.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FilterOptions), args.Error(1)
}

func newTestHandler(repo *MockLeadRepository) *DashboardHandler {
	uc := usecase.NewDashboardUseCase(repo, nil)
	uc.Now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return NewDashboardHandler(uc)
}

func TestHandleGetReturnsDashboard(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByFilter", mock.Anything, mock.Anything).Return([]entity.Lead{
		{BranchName: "Lisbon", AgentName: "Maria", Status: entity.StatusSold, Revenue: 900,
			CreatedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?dateRange=last7days", nil)
	rec := httptest.NewRecorder()

	newTestHandler(repo).HandleGet(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result entity.DashboardResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.KPIs.TotalLeads)
	assert.Len(t, result.LeadsOverTime, 7)
}

func TestHandleGetNormalizesUnknownDateRange(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByFilter", mock.Anything, entity.Filter{DateRange: entity.DateRangeAll}).
		Return([]entity.Lead{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?dateRange=lastCentury", nil)
	rec := httptest.NewRecorder()

	newTestHandler(repo).HandleGet(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestHandleGetDataAccessFailureIsBadGateway(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByFilter", mock.Anything, mock.Anything).
		Return(nil, &usecase.DataAccessError{Op: "leads.find", Err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	newTestHandler(repo).HandleGet(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DATA_ACCESS_ERROR", body["error"])
}

func TestHandleOptionsReturnsDistinctValues(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("DistinctOptions", mock.Anything).Return(&entity.FilterOptions{
		Branches: []string{"Lisbon", "Porto"},
		Agents:   []string{"Maria"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/options", nil)
	rec := httptest.NewRecorder()

	newTestHandler(repo).HandleOptions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var opts entity.FilterOptions
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Lisbon", "Porto"}, opts.Branches)
}

func TestHandleOptionsDataAccessFailureIsBadGateway(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("DistinctOptions", mock.Anything).
		Return(nil, &usecase.DataAccessError{Op: "leads.options", Err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/options", nil)
	rec := httptest.NewRecorder()

	newTestHandler(repo).HandleOptions(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
