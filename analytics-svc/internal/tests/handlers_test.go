package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "cloud-kitchen/analytics-svc/internal/api/http"
	"cloud-kitchen/analytics-svc/internal/domain"
	"cloud-kitchen/analytics-svc/internal/mocks"
	"cloud-kitchen/session"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSessions = session.NewManager([]byte("test-secret"), time.Hour, false)

func setupRouter(svc *mocks.AnalyticsInterface) *mux.Router {
	r := mux.NewRouter()
	r.Use(testSessions.Middleware)
	httpapi.NewHandler(svc).RegisterRoutes(r)
	return r
}

func adminRequest(t *testing.T, method, path string) *http.Request {
	token, _, err := testSessions.Issue(1, session.RoleAdmin)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

func TestHealthCheckHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	setupRouter(new(mocks.AnalyticsInterface)).ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"service":"analytics-svc"`)
}

func TestAnalyticsRoutesRequireAdmin(t *testing.T) {
	paths := []string{
		"/api/admin/analytics/dashboard",
		"/api/admin/analytics/orders",
		"/api/admin/analytics/customers",
		"/api/admin/customers/export?format=csv",
	}
	customer, _, err := testSessions.Issue(2, session.RoleCustomer)
	require.NoError(t, err)

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			router := setupRouter(new(mocks.AnalyticsInterface))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			req := httptest.NewRequest("GET", path, nil)
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: customer})
			rr = httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusForbidden, rr.Code)
		})
	}
}

func TestGetDashboardHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mocks.AnalyticsInterface)
		expectedStatus int
		checkBody      func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "success",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("Dashboard", mock.Anything).Return(&domain.DashboardStats{
					TotalRevenue:  domain.NewMoney(decimal.RequireFromString("1500.5")),
					TotalOrders:   6,
					PendingOrders: 2,
					RevenueGrowth: 50,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, 1500.5, body["totalRevenue"])
				assert.Equal(t, float64(6), body["totalOrders"])
				assert.Equal(t, float64(50), body["revenueGrowth"])
			},
		},
		{
			name: "database failure",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("Dashboard", mock.Anything).Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Internal server error", body["message"])
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := new(mocks.AnalyticsInterface)
			testCase.setupMock(svc)

			rr := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(rr, adminRequest(t, "GET", "/api/admin/analytics/dashboard"))

			assert.Equal(t, testCase.expectedStatus, rr.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			testCase.checkBody(t, body)
			svc.AssertExpectations(t)
		})
	}
}

func TestGetOrdersAndCustomersHandlers(t *testing.T) {
	svc := new(mocks.AnalyticsInterface)
	svc.On("Orders", mock.Anything).Return(&domain.OrdersAnalytics{
		TotalOrders:    3,
		OrdersByStatus: map[string]int{"pending": 3},
		RevenueByMonth: []domain.MonthlyRevenue{{Month: "2026-10", Revenue: domain.NewMoney(decimal.NewFromInt(900))}},
	}, nil).Once()
	svc.On("Customers", mock.Anything).Return(&domain.CustomerAnalytics{
		TotalCustomers: 1, ActiveCustomers: 1, Customers: []domain.CustomerInsight{{CustomerPhone: "+919876543210"}},
	}, nil).Once()
	router := setupRouter(svc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest(t, "GET", "/api/admin/analytics/orders"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"revenueByMonth":[{"month":"2026-10","revenue":900.00}]`)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest(t, "GET", "/api/admin/analytics/customers"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"customerPhone":"+919876543210"`)

	svc.AssertExpectations(t)
}

func TestExportCustomersHandler(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		setupMock       func(m *mocks.AnalyticsInterface)
		expectedStatus  int
		expectedType    string
		expectedFileExt string
	}{
		{
			name:  "csv",
			query: "?format=csv",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("ExportCustomers", mock.Anything, domain.ExportCSV).Return([]byte("Phone\n"), nil).Once()
			},
			expectedStatus:  http.StatusOK,
			expectedType:    "text/csv; charset=utf-8",
			expectedFileExt: ".csv",
		},
		{
			name:  "json",
			query: "?format=json",
			setupMock: func(m *mocks.AnalyticsInterface) {
				m.On("ExportCustomers", mock.Anything, domain.ExportJSON).Return([]byte("[]"), nil).Once()
			},
			expectedStatus:  http.StatusOK,
			expectedType:    "application/json",
			expectedFileExt: ".json",
		},
		{
			name:           "unknown format",
			query:          "?format=xlsx",
			setupMock:      func(m *mocks.AnalyticsInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := new(mocks.AnalyticsInterface)
			testCase.setupMock(svc)

			rr := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(rr, adminRequest(t, "GET", "/api/admin/customers/export"+testCase.query))

			assert.Equal(t, testCase.expectedStatus, rr.Code)
			if testCase.expectedType != "" {
				assert.Equal(t, testCase.expectedType, rr.Header().Get("Content-Type"))
				assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="customers-`)
				assert.Contains(t, rr.Header().Get("Content-Disposition"), testCase.expectedFileExt)
			}
			svc.AssertExpectations(t)
		})
	}
}
