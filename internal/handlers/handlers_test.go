package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/epeers/preflists/internal/alphavantage"
	"github.com/epeers/preflists/internal/cache"
	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/metrics"
	"github.com/epeers/preflists/internal/middleware"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/scoring"
	"github.com/epeers/preflists/internal/services"
	"github.com/epeers/preflists/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "s3cret"

var testNow = time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	db, err := database.New(ctx, database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	m := metrics.NewRegistry()
	clock := func() time.Time { return testNow }

	catalogRepo := repository.NewCatalogRepository(db, repository.NewResolver(db))
	idx := cache.NewCatalog(catalogRepo)
	keys := cache.NewCachedResolver(idx, repository.NewResolver(db))
	securityRepo := repository.NewSecurityRepository(db, keys)
	changeRepo := repository.NewListChangeRepository(db, keys)
	listRepo := repository.NewListRepository(db)
	earningsRepo := repository.NewEarningsRepository(db, keys)

	catalogSvc := services.NewCatalogService(catalogRepo, idx, m)
	pointsSvc := services.NewPointsService(changeRepo, m, time.UTC, 90, clock)
	earningsSvc := services.NewEarningsService(earningsRepo, securityRepo, nil, m, time.UTC, clock)
	listSvc := services.NewListService(listRepo, securityRepo, earningsSvc, time.UTC)
	securitySvc := services.NewSecurityService(securityRepo, changeRepo, listRepo, pointsSvc, earningsSvc, m, time.UTC)
	importSvc := services.NewImportService(securitySvc)

	listHandler := NewListHandler(listSvc)
	securityHandler := NewSecurityHandler(securitySvc, earningsSvc)
	pointsHandler := NewPointsHandler(pointsSvc)
	adminHandler := NewAdminHandler(catalogSvc, importSvc, earningsSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Metrics(m))

	router.GET("/lists/:ticker", listHandler.Get)
	router.GET("/lists/:ticker/children", listHandler.Children)
	router.GET("/lists/:ticker/history", listHandler.History)
	router.GET("/securities", securityHandler.Search)
	router.GET("/securities/all", securityHandler.All)
	router.GET("/securities/:ticker", securityHandler.Detail)
	router.GET("/securities/:ticker/earnings", securityHandler.Earnings)
	router.GET("/points", pointsHandler.Points)
	router.GET("/points/weighted", pointsHandler.Weighted)

	write := router.Group("/", middleware.RequireAdminToken(testToken))
	write.POST("/securities", securityHandler.Create)
	write.POST("/securities/:ticker/alt-names", securityHandler.AddAltName)
	write.POST("/earnings", securityHandler.AddEarningsDate)
	write.POST("/list-changes", securityHandler.AddListChange)

	admin := router.Group("/admin", middleware.RequireAdminToken(testToken))
	admin.POST("/weights", adminHandler.AddWeight)
	admin.POST("/countries", adminHandler.AddCountry)
	admin.POST("/currencies", adminHandler.AddCurrency)
	admin.POST("/lists", adminHandler.AddList)
	admin.POST("/events", adminHandler.AddEvent)
	admin.POST("/catalog/reload", adminHandler.ReloadCatalog)
	admin.POST("/list-changes/import", adminHandler.ImportListChanges)
	admin.POST("/earnings/sync/:ticker", adminHandler.SyncEarnings)

	seed(t, router)
	return router
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AdminTokenHeader, testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func mustPost(t *testing.T, router *gin.Engine, path string, body any) {
	t.Helper()
	w := do(router, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, "POST %s: %s", path, w.Body.String())
}

func seed(t *testing.T, router *gin.Engine) {
	t.Helper()
	one, minusOne, ten, minusTen := 1, -1, 10, -10

	mustPost(t, router, "/admin/weights", models.CreateWeightRequest{Name: "high"})
	mustPost(t, router, "/admin/weights", models.CreateWeightRequest{Name: "low"})
	mustPost(t, router, "/admin/countries", models.CreateDimensionRequest{Ticker: "US", Name: "United States", Weight: "high"})
	mustPost(t, router, "/admin/currencies", models.CreateDimensionRequest{Ticker: "USD", Name: "US Dollar", Weight: "high"})
	mustPost(t, router, "/admin/lists", models.CreateListRequest{Ticker: "WORLD", Name: "World", Weight: "high"})
	mustPost(t, router, "/admin/lists", models.CreateListRequest{Ticker: "US-LIST", Name: "US Favourites", Weight: "low", Parent: "WORLD"})
	mustPost(t, router, "/admin/events", models.CreateEventRequest{Ticker: "add", Name: "Added", ValueSign: &one, Value: &ten})
	mustPost(t, router, "/admin/events", models.CreateEventRequest{Ticker: "remove", Name: "Removed", ValueSign: &minusOne, Value: &minusTen})
	mustPost(t, router, "/securities", models.CreateSecurityRequest{Ticker: "ACME.US", Name: "Acme Inc", Country: "US", Currency: "USD"})
	mustPost(t, router, "/securities", models.CreateSecurityRequest{Ticker: "BETA.US", Name: "Beta Corp", Country: "US", Currency: "USD"})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestListEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	mustPost(t, router, "/list-changes", models.CreateListChangeRequest{Ticker: "ACME.US", List: "US-LIST", Event: "add", Date: "01.06.20"})

	w := do(router, http.MethodGet, "/lists/US-LIST", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.ListResponse](t, w)
	assert.Equal(t, "US Favourites", list.Name)
	require.Len(t, list.Components, 1)
	assert.Equal(t, "01.06.20", list.Components[0].LatestChange.Date)

	w = do(router, http.MethodGet, "/lists/WORLD/children", nil)
	require.Equal(t, http.StatusOK, w.Code)
	children := decode[models.ChildListsResponse](t, w)
	require.Len(t, children.Lists, 1)

	w = do(router, http.MethodGet, "/lists/US-LIST/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.ListHistoryResponse](t, w).Entries, 1)

	w = do(router, http.MethodGet, "/lists/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[models.ErrorResponse](t, w).Error)
}

func TestWriteEndpoints_Rejections(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodPost, "/list-changes", models.CreateListChangeRequest{Ticker: "ACME.US", List: "US-LIST", Event: "delist", Date: "01.06.20"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPost, "/list-changes", map[string]string{"ticker": "ACME.US", "list": "US-LIST", "event": "add", "date": "31.02.20"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/securities", models.CreateSecurityRequest{Ticker: "ACME.US", Name: "Acme again", Country: "US", Currency: "USD"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode[models.ErrorResponse](t, w).Error)

	w = do(router, http.MethodPost, "/securities", models.CreateSecurityRequest{Ticker: "X.FR", Name: "X", Country: "FR", Currency: "USD"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPost, "/earnings", models.CreateEarningsDateRequest{Ticker: "ACME.US", Date: "30.07.20", Source: "reuters"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	two, ten := 2, 10
	w = do(router, http.MethodPost, "/admin/events", models.CreateEventRequest{Ticker: "x", Name: "X", ValueSign: &two, Value: &ten})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteEndpoints_RequireToken(t *testing.T) {
	router := setupTestRouter(t)

	body, _ := json.Marshal(models.CreateWeightRequest{Name: "medium"})
	req := httptest.NewRequest(http.MethodPost, "/admin/weights", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// reads stay open
	req = httptest.NewRequest(http.MethodGet, "/securities/all", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	mustPost(t, router, "/securities/ACME.US/alt-names", models.CreateAltNameRequest{AltName: "Acme Holdings"})
	mustPost(t, router, "/list-changes", models.CreateListChangeRequest{Ticker: "ACME.US", List: "US-LIST", Event: "add", Date: "10.06.20"})
	mustPost(t, router, "/earnings", models.CreateEarningsDateRequest{Ticker: "ACME.US", Date: "30.07.20"})

	w := do(router, http.MethodGet, "/securities?name=acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.SecurityInfoResult](t, w), 1)

	w = do(router, http.MethodGet, "/securities", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/securities/all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.SecurityCountryResult](t, w), 3)

	w = do(router, http.MethodGet, "/securities/ACME.US", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[models.SecurityDetailResponse](t, w)
	assert.Equal(t, int64(10), detail.Points.Points)
	require.Len(t, detail.History, 1)
	require.NotNil(t, detail.Earnings.Summary.Next)
	assert.Equal(t, "30.07.20", detail.Earnings.Summary.Next.Date)

	w = do(router, http.MethodGet, "/securities/ACME.US/earnings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.EarningsResponse](t, w).Native, 1)

	w = do(router, http.MethodGet, "/securities/NOPE.US", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPointsEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	mustPost(t, router, "/list-changes", models.CreateListChangeRequest{Ticker: "ACME.US", List: "US-LIST", Event: "add", Date: "15.06.20"})
	mustPost(t, router, "/list-changes", models.CreateListChangeRequest{Ticker: "BETA.US", List: "US-LIST", Event: "add", Date: "01.06.20"})
	mustPost(t, router, "/list-changes", models.CreateListChangeRequest{Ticker: "BETA.US", List: "WORLD", Event: "add", Date: "01.06.20"})

	w := do(router, http.MethodGet, "/points/weighted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.WeightedPointsResponse](t, w)
	assert.Equal(t, 90, resp.Days)
	require.Len(t, resp.Scores, 2)
	assert.Equal(t, "BETA.US", resp.Scores[0].Ticker)
	assert.Regexp(t, `^\d+\.\d{2}$`, resp.Scores[0].Score)

	w = do(router, http.MethodGet, "/points/weighted?country=US&ticker=ACME.US", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.WeightedPointsResponse](t, w).Scores, 1)

	w = do(router, http.MethodGet, "/points?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	points := decode[models.PointsResponse](t, w)
	assert.Equal(t, 7, points.Days)
	require.Len(t, points.Points, 1)
	assert.Equal(t, "ACME.US", points.Points[0].Ticker)

	for _, q := range []string{"abc", "0", "-3"} {
		w = do(router, http.MethodGet, "/points?days="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	// windows whose length in seconds would overflow int64
	for _, q := range []string{"36501", "106751991167301", "213503982334602"} {
		for _, path := range []string{"/points", "/points/weighted"} {
			w = do(router, http.MethodGet, path+"?days="+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, path+" "+q)
			assert.Equal(t, "invalid_request", decode[models.ErrorResponse](t, w).Error)
		}
	}

	w = do(router, http.MethodGet, "/points/weighted?days=36500", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/points/weighted?country=XX", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func uploadCSV(t *testing.T, router *gin.Engine, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "changes.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/list-changes/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(middleware.AdminTokenHeader, testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportListChanges(t *testing.T) {
	router := setupTestRouter(t)

	w := uploadCSV(t, router, "ticker,list,event,date,note\n"+
		"ACME.US,US-LIST,add,01.06.20,strong quarter\n"+
		",US-LIST,add,01.06.20,\n"+
		"BETA.US,US-LIST,delist,02.06.20,\n"+
		"BETA.US,WORLD,add,03.06.20,upgrade,extra\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ImportListChangesResponse](t, w)
	assert.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, 4, resp.Rejected[0].Row)
	require.Len(t, resp.Warnings, 2)
	assert.Equal(t, models.WarnImportRowSkipped, resp.Warnings[0].Code)
	assert.Equal(t, models.WarnImportExtraColumns, resp.Warnings[1].Code)

	w = uploadCSV(t, router, "ticker,list,date\nACME.US,US-LIST,01.06.20\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodPost, "/admin/catalog/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[cache.CatalogStats](t, w)
	assert.Equal(t, 2, stats.Weights)
	assert.Equal(t, 2, stats.Lists)

	w = do(router, http.MethodPost, "/admin/weights", models.CreateWeightRequest{Name: "high"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, http.MethodPost, "/admin/earnings/sync/ACME.US", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestParseListChangesCSV(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())
	rows, err := ParseListChangesCSV(ctx, strings.NewReader(
		"Ticker, List, Event, Date\n"+
			"ACME.US, US-LIST, add, 01.01.20\n"+
			"BETA.US,US-LIST,remove,02.01.20,first,second\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, services.ListChangeRow{Row: 2, Ticker: "ACME.US", List: "US-LIST", Event: "add", Date: "01.01.20"}, rows[0])
	require.NotNil(t, rows[1].Note)
	assert.Equal(t, "first, second", *rows[1].Note)
	assert.Equal(t, 3, rows[1].Row)
	assert.Len(t, wc.Warnings(), 1)
}

func TestParseListChangesCSV_MissingColumn(t *testing.T) {
	_, err := ParseListChangesCSV(context.Background(), strings.NewReader("ticker,list,event\nA,B,C\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestParseListChangesCSV_HeaderOnly(t *testing.T) {
	rows, err := ParseListChangesCSV(context.Background(), strings.NewReader("ticker,list,event,date\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("wrapped: %w", &repository.LookupError{Table: "lists", Column: "ticker", Value: "X"}), http.StatusNotFound},
		{&repository.LookupError{Table: "lists", Column: "ticker", Value: "X", Matches: 2}, http.StatusConflict},
		{&database.IntegrityError{Key: "ACME.US", Err: errors.New("UNIQUE")}, http.StatusConflict},
		{fmt.Errorf("%w %q", util.ErrInvalidDate, "x"), http.StatusBadRequest},
		{services.ErrSyncDisabled, http.StatusServiceUnavailable},
		{fmt.Errorf("sync: %w", alphavantage.ErrUnavailable), http.StatusServiceUnavailable},
		{alphavantage.ErrAPIMessage, http.StatusBadGateway},
		{fmt.Errorf("%w: 40000 days", scoring.ErrInvalidWindow), http.StatusBadRequest},
		{scoring.ErrUnorderedStream, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		status, _ := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}
