package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bakeplan/pkg/application/services/planning"
	"github.com/vsinha/bakeplan/pkg/application/services/production"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/infrastructure/config"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
	testdata "github.com/vsinha/bakeplan/pkg/infrastructure/testing"
)

type planResponse struct {
	Plan struct {
		Production *entities.Production `json:"production"`
		Feasible   bool                 `json:"feasible"`
		Shortfall  []struct {
			IngredientID string `json:"ingredient_id"`
			Missing      string `json:"missing"`
		} `json:"shortfall"`
		PurchaseDraft *entities.PurchaseDraft `json:"purchase_draft"`
	} `json:"plan"`
	PurchaseSubmitted bool   `json:"purchase_submitted"`
	Error             string `json:"error"`
}

type testServer struct {
	router *gin.Engine
	ledger *memory.IngredientLedger
	outbox *memory.PurchaseOutbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recipes, ledger := testdata.BuildBakeryTestData()

	engine := planning.NewEngine(planning.DefaultEngineConfig(),
		planning.WithClock(func() time.Time { return time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC) }))
	planner := planning.NewPlanner(engine, recipes, ledger, nil)
	outbox := memory.NewPurchaseOutbox()
	service := production.NewService(planner, memory.NewProductionRepository(), outbox, nil, nil)

	return &testServer{
		router: NewRouter(service, config.Default().Planning, nil),
		ledger: ledger,
		outbox: outbox,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodePlan(t *testing.T, rec *httptest.ResponseRecorder) planResponse {
	t.Helper()
	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreatePlan_PreviewDoesNotStore(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/plans", gin.H{
		"lines": []gin.H{{"product_id": "cunape", "quantity": "100"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodePlan(t, rec)
	assert.False(t, resp.Plan.Feasible)
	require.NotNil(t, resp.Plan.Production)
	assert.Equal(t, entities.Pending, resp.Plan.Production.Status)
	require.Len(t, resp.Plan.Shortfall, 2)
	assert.Equal(t, "eggs", resp.Plan.Shortfall[0].IngredientID)
	assert.Equal(t, "150", resp.Plan.Shortfall[0].Missing)
	assert.Equal(t, "flour", resp.Plan.Shortfall[1].IngredientID)
	assert.Equal(t, "10", resp.Plan.Shortfall[1].Missing)
	require.NotNil(t, resp.Plan.PurchaseDraft)

	list := s.do(t, http.MethodGet, "/api/v1/productions", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `{"productions":[]}`, list.Body.String())
}

func TestCreatePlan_SaveAndSubmit(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/plans", gin.H{
		"lines":           []gin.H{{"product_id": "cunape", "quantity": 50}},
		"name":            "Morning batch",
		"due_date":        "2026-04-02",
		"save":            true,
		"submit_purchase": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodePlan(t, rec)
	require.NotNil(t, resp.Plan.Production)
	assert.Equal(t, "Morning batch", resp.Plan.Production.Name)
	assert.True(t, resp.PurchaseSubmitted)
	require.Len(t, s.outbox.Submitted(), 1)

	id := resp.Plan.Production.ID
	get := s.do(t, http.MethodGet, "/api/v1/productions/"+id, nil)
	require.Equal(t, http.StatusOK, get.Code)

	var stored entities.Production
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &stored))
	assert.Equal(t, entities.Pending, stored.Status)
	assert.Equal(t, "2026-04-02", stored.DueDate.Format("2006-01-02"))
}

func TestCreatePlan_FeasibleStartsInProgress(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/plans", gin.H{
		"lines":           []gin.H{{"product_id": "cunape", "quantity": "25"}},
		"save":            true,
		"submit_purchase": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodePlan(t, rec)
	assert.True(t, resp.Plan.Feasible)
	assert.Equal(t, entities.InProgress, resp.Plan.Production.Status)
	assert.Nil(t, resp.Plan.PurchaseDraft)
	assert.False(t, resp.PurchaseSubmitted)
	assert.Empty(t, s.outbox.Submitted())
}

func TestCreatePlan_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"no lines", gin.H{"lines": []gin.H{}}},
		{"missing product", gin.H{"lines": []gin.H{{"quantity": "1"}}}},
		{"bad due date", gin.H{"lines": []gin.H{{"product_id": "cunape", "quantity": "1"}}, "due_date": "tomorrow"}},
		{"not json", "lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/plans", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCreatePlan_NoPlannableLines(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/plans", gin.H{
		"lines": []gin.H{{"product_id": "marraqueta", "quantity": "10"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	resp := decodePlan(t, rec)
	assert.Contains(t, resp.Error, "no plannable")
}

func TestProductionLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/plans", gin.H{
		"lines": []gin.H{{"product_id": "cunape", "quantity": "50"}},
		"save":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodePlan(t, rec).Plan.Production.ID

	// still short on eggs
	reval := s.do(t, http.MethodPost, "/api/v1/productions/"+id+"/revalidate", nil)
	require.Equal(t, http.StatusOK, reval.Code, reval.Body.String())
	var result production.RevalidationResult
	require.NoError(t, json.Unmarshal(reval.Body.Bytes(), &result))
	assert.False(t, result.Promoted)

	complete := s.do(t, http.MethodPost, "/api/v1/productions/"+id+"/complete", nil)
	assert.Equal(t, http.StatusConflict, complete.Code)

	require.NoError(t, s.ledger.SetStock("eggs", entities.MustQuantity("100")))
	reval = s.do(t, http.MethodPost, "/api/v1/productions/"+id+"/revalidate", nil)
	require.Equal(t, http.StatusOK, reval.Code)
	require.NoError(t, json.Unmarshal(reval.Body.Bytes(), &result))
	assert.True(t, result.Promoted)
	assert.Equal(t, entities.InProgress, result.Production.Status)

	complete = s.do(t, http.MethodPost, "/api/v1/productions/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, complete.Code)

	cancel := s.do(t, http.MethodPost, "/api/v1/productions/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, cancel.Code)
}

func TestGetProduction_NotFound(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/productions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
