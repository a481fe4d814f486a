package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/application/services/production"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/infrastructure/config"
)

// PlanLineRequest is one product line in a plan request
type PlanLineRequest struct {
	ProductID string            `json:"product_id" binding:"required"`
	Quantity  entities.Quantity `json:"quantity"`
}

// CreatePlanRequest is the body of POST /api/v1/plans
type CreatePlanRequest struct {
	Lines []PlanLineRequest `json:"lines" binding:"required,min=1,dive"`
	Name  string            `json:"name"`
	// YYYY-MM-DD, defaults to the configured lead
	DueDate        string `json:"due_date"`
	Save           bool   `json:"save"`
	SubmitPurchase bool   `json:"submit_purchase"`
}

// ProductionController exposes planning and production lifecycle over HTTP
type ProductionController struct {
	service  *production.Service
	planning config.PlanningConfig
	now      func() time.Time
}

// NewProductionController creates a new controller
func NewProductionController(service *production.Service, planning config.PlanningConfig) *ProductionController {
	return &ProductionController{
		service:  service,
		planning: planning,
		now:      time.Now,
	}
}

// CreatePlan runs the planner and optionally stores the production
// POST /api/v1/plans
func (c *ProductionController) CreatePlan(ctx *gin.Context) {
	var request CreatePlanRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid plan request",
			"details": err.Error(),
		})
		return
	}

	dueDate := c.planning.DueDate(c.now())
	if request.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", request.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		dueDate = parsed
	}

	planRequest := dto.PlanRequest{
		Name:    request.Name,
		DueDate: dueDate,
		Lines:   make([]entities.ProductionLineRequest, 0, len(request.Lines)),
	}
	for _, line := range request.Lines {
		planRequest.Lines = append(planRequest.Lines, entities.ProductionLineRequest{
			ProductID:         entities.ProductID(line.ProductID),
			RequestedQuantity: line.Quantity,
		})
	}

	var (
		result *dto.PlanResult
		err    error
	)
	if request.Save {
		result, err = c.service.CreatePlan(ctx.Request.Context(), planRequest)
	} else {
		result, err = c.service.Preview(ctx.Request.Context(), planRequest)
	}
	if err != nil {
		if errors.Is(err, entities.ErrNoPlannableLines) && result != nil {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
				"plan":  result.View(),
			})
			return
		}
		respondError(ctx, err)
		return
	}

	submitted := false
	if request.SubmitPurchase && result.PurchaseDraft != nil {
		if err := c.service.SubmitPurchase(ctx.Request.Context(), result.PurchaseDraft); err != nil {
			respondError(ctx, err)
			return
		}
		submitted = true
	}

	status := http.StatusOK
	if request.Save {
		status = http.StatusCreated
	}
	ctx.JSON(status, gin.H{
		"plan":               result.View(),
		"purchase_submitted": submitted,
	})
}

// ListProductions returns every stored production
// GET /api/v1/productions
func (c *ProductionController) ListProductions(ctx *gin.Context) {
	productions, err := c.service.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"productions": productions})
}

// GetProduction returns one production
// GET /api/v1/productions/:id
func (c *ProductionController) GetProduction(ctx *gin.Context) {
	found, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, found)
}

// Revalidate re-checks a pending production against current stock
// POST /api/v1/productions/:id/revalidate
func (c *ProductionController) Revalidate(ctx *gin.Context) {
	result, err := c.service.Revalidate(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// Cancel cancels a production
// POST /api/v1/productions/:id/cancel
func (c *ProductionController) Cancel(ctx *gin.Context) {
	updated, err := c.service.Cancel(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// Complete completes an in-progress production
// POST /api/v1/productions/:id/complete
func (c *ProductionController) Complete(ctx *gin.Context) {
	updated, err := c.service.Complete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entities.ErrProductionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, entities.ErrLedgerUnavailable):
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
