package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
	"github.com/quillbooks/quillbooks/internal/middleware"
)

// gstHandler handles HTTP requests for GST returns.
type gstHandler struct {
	gstService portssvc.GSTSvcFacade
}

// newGSTHandler creates a new gstHandler.
func newGSTHandler(gs portssvc.GSTSvcFacade) *gstHandler {
	return &gstHandler{gstService: gs}
}

// registerGSTRoutes registers routes related to GST returns.
func registerGSTRoutes(rg *gin.RouterGroup, gstService portssvc.GSTSvcFacade) {
	h := newGSTHandler(gstService)

	returns := rg.Group("/gst-returns")
	{
		returns.POST("/prepare", h.prepareReturn)
		returns.POST("", h.saveDraftReturn)
		returns.GET("/:id", h.getReturn)
		returns.POST("/:id/finalize", h.finalizeReturn)
	}
}

// prepareReturn godoc
// @Summary Prepare a GST return over a filing period
// @Description Aggregates posted, tax-tagged lines into an unsaved return draft for review
// @Tags gst-returns
// @Accept json
// @Produce json
// @Param period body dto.PrepareGSTReturnRequest true "Filing period bounds"
// @Success 200 {object} domain.GSTReturn
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to prepare return"
// @Router /gst-returns/prepare [post]
func (h *gstHandler) prepareReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PrepareGSTReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PrepareReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ret, err := h.gstService.PrepareReturn(c.Request.Context(), req.PeriodStart, req.PeriodEnd, callerID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to prepare GST return", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare GST return"})
		return
	}
	c.JSON(http.StatusOK, ret)
}

// saveDraftReturn godoc
// @Summary Save a GST return draft
// @Description Persists a prepared return so the filed figures match what was reviewed
// @Tags gst-returns
// @Accept json
// @Produce json
// @Param return body dto.SaveGSTReturnRequest true "Return figures"
// @Success 201 {object} domain.GSTReturn
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Return already finalized"
// @Failure 500 {object} map[string]string "Failed to save return"
// @Router /gst-returns [post]
func (h *gstHandler) saveDraftReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveGSTReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDraftReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	draft := domain.GSTReturn{
		PeriodStart:           req.PeriodStart,
		PeriodEnd:             req.PeriodEnd,
		StandardRatedSupplies: req.StandardRatedSupplies,
		ZeroRatedSupplies:     req.ZeroRatedSupplies,
		ExemptSupplies:        req.ExemptSupplies,
		TaxablePurchases:      req.TaxablePurchases,
		OutputTax:             req.OutputTax,
		InputTax:              req.InputTax,
		Adjustments:           req.Adjustments,
	}
	if req.ReturnID != nil {
		draft.ReturnID = *req.ReturnID
	}

	saved, err := h.gstService.SaveDraftReturn(c.Request.Context(), draft, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to save GST return", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save GST return"})
		}
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// getReturn godoc
// @Summary Get a GST return by ID
// @Tags gst-returns
// @Produce json
// @Param id path string true "Return ID"
// @Success 200 {object} domain.GSTReturn
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 500 {object} map[string]string "Failed to retrieve return"
// @Router /gst-returns/{id} [get]
func (h *gstHandler) getReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("id")

	ret, err := h.gstService.GetReturn(c.Request.Context(), returnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "GST return not found"})
		} else {
			logger.Error("Failed to get GST return", slog.String("return_id", returnID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve GST return"})
		}
		return
	}
	c.JSON(http.StatusOK, ret)
}

// finalizeReturn godoc
// @Summary Finalize a GST return
// @Description Marks the return filed, assigns its document number and posts a settlement entry when tax is owed or refundable
// @Tags gst-returns
// @Accept json
// @Produce json
// @Param id path string true "Return ID"
// @Param filing body dto.FinalizeGSTReturnRequest true "Filing confirmation details"
// @Success 200 {object} domain.GSTReturn
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 409 {object} map[string]string "Return already finalized or settlement period closed"
// @Failure 500 {object} map[string]string "Failed to finalize return"
// @Router /gst-returns/{id}/finalize [post]
func (h *gstHandler) finalizeReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("id")

	var req dto.FinalizeGSTReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FinalizeReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ret, err := h.gstService.FinalizeReturn(c.Request.Context(), returnID, req, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyFinalized), errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to finalize GST return", slog.String("return_id", returnID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize GST return"})
		}
		return
	}
	logger.Info("GST return finalized", slog.String("return_id", returnID), slog.Any("return_no", ret.ReturnNo))
	c.JSON(http.StatusOK, ret)
}
