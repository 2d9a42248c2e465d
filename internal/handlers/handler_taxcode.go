package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
	"github.com/quillbooks/quillbooks/internal/middleware"
)

// taxCodeHandler handles HTTP requests for tax code masterdata.
type taxCodeHandler struct {
	taxCodeService portssvc.TaxCodeSvcFacade
}

// newTaxCodeHandler creates a new taxCodeHandler.
func newTaxCodeHandler(ts portssvc.TaxCodeSvcFacade) *taxCodeHandler {
	return &taxCodeHandler{taxCodeService: ts}
}

// registerTaxCodeRoutes registers routes related to tax codes.
func registerTaxCodeRoutes(rg *gin.RouterGroup, taxCodeService portssvc.TaxCodeSvcFacade) {
	h := newTaxCodeHandler(taxCodeService)

	taxCodes := rg.Group("/tax-codes")
	{
		taxCodes.POST("", h.createTaxCode)
		taxCodes.GET("", h.listTaxCodes)
		taxCodes.GET("/:code", h.getTaxCode)
		taxCodes.DELETE("/:code", h.deactivateTaxCode)
	}
}

// createTaxCode godoc
// @Summary Register a tax code
// @Tags tax-codes
// @Accept json
// @Produce json
// @Param taxCode body dto.CreateTaxCodeRequest true "Tax code details"
// @Success 201 {object} domain.TaxCode
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Tax code already exists"
// @Failure 500 {object} map[string]string "Failed to create tax code"
// @Router /tax-codes [post]
func (h *taxCodeHandler) createTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTaxCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	taxCode, err := h.taxCodeService.CreateTaxCode(c.Request.Context(), req, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax code"})
		}
		return
	}
	c.JSON(http.StatusCreated, taxCode)
}

// getTaxCode godoc
// @Summary Get a tax code by code
// @Tags tax-codes
// @Produce json
// @Param code path string true "Tax code"
// @Success 200 {object} domain.TaxCode
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax code"
// @Router /tax-codes/{code} [get]
func (h *taxCodeHandler) getTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	taxCode, err := h.taxCodeService.GetTaxCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax code not found"})
		} else {
			logger.Error("Failed to get tax code", slog.String("code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax code"})
		}
		return
	}
	c.JSON(http.StatusOK, taxCode)
}

// listTaxCodes godoc
// @Summary List tax codes
// @Tags tax-codes
// @Produce json
// @Param activeOnly query bool false "Omit deactivated tax codes"
// @Success 200 {array} domain.TaxCode
// @Failure 500 {object} map[string]string "Failed to list tax codes"
// @Router /tax-codes [get]
func (h *taxCodeHandler) listTaxCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := c.Query("activeOnly") == "true"

	taxCodes, err := h.taxCodeService.ListTaxCodes(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Error("Failed to list tax codes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax codes"})
		return
	}
	c.JSON(http.StatusOK, taxCodes)
}

// deactivateTaxCode godoc
// @Summary Deactivate a tax code
// @Description Hides the code from selection; posted lines keep their snapshotted rates
// @Tags tax-codes
// @Produce json
// @Param code path string true "Tax code"
// @Success 204 "Tax code deactivated"
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to deactivate tax code"
// @Router /tax-codes/{code} [delete]
func (h *taxCodeHandler) deactivateTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	if err := h.taxCodeService.DeactivateTaxCode(c.Request.Context(), code, callerID(c)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deactivate tax code", slog.String("code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate tax code"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
