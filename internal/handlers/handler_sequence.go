package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/middleware"
)

// sequenceHandler handles HTTP requests for document sequences.
type sequenceHandler struct {
	sequenceService portssvc.SequenceSvcFacade
}

// registerSequenceRoutes registers the sequence preview route.
func registerSequenceRoutes(rg *gin.RouterGroup, sequenceService portssvc.SequenceSvcFacade) {
	h := &sequenceHandler{sequenceService: sequenceService}

	sequences := rg.Group("/sequences")
	{
		sequences.GET("/:name", h.peekSequence)
	}
}

// peekSequence godoc
// @Summary Preview a document sequence
// @Description Returns the sequence definition and the next number it will issue, without consuming it
// @Tags sequences
// @Produce json
// @Param name path string true "Sequence name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Unknown sequence"
// @Failure 500 {object} map[string]string "Failed to retrieve sequence"
// @Router /sequences/{name} [get]
func (h *sequenceHandler) peekSequence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	seq, err := h.sequenceService.PeekSequence(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownSequence) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to peek sequence", slog.String("name", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sequence"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":       seq.Name,
		"prefix":     seq.Prefix,
		"nextValue":  seq.NextValue,
		"nextNumber": seq.FormatValue(seq.NextValue),
	})
}
