package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillbooks/quillbooks/internal/middleware"
)

// systemUserID is stamped on audit fields when no identity header is present.
// The accounting core sits behind an identity layer; single-user deployments
// run without one.
const systemUserID = "system"

// callerID resolves the acting user for audit stamping.
func callerID(c *gin.Context) string {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return userID
	}
	return systemUserID
}

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "QuillBooks accounting core API v1"})
}
