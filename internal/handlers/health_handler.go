package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Root is the public liveness/info endpoint.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Doctor House API is running",
		"version": "1.0.0",
	})
}

// Health pings the store so the check fails when the database is down,
// not just when the process is up.
func (h *Handler) Health(c *gin.Context) {
	err := h.DB.RunCommand(context.TODO(), bson.M{"ping": 1}).Err()
	if err != nil {
		respondStoreError(c, "Health: ping", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server and database are healthy",
		"timestamp": time.Now().UTC(),
	})
}
