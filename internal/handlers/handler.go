package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler carries the shared store handle. One value serves every
// route; per-request state stays on the gin context.
type Handler struct {
	DB *mongo.Database
}

func NewHandler(db *mongo.Database) *Handler {
	return &Handler{DB: db}
}

// Every response uses one envelope: {"success": true, "data": ...} on
// the happy path, {"success": false, "message": ...} on failure.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondStoreError logs the underlying failure server-side and hides
// it from the client. Store errors are never retried.
func respondStoreError(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
