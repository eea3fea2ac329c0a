package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorhouse/booking-api/internal/models"
)

// ListMenu is public. An optional ?specialist= query narrows the list.
func (h *Handler) ListMenu(c *gin.Context) {
	filter := bson.M{}
	if specialist := c.Query("specialist"); specialist != "" {
		filter["specialist"] = specialist
	}

	cursor, err := h.DB.Collection("menu").Find(context.TODO(), filter)
	if err != nil {
		respondStoreError(c, "ListMenu: find", err)
		return
	}
	defer cursor.Close(context.TODO())

	items := make([]models.MenuItem, 0)
	if err := cursor.All(context.TODO(), &items); err != nil {
		respondStoreError(c, "ListMenu: decode", err)
		return
	}

	respondData(c, http.StatusOK, items)
}

// GetMenuItem fetches one listing by id. Public.
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	var item models.MenuItem
	err = h.DB.Collection("menu").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		respondError(c, http.StatusNotFound, "Menu item not found")
		return
	}
	if err != nil {
		respondStoreError(c, "GetMenuItem: find", err)
		return
	}

	respondData(c, http.StatusOK, item)
}

type createMenuItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"` // zero is a legitimate price
	Specialist string  `json:"specialist" binding:"required"`
	Location   string  `json:"location"`
	Available  bool    `json:"available"`
	Details    string  `json:"details"`
}

// CreateMenuItem inserts a listing. Admin only (enforced by the route).
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name and specialist are required")
		return
	}

	item := models.MenuItem{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
		Specialist: req.Specialist,
		Location:   req.Location,
		Available:  req.Available,
		Details:    req.Details,
	}

	if _, err := h.DB.Collection("menu").InsertOne(context.TODO(), item); err != nil {
		respondStoreError(c, "CreateMenuItem: insert", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": item.ID.Hex()})
}

// UpdateMenuItem merge-patches a listing: only supplied fields change.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	var req struct {
		Name       *string  `json:"name"`
		Image      *string  `json:"image"`
		Price      *float64 `json:"price"`
		Specialist *string  `json:"specialist"`
		Location   *string  `json:"location"`
		Available  *bool    `json:"available"`
		Details    *string  `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updateFields := bson.M{}
	if req.Name != nil {
		updateFields["name"] = *req.Name
	}
	if req.Image != nil {
		updateFields["image"] = *req.Image
	}
	if req.Price != nil {
		updateFields["price"] = *req.Price
	}
	if req.Specialist != nil {
		updateFields["specialist"] = *req.Specialist
	}
	if req.Location != nil {
		updateFields["location"] = *req.Location
	}
	if req.Available != nil {
		updateFields["available"] = *req.Available
	}
	if req.Details != nil {
		updateFields["details"] = *req.Details
	}
	if len(updateFields) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	result, err := h.DB.Collection("menu").UpdateOne(context.TODO(), bson.M{"_id": id}, bson.M{"$set": updateFields})
	if err != nil {
		respondStoreError(c, "UpdateMenuItem: update", err)
		return
	}
	if result.MatchedCount == 0 {
		respondError(c, http.StatusNotFound, "Menu item not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// DeleteMenuItem removes a listing by id.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	result, err := h.DB.Collection("menu").DeleteOne(context.TODO(), bson.M{"_id": id})
	if err != nil {
		respondStoreError(c, "DeleteMenuItem: delete", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "Menu item not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}
