package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctorhouse/booking-api/internal/middleware"
	"github.com/doctorhouse/booking-api/internal/models"
)

// ListCartItems returns the caller's cart. The filter comes from the
// verified token, never from a query parameter.
func (h *Handler) ListCartItems(c *gin.Context) {
	email := middleware.VerifiedEmail(c)

	cursor, err := h.DB.Collection("carts").Find(context.TODO(), bson.M{"email": email})
	if err != nil {
		respondStoreError(c, "ListCartItems: find", err)
		return
	}
	defer cursor.Close(context.TODO())

	items := make([]models.CartItem, 0)
	if err := cursor.All(context.TODO(), &items); err != nil {
		respondStoreError(c, "ListCartItems: decode", err)
		return
	}

	respondData(c, http.StatusOK, items)
}

type addCartItemRequest struct {
	MenuItemID string  `json:"menuItemId" binding:"required"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	Specialist string  `json:"specialist"`
}

// AddCartItem inserts a cart item owned by the caller. Any email in
// the body is ignored.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "menuItemId is required")
		return
	}

	item := models.CartItem{
		ID:         primitive.NewObjectID(),
		Email:      middleware.VerifiedEmail(c),
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
		Specialist: req.Specialist,
	}

	if _, err := h.DB.Collection("carts").InsertOne(context.TODO(), item); err != nil {
		respondStoreError(c, "AddCartItem: insert", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": item.ID.Hex()})
}

// UpdateCartItem merge-patches a cart item. The owner email is part of
// the filter, so a foreign item looks identical to a missing one.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	var req struct {
		Name       *string  `json:"name"`
		Image      *string  `json:"image"`
		Price      *float64 `json:"price"`
		Specialist *string  `json:"specialist"`
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
	if len(updateFields) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	filter := bson.M{"_id": id, "email": middleware.VerifiedEmail(c)}
	result, err := h.DB.Collection("carts").UpdateOne(context.TODO(), filter, bson.M{"$set": updateFields})
	if err != nil {
		respondStoreError(c, "UpdateCartItem: update", err)
		return
	}
	if result.MatchedCount == 0 {
		respondError(c, http.StatusNotFound, "Cart item not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// RemoveCartItem deletes one of the caller's cart items.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	filter := bson.M{"_id": id, "email": middleware.VerifiedEmail(c)}
	result, err := h.DB.Collection("carts").DeleteOne(context.TODO(), filter)
	if err != nil {
		respondStoreError(c, "RemoveCartItem: delete", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "Cart item not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}
