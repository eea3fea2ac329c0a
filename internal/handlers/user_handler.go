package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorhouse/booking-api/internal/middleware"
	"github.com/doctorhouse/booking-api/internal/models"
	"github.com/doctorhouse/booking-api/internal/utils"
)

type issueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken mints a one-hour credential for the supplied email. No
// account lookup happens here: any email is accepted, matching the
// registration flow where the account may not exist yet.
func (h *Handler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	token, err := utils.GenerateJWT(req.Email)
	if err != nil {
		respondStoreError(c, "IssueToken: sign", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresIn": int(utils.TokenTTL.Seconds()),
	})
}

// ListUsers returns every user document. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	cursor, err := h.DB.Collection("users").Find(context.TODO(), bson.M{})
	if err != nil {
		respondStoreError(c, "ListUsers: find", err)
		return
	}
	defer cursor.Close(context.TODO())

	users := make([]models.User, 0)
	if err := cursor.All(context.TODO(), &users); err != nil {
		respondStoreError(c, "ListUsers: decode", err)
		return
	}

	respondData(c, http.StatusOK, users)
}

// CheckAdmin reports whether :email has the admin role. A caller may
// only ask about their own email.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")
	if email != middleware.VerifiedEmail(c) {
		respondError(c, http.StatusForbidden, "forbidden access")
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.TODO(), bson.M{"email": email}).Decode(&user)
	if err != nil && err != mongo.ErrNoDocuments {
		respondStoreError(c, "CheckAdmin: find", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "admin": err == nil && user.IsAdmin()})
}

type registerUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	UserName string `json:"userName"`
}

// RegisterUser inserts a user document unless one already exists for
// the email. The existence check and the insert are two store calls,
// so two concurrent registrations of the same new email can both pass
// the check; the window is accepted rather than papered over.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	collection := h.DB.Collection("users")

	err := collection.FindOne(context.TODO(), bson.M{"email": req.Email}).Err()
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "insertedId": nil, "data": gin.H{"message": "user already exists"}})
		return
	}
	if err != mongo.ErrNoDocuments {
		respondStoreError(c, "RegisterUser: find", err)
		return
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Email:    req.Email,
		UserName: req.UserName,
	}
	if _, err := collection.InsertOne(context.TODO(), user); err != nil {
		respondStoreError(c, "RegisterUser: insert", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": user.ID.Hex()})
}

// ElevateUser sets the admin role on the user with the given id.
func (h *Handler) ElevateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	update := bson.M{"$set": bson.M{"role": models.RoleAdmin}}
	result, err := h.DB.Collection("users").UpdateOne(context.TODO(), bson.M{"_id": id}, update)
	if err != nil {
		respondStoreError(c, "ElevateUser: update", err)
		return
	}
	if result.MatchedCount == 0 {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// DeleteUser removes a user document by id.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	result, err := h.DB.Collection("users").DeleteOne(context.TODO(), bson.M{"_id": id})
	if err != nil {
		respondStoreError(c, "DeleteUser: delete", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}

// ResolveUsername maps a username to the email registered under it.
func (h *Handler) ResolveUsername(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	err := h.DB.Collection("users").FindOne(context.TODO(), bson.M{"userName": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		respondError(c, http.StatusNotFound, "Username not found")
		return
	}
	if err != nil {
		respondStoreError(c, "ResolveUsername: find", err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"email": user.Email})
}
