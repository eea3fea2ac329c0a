package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorhouse/booking-api/internal/middleware"
	"github.com/doctorhouse/booking-api/internal/models"
)

// GetProfile returns the caller's profile, keyed by the verified email.
func (h *Handler) GetProfile(c *gin.Context) {
	email := middleware.VerifiedEmail(c)

	var profile models.Profile
	err := h.DB.Collection("profiles").FindOne(context.TODO(), bson.M{"email": email}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		respondStoreError(c, "GetProfile: find", err)
		return
	}

	respondData(c, http.StatusOK, profile)
}

type upsertProfileRequest struct {
	FullName              string `json:"fullName" binding:"required"`
	UserName              string `json:"userName"`
	NationalID            string `json:"nationalId"`
	Gender                string `json:"gender"`
	BloodGroup            string `json:"bloodGroup"`
	Image                 string `json:"image"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}

// UpsertProfile creates or replaces the caller's profile in a single
// store operation, so there is never more than one document per email.
func (h *Handler) UpsertProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "fullName is required")
		return
	}

	email := middleware.VerifiedEmail(c)
	update := bson.M{"$set": bson.M{
		"email":                 email,
		"fullName":              req.FullName,
		"userName":              req.UserName,
		"nationalId":            req.NationalID,
		"gender":                req.Gender,
		"bloodGroup":            req.BloodGroup,
		"image":                 req.Image,
		"emergencyContactName":  req.EmergencyContactName,
		"emergencyContactPhone": req.EmergencyContactPhone,
	}}

	opts := options.Update().SetUpsert(true)
	result, err := h.DB.Collection("profiles").UpdateOne(context.TODO(), bson.M{"email": email}, update, opts)
	if err != nil {
		respondStoreError(c, "UpsertProfile: upsert", err)
		return
	}

	status := http.StatusOK
	if result.UpsertedCount > 0 {
		status = http.StatusCreated
	}
	respondData(c, status, gin.H{
		"matchedCount":  result.MatchedCount,
		"upsertedCount": result.UpsertedCount,
	})
}

// DeleteProfile removes the caller's profile.
func (h *Handler) DeleteProfile(c *gin.Context) {
	email := middleware.VerifiedEmail(c)

	result, err := h.DB.Collection("profiles").DeleteOne(context.TODO(), bson.M{"email": email})
	if err != nil {
		respondStoreError(c, "DeleteProfile: delete", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "Profile not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}
