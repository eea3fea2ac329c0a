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

// ListAppointments returns the caller's bookings only.
func (h *Handler) ListAppointments(c *gin.Context) {
	email := middleware.VerifiedEmail(c)

	cursor, err := h.DB.Collection("appointment").Find(context.TODO(), bson.M{"patientEmail": email})
	if err != nil {
		respondStoreError(c, "ListAppointments: find", err)
		return
	}
	defer cursor.Close(context.TODO())

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(context.TODO(), &appointments); err != nil {
		respondStoreError(c, "ListAppointments: decode", err)
		return
	}

	respondData(c, http.StatusOK, appointments)
}

// ListAllAppointments returns every booking. Admin only.
func (h *Handler) ListAllAppointments(c *gin.Context) {
	cursor, err := h.DB.Collection("appointment").Find(context.TODO(), bson.M{})
	if err != nil {
		respondStoreError(c, "ListAllAppointments: find", err)
		return
	}
	defer cursor.Close(context.TODO())

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(context.TODO(), &appointments); err != nil {
		respondStoreError(c, "ListAllAppointments: decode", err)
		return
	}

	respondData(c, http.StatusOK, appointments)
}

type createAppointmentRequest struct {
	DoctorID     string `json:"doctorId" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time"`
	PatientName  string `json:"patientName"`
	PatientAge   int    `json:"patientAge"`
	PatientPhone string `json:"patientPhone"`
	Message      string `json:"message"`
}

// CreateAppointment books against a doctor listing. The owning email
// and the pending status are set here, never taken from the body.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "doctorId and date are required")
		return
	}

	apt := models.Appointment{
		ID:           primitive.NewObjectID(),
		PatientEmail: middleware.VerifiedEmail(c),
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Time:         req.Time,
		Status:       models.AppointmentStatusPending,
		PatientName:  req.PatientName,
		PatientAge:   req.PatientAge,
		PatientPhone: req.PatientPhone,
		Message:      req.Message,
	}

	if _, err := h.DB.Collection("appointment").InsertOne(context.TODO(), apt); err != nil {
		respondStoreError(c, "CreateAppointment: insert", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": apt.ID.Hex()})
}

// UpdateAppointment merge-patches one of the caller's bookings. The
// owner email rides in the filter, so someone else's booking reads as
// not found.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	var req struct {
		Date         *string `json:"date"`
		Time         *string `json:"time"`
		Status       *string `json:"status"`
		PatientName  *string `json:"patientName"`
		PatientAge   *int    `json:"patientAge"`
		PatientPhone *string `json:"patientPhone"`
		Message      *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updateFields := bson.M{}
	if req.Date != nil {
		updateFields["date"] = *req.Date
	}
	if req.Time != nil {
		updateFields["time"] = *req.Time
	}
	if req.Status != nil {
		updateFields["status"] = *req.Status
	}
	if req.PatientName != nil {
		updateFields["patientName"] = *req.PatientName
	}
	if req.PatientAge != nil {
		updateFields["patientAge"] = *req.PatientAge
	}
	if req.PatientPhone != nil {
		updateFields["patientPhone"] = *req.PatientPhone
	}
	if req.Message != nil {
		updateFields["message"] = *req.Message
	}
	if len(updateFields) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	filter := bson.M{"_id": id, "patientEmail": middleware.VerifiedEmail(c)}
	result, err := h.DB.Collection("appointment").UpdateOne(context.TODO(), filter, bson.M{"$set": updateFields})
	if err != nil {
		respondStoreError(c, "UpdateAppointment: update", err)
		return
	}
	if result.MatchedCount == 0 {
		respondError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// CancelAppointment deletes one of the caller's bookings.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	filter := bson.M{"_id": id, "patientEmail": middleware.VerifiedEmail(c)}
	result, err := h.DB.Collection("appointment").DeleteOne(context.TODO(), filter)
	if err != nil {
		respondStoreError(c, "CancelAppointment: delete", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}
