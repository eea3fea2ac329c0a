package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const AppointmentStatusPending = "pending"

// Appointment is a booking against a doctor listing. PatientEmail is
// assigned from the verified token, never from the request body.
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientEmail string             `bson:"patientEmail" json:"patientEmail"`
	DoctorID     string             `bson:"doctorId" json:"doctorId"`
	Date         string             `bson:"date" json:"date"`
	Time         string             `bson:"time" json:"time"`
	Status       string             `bson:"status" json:"status"`
	PatientName  string             `bson:"patientName" json:"patientName"`
	PatientAge   int                `bson:"patientAge" json:"patientAge"`
	PatientPhone string             `bson:"patientPhone" json:"patientPhone"`
	Message      string             `bson:"message" json:"message"`
}
