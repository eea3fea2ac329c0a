package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Profile holds the extended personal data for one user. Email is the
// natural key: at most one profile document exists per email.
type Profile struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                 string             `bson:"email" json:"email"`
	FullName              string             `bson:"fullName" json:"fullName"`
	UserName              string             `bson:"userName" json:"userName"`
	NationalID            string             `bson:"nationalId" json:"nationalId"`
	Gender                string             `bson:"gender" json:"gender"`
	BloodGroup            string             `bson:"bloodGroup" json:"bloodGroup"`
	Image                 string             `bson:"image" json:"image"`
	EmergencyContactName  string             `bson:"emergencyContactName" json:"emergencyContactName"`
	EmergencyContactPhone string             `bson:"emergencyContactPhone" json:"emergencyContactPhone"`
}
