package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	UserName string             `bson:"userName" json:"userName"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"` // absent means patient
}

// IsAdmin treats a missing role as non-admin.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
