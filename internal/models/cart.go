package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is a doctor listing a patient has selected but not yet booked.
// Email is the owning patient and is always set server-side.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	MenuItemID string             `bson:"menuItemId" json:"menuItemId"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image" json:"image"`
	Price      float64            `bson:"price" json:"price"`
	Specialist string             `bson:"specialist" json:"specialist"`
}
