package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a doctor/specialist listing shown to every visitor.
type MenuItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image" json:"image"`
	Price      float64            `bson:"price" json:"price"`
	Specialist string             `bson:"specialist" json:"specialist"`
	Location   string             `bson:"location" json:"location"`
	Available  bool               `bson:"available" json:"available"`
	Details    string             `bson:"details" json:"details"`
}
