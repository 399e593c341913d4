package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Visitor is the older walk-in registration shape. One approval flag for the whole group.
type Visitor struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" validate:"required"`
	Index      string             `json:"index" bson:"index" validate:"required"`
	ImageURL   string             `json:"imageURL" bson:"imageURL" validate:"required"`
	Seats      string             `json:"seats" bson:"seats" validate:"required"`
	IsApproves bool               `json:"isApproves" bson:"isApproves"`
	Users      []VisitorUser      `json:"users" bson:"users" validate:"required,min=1,dive"`
}

type VisitorUser struct {
	Username   string   `json:"username" bson:"username" validate:"required"`
	Batch      string   `json:"batch" bson:"batch" validate:"required"`
	Department string   `json:"department" bson:"department" validate:"required"`
	Email      string   `json:"email" bson:"email" validate:"required,email"`
	Faculty    string   `json:"faculty" bson:"faculty" validate:"required"`
	FoodList   []string `json:"foodList" bson:"foodList" validate:"required"`
	Index      string   `json:"index" bson:"index" validate:"required"`
	TotalPrice float64  `json:"totalprice" bson:"totalprice"`
	Whatsapp   string   `json:"whatsapp" bson:"whatsapp" validate:"required"`
}

// Primary is the visitor user who receives the mails.
func (v *Visitor) Primary() *VisitorUser {
	if len(v.Users) == 0 {
		return nil
	}
	return &v.Users[0]
}
