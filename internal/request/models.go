package request

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusDelivered = "delivered"
)

type Requester struct {
	Email string `json:"Email" bson:"Email" binding:"required,email"`
	Name  string `json:"Name,omitempty" bson:"Name,omitempty"`
	Image string `json:"Image,omitempty" bson:"Image,omitempty"`
}

// Donator is the listing owner as it looked when the request was made.
type Donator struct {
	Image string `json:"Image,omitempty" bson:"Image,omitempty"`
	Name  string `json:"Name,omitempty" bson:"Name,omitempty"`
	Email string `json:"Email,omitempty" bson:"Email,omitempty"`
}

// Request is a pickup request stored in the requests collection. FoodId
// refers to a listing by value; nothing keeps the two in sync, so the
// listing fields here are a snapshot and FoodId may dangle.
type Request struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FoodId          string             `json:"FoodId" bson:"FoodId" binding:"required,objectid"`
	FoodName        string             `json:"FoodName,omitempty" bson:"FoodName,omitempty"`
	FoodImage       string             `json:"FoodImage,omitempty" bson:"FoodImage,omitempty"`
	PickupLocation  string             `json:"PickupLocation,omitempty" bson:"PickupLocation,omitempty"`
	ExpiredDateTime *time.Time         `json:"ExpiredDateTime,omitempty" bson:"ExpiredDateTime,omitempty"`
	AdditionalNotes string             `json:"AdditionalNotes,omitempty" bson:"AdditionalNotes,omitempty"`
	Donator         *Donator           `json:"Donator,omitempty" bson:"Donator,omitempty"`
	Requester       Requester          `json:"Requester" bson:"Requester" binding:"required"`
	RequestDate     time.Time          `json:"RequestDate" bson:"RequestDate"`
	DonationMoney   float64            `json:"DonationMoney,omitempty" bson:"DonationMoney,omitempty" binding:"gte=0"`
	Status          string             `json:"Status" bson:"Status" binding:"omitempty,oneof=pending accepted rejected delivered"`
}

// StatusUpdate is the only body PATCH /requests/:id accepts.
type StatusUpdate struct {
	Status string `json:"Status" binding:"required,oneof=pending accepted rejected delivered"`
}
