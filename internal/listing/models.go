package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusAvailable = "available"
	StatusRequested = "requested"
	StatusDelivered = "delivered"
)

// Donator identifies who posted a listing. Email is the ownership key used
// by the "my listings" view.
type Donator struct {
	Image string `json:"Image" bson:"Image"`
	Name  string `json:"Name" bson:"Name"`
	Email string `json:"Email" bson:"Email" binding:"required,email"`
}

// Listing is a food donation stored in the foods collection. Field names on
// the wire and in storage are the ones the web client already uses.
type Listing struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FoodName        string             `json:"FoodName" bson:"FoodName" binding:"required"`
	FoodImage       string             `json:"FoodImage" bson:"FoodImage" binding:"required,url|uri"`
	FoodQuantity    int                `json:"FoodQuantity" bson:"FoodQuantity" binding:"required,gt=0"`
	PickupLocation  string             `json:"PickupLocation" bson:"PickupLocation" binding:"required"`
	ExpiredDateTime time.Time          `json:"ExpiredDateTime" bson:"ExpiredDateTime" binding:"required"`
	AdditionalNotes string             `json:"AdditionalNotes,omitempty" bson:"AdditionalNotes,omitempty"`
	FoodStatus      string             `json:"FoodStatus,omitempty" bson:"FoodStatus,omitempty" binding:"omitempty,oneof=available requested delivered"`
	Donator         Donator            `json:"Donator" bson:"Donator" binding:"required"`
}

// Fields is the set of listing fields a replace (PUT) may write. Status and
// id are never touched by it.
type Fields struct {
	FoodImage       string    `json:"FoodImage" bson:"FoodImage" binding:"required,url|uri"`
	FoodName        string    `json:"FoodName" bson:"FoodName" binding:"required"`
	Donator         Donator   `json:"Donator" bson:"Donator" binding:"required"`
	FoodQuantity    int       `json:"FoodQuantity" bson:"FoodQuantity" binding:"required,gt=0"`
	PickupLocation  string    `json:"PickupLocation" bson:"PickupLocation" binding:"required"`
	ExpiredDateTime time.Time `json:"ExpiredDateTime" bson:"ExpiredDateTime" binding:"required"`
	AdditionalNotes string    `json:"AdditionalNotes" bson:"AdditionalNotes"`
}

// Apply copies f onto l.
func (f Fields) Apply(l *Listing) {
	l.FoodImage = f.FoodImage
	l.FoodName = f.FoodName
	l.Donator = f.Donator
	l.FoodQuantity = f.FoodQuantity
	l.PickupLocation = f.PickupLocation
	l.ExpiredDateTime = f.ExpiredDateTime
	l.AdditionalNotes = f.AdditionalNotes
}
