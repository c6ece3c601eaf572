package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Write acknowledgements are returned to clients verbatim, in the shape the
// MongoDB drivers report them.

type InsertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateAck struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type DeleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// InsertAckFrom converts a driver result.
func InsertAckFrom(res *mongo.InsertOneResult) InsertAck {
	return InsertAck{Acknowledged: true, InsertedID: idString(res.InsertedID)}
}

// UpdateAckFrom converts a driver result.
func UpdateAckFrom(res *mongo.UpdateResult) UpdateAck {
	ack := UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		id := idString(res.UpsertedID)
		ack.UpsertedID = &id
	}
	return ack
}

// DeleteAckFrom converts a driver result.
func DeleteAckFrom(res *mongo.DeleteResult) DeleteAck {
	return DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	}
	return ""
}
