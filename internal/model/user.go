package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the admin identity behind the portfolio. Created at
// registration, read at login, never mutated here.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Name         string        `bson:"name"           json:"name"`
	Email        string        `bson:"email"          json:"email"`
	PasswordHash string        `bson:"password_hash"  json:"-"`
	CreatedAt    time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"     json:"updatedAt"`
}
