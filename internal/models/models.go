package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Picture is one attachment on the media host: the external id used for
// deletion plus the publicly retrievable URL.
type Picture struct {
	ID  string `bson:"public_id" json:"public_id"`
	URL string `bson:"secure_url" json:"secure_url"`
}

// Account is the public profile subdocument nested under a user.
type Account struct {
	Username    string   `bson:"username" json:"username"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Picture     *Picture `bson:"picture,omitempty" json:"picture,omitempty"`
}

type User struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email   string               `bson:"email" json:"email"`
	Token   string               `bson:"token" json:"-"`
	Hash    string               `bson:"hash" json:"-"`
	Salt    string               `bson:"salt" json:"-"`
	Account Account              `bson:"account" json:"account"`
	Rooms   []primitive.ObjectID `bson:"rooms" json:"rooms"`
}

// PublicUser is the owner view embedded in room responses.
type PublicUser struct {
	ID      primitive.ObjectID `json:"id"`
	Account Account            `json:"account"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Account: u.Account}
}

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	RatingValue float64            `bson:"ratingValue" json:"ratingValue"`
	Reviews     int                `bson:"reviews" json:"reviews"`
	Pictures    []Picture          `bson:"pictures" json:"pictures"`
	// Location is the legacy [latitude, longitude] pair backing the 2d index.
	Location  []float64          `bson:"location" json:"location"`
	UserID    primitive.ObjectID `bson:"user" json:"-"`
	CreatedAt time.Time          `bson:"created" json:"created"`
	User      *PublicUser        `bson:"-" json:"user,omitempty"`
}
