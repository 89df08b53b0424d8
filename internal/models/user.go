package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

// ContextUser is the request-context key under which the authentication
// middleware stores the resolved user.
const ContextUser contextKey = "user"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id" json:"-"`
	User_id       string             `bson:"user_id" json:"user_id"`
	Name          *string            `bson:"name" json:"name" validate:"required,max=60"`
	Email         *string            `bson:"email" json:"email" validate:"required,email"`
	Password      *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Role          string             `bson:"role" json:"role" validate:"omitempty,oneof=teacher student"`
	Token         *string            `bson:"token" json:"token,omitempty"`
	Refresh_token *string            `bson:"refresh_token" json:"refresh_token,omitempty"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
}
