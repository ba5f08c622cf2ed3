package models

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// User is an account row. Hash is the server-issued access key the user
// presents at sign-in. SavedPosts holds the ids of posts the user saved;
// membership is set-like, the repository never appends an id twice.
type User struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Username   string     `json:"username"`
	Hash       string     `json:"-" gorm:"uniqueIndex"`
	SavedPosts Int64Array `json:"saved_posts" gorm:"type:bigint[]"`
}

type SignUpRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=2,max=50"`
}

type SignInRequest struct {
	Hash string `json:"hash" form:"hash" validate:"required"`
}

// TokenClaims are custom claims extending standard jwt.RegisteredClaims
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
