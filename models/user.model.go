package models

import (
	"gorm.io/gorm"
)

// Role enum values
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Role     Role   `json:"role" gorm:"type:varchar(20);not null;default:'STUDENT'"`
	Password string `json:"-" gorm:"default:''"` // bcrypt hash
}

func (User) TableName() string {
	return "users"
}

// IsInstructor reports whether the user may author courses.
func (u User) IsInstructor() bool {
	return u.Role == RoleInstructor
}
