package course

import (
	"errors"
	"fmt"
	"time"

	"coursebuilder/models"

	"gorm.io/gorm"
)

// CourseStatus enum values
type CourseStatus string

const (
	StatusBuilding  CourseStatus = "BUILDING"
	StatusPublished CourseStatus = "PUBLISHED"
)

func (s CourseStatus) Valid() bool {
	return s == StatusBuilding || s == StatusPublished
}

// ErrInvalidStatusTransition is returned by Publish when the course is not BUILDING.
var ErrInvalidStatusTransition = errors.New("course can only be published while BUILDING")

// Course represents a learning course. Status only moves BUILDING -> PUBLISHED,
// through Publish.
type Course struct {
	gorm.Model
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	Description string       `json:"description" gorm:"type:text"`
	Status      CourseStatus `json:"status" gorm:"type:varchar(20);not null;default:'BUILDING'"`
	PublishedAt *time.Time   `json:"publishedAt"`
	AuthorID    uint         `json:"authorId" gorm:"index;not null"`
	Author      *models.User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tasks       []Task       `json:"tasks,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}

// NewCourse builds a course in BUILDING status owned by author.
func NewCourse(title, description string, authorID uint) *Course {
	return &Course{
		Title:       title,
		Description: description,
		Status:      StatusBuilding,
		AuthorID:    authorID,
	}
}

// CanReceiveTasks reports whether tasks may still be added to the course.
func (c *Course) CanReceiveTasks() bool {
	return c.Status == StatusBuilding
}

// Publish moves the course to PUBLISHED and stamps publishedAt. It is the only
// transition the lifecycle allows and cannot be undone.
func (c *Course) Publish(at time.Time) error {
	if c.Status != StatusBuilding {
		return fmt.Errorf("%w (current status %s)", ErrInvalidStatusTransition, c.Status)
	}
	c.Status = StatusPublished
	c.PublishedAt = &at
	return nil
}
