package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PublicationEvent is the audit record written in the same transaction that
// publishes a course.
type PublicationEvent struct {
	gorm.Model
	EventID     string         `json:"eventId" gorm:"type:varchar(36);uniqueIndex;not null"`
	CourseID    uint           `json:"courseId" gorm:"index;not null"`
	AuthorID    uint           `json:"authorId" gorm:"index;not null"`
	PublishedAt time.Time      `json:"publishedAt" gorm:"not null"`
	TaskCount   int            `json:"taskCount" gorm:"default:0"`
	Snapshot    datatypes.JSON `json:"snapshot"` // [{order, type, statement}]
}

func (PublicationEvent) TableName() string {
	return "publication_events"
}
