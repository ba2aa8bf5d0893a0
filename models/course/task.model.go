package course

import "gorm.io/gorm"

// TaskType enum values
type TaskType string

const (
	TypeOpenText       TaskType = "OPEN_TEXT"
	TypeSingleChoice   TaskType = "SINGLE_CHOICE"
	TypeMultipleChoice TaskType = "MULTIPLE_CHOICE"
)

// TaskTypes is the fixed set every published course must cover, in check order.
var TaskTypes = []TaskType{TypeOpenText, TypeSingleChoice, TypeMultipleChoice}

func (t TaskType) Valid() bool {
	switch t {
	case TypeOpenText, TypeSingleChoice, TypeMultipleChoice:
		return true
	}
	return false
}

// IsChoice reports whether the type carries an option set.
func (t TaskType) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultipleChoice
}

// Task is a learning activity inside a course. Orders within a course always
// form the sequence 1..N.
type Task struct {
	gorm.Model
	Statement string   `json:"statement" gorm:"type:varchar(255);uniqueIndex;not null"`
	Type      TaskType `json:"type" gorm:"type:varchar(20);not null"`
	Order     int      `json:"order" gorm:"column:task_order;not null;index:idx_tasks_course_order,priority:2"`
	CourseID  uint     `json:"courseId" gorm:"not null;index:idx_tasks_course_order,priority:1"`
	Options   []Option `json:"options,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Task) TableName() string {
	return "tasks"
}
