package course

import "gorm.io/gorm"

// Option is an alternative of a choice task.
type Option struct {
	gorm.Model
	TaskID    uint   `json:"taskId" gorm:"index;not null"`
	Text      string `json:"option" gorm:"column:option_text;type:varchar(80);not null"`
	IsCorrect bool   `json:"isCorrect" gorm:"not null;default:false"`
}

func (Option) TableName() string {
	return "options"
}
