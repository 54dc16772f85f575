package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaxSkillTags - предел количества skill-тегов у ментора
const MaxSkillTags = 3

type Mentor struct {
	BaseModel
	UserID                  string `gorm:"type:uuid;uniqueIndex;not null"`
	IsAvailableForMentoring bool   `gorm:"default:false"`
	SkillTags               datatypes.JSON

	User *User `gorm:"foreignKey:UserID"`
}

type Student struct {
	BaseModel
	UserID string `gorm:"type:uuid;uniqueIndex;not null"`

	User *User `gorm:"foreignKey:UserID"`
}

// MentorStudent - связь ментор-студент. Обе стороны отношения живут в одной
// строке, поэтому рассинхронизация между "списком менторов" и "списком
// студентов" невозможна по построению. Ключи - user id обеих сторон.
type MentorStudent struct {
	MentorUserID  string    `gorm:"type:uuid;primaryKey"`
	StudentUserID string    `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time `gorm:"default:now()"`
}

func (MentorStudent) TableName() string {
	return "mentor_students"
}
