package dto

import "strings"

// SubscribeRequest - студент подписывается на ментора (по user id ментора)
type SubscribeRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
}

// UnsubscribeMentorRequest - студент отписывается от ментора
type UnsubscribeMentorRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
}

// UnsubscribeStudentRequest - ментор отписывает студента
type UnsubscribeStudentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

// MentorSummary - краткая карточка ментора в списке подписок студента
type MentorSummary struct {
	ID                string `json:"id"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	CurrentProfession string `json:"currentProfession,omitempty"`
}

// StudentMentorsResponse - актуальное состояние подписок студента
type StudentMentorsResponse struct {
	StudentUserID string          `json:"studentUserId"`
	Mentors       []MentorSummary `json:"mentors"`
}

// UpdateMentorRequest - настройки менторского профиля
type UpdateMentorRequest struct {
	IsAvailableForMentoring bool     `json:"isAvailableForMentoring"`
	SkillTags               []string `json:"skillTags" validate:"max=3,dive,required"`
}

// Normalize чистит skill-теги до валидации: лимит max=3 считается
// по нормализованному списку, а не по сырому.
func (r *UpdateMentorRequest) Normalize() {
	seen := make(map[string]bool, len(r.SkillTags))
	tags := make([]string, 0, len(r.SkillTags))
	for _, tag := range r.SkillTags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	r.SkillTags = tags
}

// MentorResponse - менторский профиль
type MentorResponse struct {
	UserID                  string   `json:"userId"`
	IsAvailableForMentoring bool     `json:"isAvailableForMentoring"`
	SkillTags               []string `json:"skillTags"`
}
