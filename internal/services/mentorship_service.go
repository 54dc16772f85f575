package services

import (
	"encoding/json"
	"strings"

	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/services/dto"
	"mentorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MentorshipService interface {
	Subscribe(db *gorm.DB, studentUserID, mentorUserID string) (*dto.StudentMentorsResponse, error)
	UnsubscribeMentor(db *gorm.DB, studentUserID, mentorUserID string) error
	UnsubscribeStudent(db *gorm.DB, mentorUserID, studentUserID string) error
	MentorCount(db *gorm.DB, studentUserID string) (int64, error)
	StudentCount(db *gorm.DB, mentorUserID string) (int64, error)
	MentorProfile(db *gorm.DB, mentorUserID string) (*dto.MentorResponse, error)
	UpdateMentorProfile(db *gorm.DB, mentorUserID string, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error)
}

type MentorshipServiceImpl struct {
	mentorshipRepo repositories.MentorshipRepository
	userRepo       repositories.UserRepository
}

func NewMentorshipService(
	mentorshipRepo repositories.MentorshipRepository,
	userRepo repositories.UserRepository,
) MentorshipService {
	return &MentorshipServiceImpl{
		mentorshipRepo: mentorshipRepo,
		userRepo:       userRepo,
	}
}

// Subscribe - студент подписывается на ментора.
// Записи Student/Mentor создаются лениво; повторная подписка - no-op.
func (s *MentorshipServiceImpl) Subscribe(db *gorm.DB, studentUserID, mentorUserID string) (*dto.StudentMentorsResponse, error) {
	target, err := s.userRepo.FindByID(db, mentorUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if target.Role != models.UserRoleMentor {
		return nil, apperrors.ErrNotAMentor
	}

	if err := s.mentorshipRepo.Link(db, mentorUserID, studentUserID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.studentMentors(db, studentUserID)
}

// UnsubscribeMentor - студент отписывается от ментора.
// Отсутствующая подписка или отсутствующие записи - не ошибка.
func (s *MentorshipServiceImpl) UnsubscribeMentor(db *gorm.DB, studentUserID, mentorUserID string) error {
	if err := s.mentorshipRepo.Unlink(db, mentorUserID, studentUserID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// UnsubscribeStudent - ментор отписывает студента (зеркальная операция)
func (s *MentorshipServiceImpl) UnsubscribeStudent(db *gorm.DB, mentorUserID, studentUserID string) error {
	if err := s.mentorshipRepo.Unlink(db, mentorUserID, studentUserID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MentorCount - сколько менторов у студента (0, если записи еще нет)
func (s *MentorshipServiceImpl) MentorCount(db *gorm.DB, studentUserID string) (int64, error) {
	count, err := s.mentorshipRepo.CountMentors(db, studentUserID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// StudentCount - сколько студентов у ментора (0, если записи еще нет)
func (s *MentorshipServiceImpl) StudentCount(db *gorm.DB, mentorUserID string) (int64, error) {
	count, err := s.mentorshipRepo.CountStudents(db, mentorUserID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// MentorProfile - текущие настройки менторского профиля.
// Запись создается лениво, поэтому ее отсутствие - не ошибка:
// возвращаются значения по умолчанию.
func (s *MentorshipServiceImpl) MentorProfile(db *gorm.DB, mentorUserID string) (*dto.MentorResponse, error) {
	mentor, err := s.mentorshipRepo.FindMentor(db, mentorUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMentorNotFound) {
			return &dto.MentorResponse{
				UserID:    mentorUserID,
				SkillTags: []string{},
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	tags := []string{}
	if len(mentor.SkillTags) > 0 {
		if err := json.Unmarshal(mentor.SkillTags, &tags); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return &dto.MentorResponse{
		UserID:                  mentor.UserID,
		IsAvailableForMentoring: mentor.IsAvailableForMentoring,
		SkillTags:               tags,
	}, nil
}

// UpdateMentorProfile - настройки менторского профиля:
// доступность и skill-теги (не более трех, без дублей)
func (s *MentorshipServiceImpl) UpdateMentorProfile(db *gorm.DB, mentorUserID string, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	tags := normalizeSkillTags(req.SkillTags)
	if len(tags) > models.MaxSkillTags {
		return nil, apperrors.ErrTooManySkillTags
	}

	mentor, err := s.mentorshipRepo.EnsureMentor(db, mentorUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	mentor.IsAvailableForMentoring = req.IsAvailableForMentoring
	mentor.SkillTags = raw

	if err := s.mentorshipRepo.UpdateMentor(db, mentor); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MentorResponse{
		UserID:                  mentor.UserID,
		IsAvailableForMentoring: mentor.IsAvailableForMentoring,
		SkillTags:               tags,
	}, nil
}

func (s *MentorshipServiceImpl) studentMentors(db *gorm.DB, studentUserID string) (*dto.StudentMentorsResponse, error) {
	mentors, err := s.mentorshipRepo.MentorsOf(db, studentUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.StudentMentorsResponse{
		StudentUserID: studentUserID,
		Mentors:       make([]dto.MentorSummary, 0, len(mentors)),
	}
	for _, m := range mentors {
		resp.Mentors = append(resp.Mentors, dto.MentorSummary{
			ID:                m.ID,
			FullName:          m.FullName,
			Email:             m.Email,
			CurrentProfession: m.CurrentProfession,
		})
	}
	return resp, nil
}

func normalizeSkillTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
