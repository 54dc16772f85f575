package repositories

import (
	"errors"

	"mentorhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMentorNotFound = errors.New("mentor record not found")

// MentorshipRepository обслуживает связь ментор-студент.
// Связь хранится одной строкой в mentor_students, поэтому обе стороны
// всегда согласованы; добавление и удаление идемпотентны.
type MentorshipRepository interface {
	FindMentor(db *gorm.DB, userID string) (*models.Mentor, error)
	EnsureMentor(db *gorm.DB, userID string) (*models.Mentor, error)
	EnsureStudent(db *gorm.DB, userID string) (*models.Student, error)

	// Link добавляет подписку (no-op, если уже есть); недостающие
	// записи Mentor/Student создаются в той же транзакции
	Link(db *gorm.DB, mentorUserID, studentUserID string) error

	// Unlink убирает подписку; отсутствие связи - не ошибка
	Unlink(db *gorm.DB, mentorUserID, studentUserID string) error

	MentorsOf(db *gorm.DB, studentUserID string) ([]models.User, error)
	CountMentors(db *gorm.DB, studentUserID string) (int64, error)
	CountStudents(db *gorm.DB, mentorUserID string) (int64, error)

	UpdateMentor(db *gorm.DB, mentor *models.Mentor) error
}

type mentorshipRepository struct{}

func NewMentorshipRepository() MentorshipRepository {
	return &mentorshipRepository{}
}

func (r *mentorshipRepository) FindMentor(db *gorm.DB, userID string) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := db.First(&mentor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorshipRepository) EnsureMentor(db *gorm.DB, userID string) (*models.Mentor, error) {
	var mentor models.Mentor
	err := db.Where(models.Mentor{UserID: userID}).FirstOrCreate(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorshipRepository) EnsureStudent(db *gorm.DB, userID string) (*models.Student, error) {
	var student models.Student
	err := db.Where(models.Student{UserID: userID}).FirstOrCreate(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *mentorshipRepository) Link(db *gorm.DB, mentorUserID, studentUserID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.EnsureStudent(tx, studentUserID); err != nil {
			return err
		}
		if _, err := r.EnsureMentor(tx, mentorUserID); err != nil {
			return err
		}
		link := models.MentorStudent{
			MentorUserID:  mentorUserID,
			StudentUserID: studentUserID,
		}
		// Повторная подписка - no-op за счет составного PK
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
}

func (r *mentorshipRepository) Unlink(db *gorm.DB, mentorUserID, studentUserID string) error {
	return db.
		Where("mentor_user_id = ? AND student_user_id = ?", mentorUserID, studentUserID).
		Delete(&models.MentorStudent{}).Error
}

func (r *mentorshipRepository) MentorsOf(db *gorm.DB, studentUserID string) ([]models.User, error) {
	var mentors []models.User
	err := db.Model(&models.User{}).
		Joins("JOIN mentor_students ms ON ms.mentor_user_id = users.id").
		Where("ms.student_user_id = ?", studentUserID).
		Order("users.full_name").
		Find(&mentors).Error
	if err != nil {
		return nil, err
	}
	return mentors, nil
}

func (r *mentorshipRepository) CountMentors(db *gorm.DB, studentUserID string) (int64, error) {
	var count int64
	err := db.Model(&models.MentorStudent{}).
		Where("student_user_id = ?", studentUserID).
		Count(&count).Error
	return count, err
}

func (r *mentorshipRepository) CountStudents(db *gorm.DB, mentorUserID string) (int64, error) {
	var count int64
	err := db.Model(&models.MentorStudent{}).
		Where("mentor_user_id = ?", mentorUserID).
		Count(&count).Error
	return count, err
}

func (r *mentorshipRepository) UpdateMentor(db *gorm.DB, mentor *models.Mentor) error {
	return db.Save(mentor).Error
}
