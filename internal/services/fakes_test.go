package services

import (
	"sort"

	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
In-memory двойники репозиториев для юнит-тестов сервисов.
Аргумент *gorm.DB игнорируется (в тестах передается nil),
поведение повторяет контракт настоящих репозиториев.
*/

type fakeUserRepo struct {
	users map[string]*models.User // по ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
		if u.Phone == user.Phone {
			return repositories.ErrPhoneTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateRefreshToken(_ *gorm.DB, userID, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(_ *gorm.DB, userID string) error {
	if u, ok := r.users[userID]; ok {
		u.RefreshToken = ""
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ *gorm.DB, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type linkKey struct {
	mentorUserID  string
	studentUserID string
}

type fakeMentorshipRepo struct {
	userRepo *fakeUserRepo
	mentors  map[string]*models.Mentor  // по UserID
	students map[string]*models.Student // по UserID
	links    map[linkKey]bool
}

func newFakeMentorshipRepo(userRepo *fakeUserRepo) *fakeMentorshipRepo {
	return &fakeMentorshipRepo{
		userRepo: userRepo,
		mentors:  map[string]*models.Mentor{},
		students: map[string]*models.Student{},
		links:    map[linkKey]bool{},
	}
}

func (r *fakeMentorshipRepo) FindMentor(_ *gorm.DB, userID string) (*models.Mentor, error) {
	m, ok := r.mentors[userID]
	if !ok {
		return nil, repositories.ErrMentorNotFound
	}
	return m, nil
}

func (r *fakeMentorshipRepo) EnsureMentor(_ *gorm.DB, userID string) (*models.Mentor, error) {
	if m, ok := r.mentors[userID]; ok {
		return m, nil
	}
	m := &models.Mentor{UserID: userID}
	m.ID = uuid.NewString()
	r.mentors[userID] = m
	return m, nil
}

func (r *fakeMentorshipRepo) EnsureStudent(_ *gorm.DB, userID string) (*models.Student, error) {
	if s, ok := r.students[userID]; ok {
		return s, nil
	}
	s := &models.Student{UserID: userID}
	s.ID = uuid.NewString()
	r.students[userID] = s
	return s, nil
}

func (r *fakeMentorshipRepo) Link(db *gorm.DB, mentorUserID, studentUserID string) error {
	if _, err := r.EnsureStudent(db, studentUserID); err != nil {
		return err
	}
	if _, err := r.EnsureMentor(db, mentorUserID); err != nil {
		return err
	}
	r.links[linkKey{mentorUserID, studentUserID}] = true
	return nil
}

func (r *fakeMentorshipRepo) Unlink(_ *gorm.DB, mentorUserID, studentUserID string) error {
	delete(r.links, linkKey{mentorUserID, studentUserID})
	return nil
}

func (r *fakeMentorshipRepo) MentorsOf(db *gorm.DB, studentUserID string) ([]models.User, error) {
	var mentors []models.User
	for key := range r.links {
		if key.studentUserID != studentUserID {
			continue
		}
		if u, err := r.userRepo.FindByID(db, key.mentorUserID); err == nil {
			mentors = append(mentors, *u)
		}
	}
	sort.Slice(mentors, func(i, j int) bool {
		return mentors[i].FullName < mentors[j].FullName
	})
	return mentors, nil
}

func (r *fakeMentorshipRepo) CountMentors(_ *gorm.DB, studentUserID string) (int64, error) {
	var count int64
	for key := range r.links {
		if key.studentUserID == studentUserID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMentorshipRepo) CountStudents(_ *gorm.DB, mentorUserID string) (int64, error) {
	var count int64
	for key := range r.links {
		if key.mentorUserID == mentorUserID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMentorshipRepo) UpdateMentor(_ *gorm.DB, mentor *models.Mentor) error {
	r.mentors[mentor.UserID] = mentor
	return nil
}
