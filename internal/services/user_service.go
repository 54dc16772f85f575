package services

import (
	"strings"

	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/services/dto"
	"mentorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetCurrentUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateRole(db *gorm.DB, userID string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
	UpdateRoleFields(db *gorm.DB, userID string, req *dto.UpdateRoleFieldsRequest) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetCurrentUser - профиль текущего пользователя (без чувствительных полей)
func (s *UserServiceImpl) GetCurrentUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateRole - смена собственной роли. Переход разрешен только в MENTOR
// или ALUMNI (вернуться в STUDENT нельзя); обеим ролям нужна профессия.
func (s *UserServiceImpl) UpdateRole(db *gorm.DB, userID string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if req.Role != models.UserRoleMentor && req.Role != models.UserRoleAlumni {
		return nil, apperrors.ErrInvalidUserRole
	}

	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	profession := strings.TrimSpace(req.CurrentProfession)
	if profession == "" {
		profession = user.CurrentProfession
	}
	if profession == "" {
		return nil, apperrors.ValidationError(map[string]string{
			"currentProfession": "This field is required for the target role",
		})
	}

	user.Role = req.Role
	user.CurrentProfession = profession

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateRoleFields - частичное обновление ролевых полей профиля.
// Доступно только MENTOR и ALUMNI.
func (s *UserServiceImpl) UpdateRoleFields(db *gorm.DB, userID string, req *dto.UpdateRoleFieldsRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	if user.Role != models.UserRoleMentor && user.Role != models.UserRoleAlumni {
		return nil, apperrors.NewForbiddenError("Only mentors and alumni can update role fields")
	}

	if req.Degree != nil {
		degree := strings.TrimSpace(*req.Degree)
		if degree == "" {
			return nil, apperrors.ValidationError(map[string]string{"degree": "Must not be blank"})
		}
		user.Degree = degree
	}
	if req.GraduationYear != nil {
		if *req.GraduationYear <= 0 {
			return nil, apperrors.ValidationError(map[string]string{"graduationYear": "Must be a valid year"})
		}
		user.GraduationYear = *req.GraduationYear
	}
	if req.CurrentProfession != nil {
		profession := strings.TrimSpace(*req.CurrentProfession)
		if profession == "" {
			return nil, apperrors.ValidationError(map[string]string{"currentProfession": "Must not be blank"})
		}
		user.CurrentProfession = profession
	}
	if req.LinkedIn != nil {
		user.LinkedIn = strings.TrimSpace(*req.LinkedIn)
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
