package services

import (
	"strings"

	"mentorhub_backend/internal/auth"
	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/services/dto"
	"mentorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, presentedToken string) (*dto.TokenPair, error)
	Logout(db *gorm.DB, userID string) error
	ChangePassword(db *gorm.DB, userID, oldPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	// Нормализация до валидации: email в нижнем регистре, все поля без пробелов
	req.Role = models.UserRole(strings.TrimSpace(string(req.Role)))
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Degree = strings.TrimSpace(req.Degree)
	req.CurrentProfession = strings.TrimSpace(req.CurrentProfession)
	req.LinkedIn = strings.TrimSpace(req.LinkedIn)

	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Role:              req.Role,
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Degree:            req.Degree,
		GraduationYear:    req.GraduationYear,
		CurrentProfession: req.CurrentProfession,
		LinkedIn:          req.LinkedIn,
		PasswordHash:      hashed,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.ErrEmailAlreadyExists
		case apperrors.Is(err, repositories.ErrPhoneTaken):
			return nil, apperrors.ErrPhoneAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user), nil
}

// validateRegisterRequest - обязательность полей по ролям.
// Набор обязательных полей фиксирован для каждой роли;
// currentProfession требуется только менторам и выпускникам.
func validateRegisterRequest(req *dto.RegisterRequest) error {
	missing := map[string]string{}

	if req.Role == "" {
		missing["role"] = "This field is required"
	} else if !models.ValidRole(req.Role) {
		return apperrors.ErrInvalidUserRole
	}
	if req.FullName == "" {
		missing["fullName"] = "This field is required"
	}
	if req.Email == "" {
		missing["email"] = "This field is required"
	}
	if req.Phone == "" {
		missing["phone"] = "This field is required"
	}
	if req.Degree == "" {
		missing["degree"] = "This field is required"
	}
	if req.GraduationYear == 0 {
		missing["graduationYear"] = "This field is required"
	}
	if strings.TrimSpace(req.Password) == "" {
		missing["password"] = "This field is required"
	}
	if req.Role == models.UserRoleMentor || req.Role == models.UserRoleAlumni {
		if req.CurrentProfession == "" {
			missing["currentProfession"] = "This field is required"
		}
	}

	if len(missing) > 0 {
		return apperrors.ValidationError(missing)
	}
	return nil
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.NewBadRequestError("Email is required")
	}

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// issueTokens генерирует пару токенов и сохраняет новый refresh-токен
// на пользователе. Это точка ротации: прежний токен перестает действовать.
// Если сохранить не удалось, токены наружу не отдаются.
func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateRefreshToken(db, user.ID, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh - полная ротация пары токенов по refresh-токену
func (s *AuthServiceImpl) Refresh(db *gorm.DB, presentedToken string) (*dto.TokenPair, error) {
	if presentedToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	userID, err := s.tokens.ParseRefreshToken(presentedToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	// Токен криптографически валиден, но уже ротирован - значит,
	// нам предъявили устаревшую копию
	if user.RefreshToken != presentedToken {
		return nil, apperrors.ErrRefreshTokenMismatch
	}

	return s.issueTokens(db, user)
}

// Logout - сброс refresh-токена, активная сессия закрывается
func (s *AuthServiceImpl) Logout(db *gorm.DB, userID string) error {
	if err := s.userRepo.ClearRefreshToken(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangePassword - смена пароля с проверкой старого
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.ErrWrongOldPassword
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, userID, hashed); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
