package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/services/dto"
	"mentorhub_backend/pkg/apperrors"
)

func newUserFixture(t *testing.T, role models.UserRole) (UserService, *fakeUserRepo, string) {
	t.Helper()
	userRepo := newFakeUserRepo()
	user := &models.User{
		Role:           role,
		FullName:       "Данияр Студентов",
		Email:          "daniyar@test.com",
		Phone:          "+77001234567",
		Degree:         "Computer Science",
		GraduationYear: 2025,
	}
	if role != models.UserRoleStudent {
		user.CurrentProfession = "Backend Engineer"
	}
	require.NoError(t, userRepo.Create(nil, user))
	return NewUserService(userRepo), userRepo, user.ID
}

// TestGetCurrentUser - профиль возвращается по id
func TestGetCurrentUser(t *testing.T) {
	t.Parallel()

	svc, _, userID := newUserFixture(t, models.UserRoleStudent)

	resp, err := svc.GetCurrentUser(nil, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "daniyar@test.com", resp.Email)

	_, err = svc.GetCurrentUser(nil, "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// TestUpdateRole_ToMentor - студент становится ментором, профессия обязательна
func TestUpdateRole_ToMentor(t *testing.T) {
	t.Parallel()

	svc, userRepo, userID := newUserFixture(t, models.UserRoleStudent)

	// Без профессии переход невозможен
	_, err := svc.UpdateRole(nil, userID, &dto.UpdateRoleRequest{Role: models.UserRoleMentor})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	resp, err := svc.UpdateRole(nil, userID, &dto.UpdateRoleRequest{
		Role:              models.UserRoleMentor,
		CurrentProfession: "Backend Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleMentor, resp.Role)
	assert.Equal(t, "Backend Engineer", resp.CurrentProfession)
	assert.Equal(t, models.UserRoleMentor, userRepo.users[userID].Role)
}

// TestUpdateRole_BackToStudentRejected - вернуться в STUDENT нельзя
func TestUpdateRole_BackToStudentRejected(t *testing.T) {
	t.Parallel()

	svc, _, userID := newUserFixture(t, models.UserRoleMentor)

	_, err := svc.UpdateRole(nil, userID, &dto.UpdateRoleRequest{Role: models.UserRoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

// TestUpdateRoleFields_PartialUpdate - обновляются только переданные поля
func TestUpdateRoleFields_PartialUpdate(t *testing.T) {
	t.Parallel()

	svc, _, userID := newUserFixture(t, models.UserRoleAlumni)

	profession := "Data Engineer"
	linkedIn := "https://linkedin.com/in/daniyar"
	resp, err := svc.UpdateRoleFields(nil, userID, &dto.UpdateRoleFieldsRequest{
		CurrentProfession: &profession,
		LinkedIn:          &linkedIn,
	})
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", resp.CurrentProfession)
	assert.Equal(t, linkedIn, resp.LinkedIn)
	// Нетронутые поля сохраняют значение
	assert.Equal(t, "Computer Science", resp.Degree)
	assert.Equal(t, 2025, resp.GraduationYear)
}

// TestUpdateRoleFields_StudentForbidden - студенту ролевые поля недоступны
func TestUpdateRoleFields_StudentForbidden(t *testing.T) {
	t.Parallel()

	svc, _, userID := newUserFixture(t, models.UserRoleStudent)

	degree := "Math"
	_, err := svc.UpdateRoleFields(nil, userID, &dto.UpdateRoleFieldsRequest{Degree: &degree})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

// TestUpdateRoleFields_BlankRejected - пустое значение не затирает поле
func TestUpdateRoleFields_BlankRejected(t *testing.T) {
	t.Parallel()

	svc, _, userID := newUserFixture(t, models.UserRoleMentor)

	blank := "   "
	_, err := svc.UpdateRoleFields(nil, userID, &dto.UpdateRoleFieldsRequest{Degree: &blank})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	badYear := -1
	_, err = svc.UpdateRoleFields(nil, userID, &dto.UpdateRoleFieldsRequest{GraduationYear: &badYear})
	require.Error(t, err)
}
