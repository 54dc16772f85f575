package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/services/dto"
	"mentorhub_backend/pkg/apperrors"
)

type mentorshipFixture struct {
	svc      MentorshipService
	userRepo *fakeUserRepo
	repo     *fakeMentorshipRepo
}

func newMentorshipFixture() *mentorshipFixture {
	userRepo := newFakeUserRepo()
	repo := newFakeMentorshipRepo(userRepo)
	return &mentorshipFixture{
		svc:      NewMentorshipService(repo, userRepo),
		userRepo: userRepo,
		repo:     repo,
	}
}

func (f *mentorshipFixture) addUser(t *testing.T, role models.UserRole, fullName string) string {
	t.Helper()
	user := &models.User{
		Role:     role,
		FullName: fullName,
		Email:    uuid.NewString() + "@test.com",
		Phone:    uuid.NewString(),
	}
	require.NoError(t, f.userRepo.Create(nil, user))
	return user.ID
}

// TestSubscribe_Success - подписка создает связь и возвращает
// актуальный список менторов студента
func TestSubscribe_Success(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	studentID := f.addUser(t, models.UserRoleStudent, "Алия Студентова")
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	resp, err := f.svc.Subscribe(nil, studentID, mentorID)
	require.NoError(t, err)

	assert.Equal(t, studentID, resp.StudentUserID)
	require.Len(t, resp.Mentors, 1)
	assert.Equal(t, mentorID, resp.Mentors[0].ID)
	assert.Equal(t, "Бауыржан Менторов", resp.Mentors[0].FullName)

	// Записи Mentor/Student созданы лениво
	_, err = f.repo.FindMentor(nil, mentorID)
	assert.NoError(t, err)
	assert.Contains(t, f.repo.students, studentID)
}

// TestSubscribe_Idempotent - повторная подписка не создает дубликата
func TestSubscribe_Idempotent(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	studentID := f.addUser(t, models.UserRoleStudent, "Алия Студентова")
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	_, err := f.svc.Subscribe(nil, studentID, mentorID)
	require.NoError(t, err)
	resp, err := f.svc.Subscribe(nil, studentID, mentorID)
	require.NoError(t, err)

	assert.Len(t, resp.Mentors, 1)

	count, err := f.svc.MentorCount(nil, studentID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

// TestSubscribe_TargetNotMentor - подписаться можно только на пользователя
// с ролью MENTOR
func TestSubscribe_TargetNotMentor(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	studentID := f.addUser(t, models.UserRoleStudent, "Алия Студентова")
	alumniID := f.addUser(t, models.UserRoleAlumni, "Ербол Выпускников")

	_, err := f.svc.Subscribe(nil, studentID, alumniID)
	assert.ErrorIs(t, err, apperrors.ErrNotAMentor)
}

// TestSubscribe_TargetMissing - подписка на несуществующего пользователя - 404
func TestSubscribe_TargetMissing(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	studentID := f.addUser(t, models.UserRoleStudent, "Алия Студентова")

	_, err := f.svc.Subscribe(nil, studentID, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// TestCounts_BothSides - связь хранится одной строкой, поэтому счетчики
// обеих сторон всегда согласованы
func TestCounts_BothSides(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")
	studentA := f.addUser(t, models.UserRoleStudent, "Алия Студентова")
	studentB := f.addUser(t, models.UserRoleStudent, "Влад Студентов")

	_, err := f.svc.Subscribe(nil, studentA, mentorID)
	require.NoError(t, err)
	_, err = f.svc.Subscribe(nil, studentB, mentorID)
	require.NoError(t, err)

	students, err := f.svc.StudentCount(nil, mentorID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, students)

	mentorsA, err := f.svc.MentorCount(nil, studentA)
	require.NoError(t, err)
	assert.EqualValues(t, 1, mentorsA)

	// Отписка одного студента не задевает второго
	require.NoError(t, f.svc.UnsubscribeMentor(nil, studentA, mentorID))

	students, err = f.svc.StudentCount(nil, mentorID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, students)

	mentorsA, err = f.svc.MentorCount(nil, studentA)
	require.NoError(t, err)
	assert.EqualValues(t, 0, mentorsA)
}

// TestUnsubscribe_NoOp - отписка при отсутствии связи - не ошибка
func TestUnsubscribe_NoOp(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	studentID := f.addUser(t, models.UserRoleStudent, "Алия Студентова")
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	assert.NoError(t, f.svc.UnsubscribeMentor(nil, studentID, mentorID))
	assert.NoError(t, f.svc.UnsubscribeStudent(nil, mentorID, studentID))
}

// TestUnsubscribeStudent_MirrorsUnsubscribeMentor - ментор может отписать
// студента, эффект тот же, что и у отписки со стороны студента
func TestUnsubscribeStudent_MirrorsUnsubscribeMentor(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	studentID := f.addUser(t, models.UserRoleStudent, "Алия Студентова")
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	_, err := f.svc.Subscribe(nil, studentID, mentorID)
	require.NoError(t, err)

	require.NoError(t, f.svc.UnsubscribeStudent(nil, mentorID, studentID))

	mentors, err := f.svc.MentorCount(nil, studentID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, mentors)

	students, err := f.svc.StudentCount(nil, mentorID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, students)
}

// TestUpdateMentorProfile - теги нормализуются (trim, дубли), лимит - 3
func TestUpdateMentorProfile(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	resp, err := f.svc.UpdateMentorProfile(nil, mentorID, &dto.UpdateMentorRequest{
		IsAvailableForMentoring: true,
		SkillTags:               []string{" Go ", "Go", "PostgreSQL", ""},
	})
	require.NoError(t, err)

	assert.True(t, resp.IsAvailableForMentoring)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, resp.SkillTags)
}

// TestMentorProfile_DefaultWhenUnset - пока профиль не настраивался,
// возвращаются значения по умолчанию, а не ошибка
func TestMentorProfile_DefaultWhenUnset(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	resp, err := f.svc.MentorProfile(nil, mentorID)
	require.NoError(t, err)

	assert.Equal(t, mentorID, resp.UserID)
	assert.False(t, resp.IsAvailableForMentoring)
	assert.Empty(t, resp.SkillTags)
}

// TestMentorProfile_AfterUpdate - чтение профиля отражает сохраненные настройки
func TestMentorProfile_AfterUpdate(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	_, err := f.svc.UpdateMentorProfile(nil, mentorID, &dto.UpdateMentorRequest{
		IsAvailableForMentoring: true,
		SkillTags:               []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)

	resp, err := f.svc.MentorProfile(nil, mentorID)
	require.NoError(t, err)

	assert.True(t, resp.IsAvailableForMentoring)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, resp.SkillTags)
}

// TestUpdateMentorProfile_TooManyTags - больше трех тегов после
// нормализации не пропускается
func TestUpdateMentorProfile_TooManyTags(t *testing.T) {
	t.Parallel()

	f := newMentorshipFixture()
	mentorID := f.addUser(t, models.UserRoleMentor, "Бауыржан Менторов")

	_, err := f.svc.UpdateMentorProfile(nil, mentorID, &dto.UpdateMentorRequest{
		SkillTags: []string{"Go", "PostgreSQL", "Docker", "Kubernetes"},
	})
	assert.ErrorIs(t, err, apperrors.ErrTooManySkillTags)
}
