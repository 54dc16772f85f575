package models

type UserRole string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleMentor  UserRole = "MENTOR"
	UserRoleAlumni  UserRole = "ALUMNI"
)

// ValidRole проверяет, что роль - одна из допустимых
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleStudent, UserRoleMentor, UserRoleAlumni:
		return true
	}
	return false
}

type User struct {
	BaseModel
	Role              UserRole `gorm:"type:varchar(20);not null;default:'STUDENT'"`
	FullName          string   `gorm:"not null;index"`
	Email             string   `gorm:"uniqueIndex;not null"` // хранится в нижнем регистре
	Phone             string   `gorm:"uniqueIndex;not null"`
	Degree            string   `gorm:"not null"`
	GraduationYear    int      `gorm:"not null"`
	CurrentProfession string   // обязательно для MENTOR и ALUMNI
	LinkedIn          string
	PasswordHash      string `gorm:"not null"`
	RefreshToken      string // текущий refresh-токен; пустая строка = нет активной сессии

	// Relations
	Mentor  *Mentor  `gorm:"foreignKey:UserID"`
	Student *Student `gorm:"foreignKey:UserID"`
}
