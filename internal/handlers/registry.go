package handlers

// AppHandlers собирает все хендлеры приложения для регистрации маршрутов
type AppHandlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	MentorshipHandler *MentorshipHandler
}
