package api

// Request and response shapes shared by the handlers.

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// RegisterResponse is the successful registration response: the new user's
// ID plus a ready-to-use token pair.
type RegisterResponse struct {
	UserID       int64  `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries issued tokens. RefreshToken is omitted on refresh,
// which mints an access token only.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// MeResponse describes the authenticated caller. LoggedIn is the unix
// timestamp the presented token was issued at.
type MeResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	Active   bool    `json:"active"`
	LoggedIn int64   `json:"logged_in"`
}

// CreateTaskRequest is the payload for task creation. Zero values for name
// and pomodoro count are legal and replaced with defaults server-side.
type CreateTaskRequest struct {
	Name          string `json:"name"`
	PomodoroCount int    `json:"pomodoro_count"`
	CategoryID    *int64 `json:"category_id,omitempty"`
}

// CreateCategoryRequest is the payload for category creation.
type CreateCategoryRequest struct {
	Name string  `json:"name" validate:"required,min=1,max=128"`
	Type *string `json:"type,omitempty"`
}
