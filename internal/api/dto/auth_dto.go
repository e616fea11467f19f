package dto

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserPayload: public view of a user account
type UserPayload struct {
	ID         string            `json:"id"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	ProfilePic *string           `json:"profile_pic,omitempty"`
	Prefs      map[string]string `json:"preferences"`
	Favorites  []int64           `json:"favorites"`
}

// AuthResponse: response payload after successful registration or login
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// UpdateProfileRequest: payload for PUT /auth/profile (partial update)
type UpdateProfileRequest struct {
	Username   *string           `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	ProfilePic *string           `json:"profile_pic,omitempty"`
	Prefs      map[string]string `json:"preferences,omitempty"`
}
