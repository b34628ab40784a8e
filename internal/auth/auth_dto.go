package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	Profile     UserProfile `json:"profile"`
}

type UserProfile struct {
	UserID      string `json:"user_id"`
	EmployeeID  string `json:"employee_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Department  string `json:"department"`
}
