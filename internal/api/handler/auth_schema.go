package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username    string `json:"username"     form:"username"     validate:"required,min=3"`
	Email       string `json:"email"        form:"email"        validate:"required,email"`
	FirstName   string `json:"first_name"   form:"first_name"   validate:"required"`
	LastName    string `json:"last_name"    form:"last_name"    validate:"required"`
	Password    string `json:"password"     form:"password"     validate:"required,min=6"`
	Role        string `json:"role"         form:"role"         validate:"required,oneof=user manager"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
}

// loginRequest binds the form-encoded credential pair posted to /auth/token.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
