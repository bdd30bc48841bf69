package auth

type registerInput struct {
	Body RegisterRequest
}

type RegisterRequest struct {
	Username     string `json:"username" minLength:"3" maxLength:"32"`
	Email        string `json:"email" format:"email"`
	Password     string `json:"password" minLength:"8"`
	SecondFactor bool   `json:"second_factor,omitempty"`
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body LoginRequest
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token                string `json:"token,omitempty"`
	SecondFactorRequired bool   `json:"second_factor_required,omitempty"`
	Status               string `json:"status"`
}

type verifyCodeInput struct {
	Body VerifyCodeRequest
}

type VerifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code" minLength:"6" maxLength:"6"`
}

type validateOutput struct {
	Body ValidateResponse
}

type ValidateResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type secondFactorInput struct {
	Body SecondFactorRequest
}

type SecondFactorRequest struct {
	Enabled bool `json:"enabled"`
}

type secondFactorOutput struct {
	Body SecondFactorResponse
}

type SecondFactorResponse struct {
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
}
