package user

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Users []userInfo `json:"users"`
}

type userInfo struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	SecondFactor bool   `json:"second_factor"`
	CreatedAt    string `json:"created_at"`
}

type updateRoleInput struct {
	ID   int `path:"id"`
	Body updateRoleRequest
}

type updateRoleRequest struct {
	Role string `json:"role" enum:"guest,user,admin"`
}

type deleteInput struct {
	ID int `path:"id"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
