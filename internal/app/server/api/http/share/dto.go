package share

type createInput struct {
	Body createRequest
}

type createRequest struct {
	FileID int `json:"file_id"`
	// Grantee names a registered user; empty creates an anonymous link
	// share with a generated token.
	Grantee  string `json:"grantee,omitempty"`
	Tier     string `json:"tier" enum:"view,download"`
	TTLHours int    `json:"ttl_hours,omitempty" minimum:"0" doc:"Grant lifetime in hours, defaults to 24"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	ID        int    `json:"share_id"`
	Token     string `json:"token,omitempty"`
	Tier      string `json:"tier"`
	ExpiresAt string `json:"expires_at"`
	Status    string `json:"status"`
}

type revokeInput struct {
	ID int `path:"id"`
}

type revokeOutput struct {
	Body revokeResponse
}

type revokeResponse struct {
	Status string `json:"status"`
}
