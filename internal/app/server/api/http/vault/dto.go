package vault

import "time"

type uploadInput struct {
	Body uploadRequest
}

type uploadRequest struct {
	Name string `json:"name" minLength:"1"`
	Data string `json:"data" doc:"File content, base64 encoded"`
	// Password selects server-side encryption. Nonce and Salt mark the
	// payload as already encrypted by the client.
	Password string `json:"password,omitempty"`
	Nonce    string `json:"nonce,omitempty" doc:"Client AES-GCM nonce, base64 encoded"`
	Salt     string `json:"salt,omitempty" doc:"Client KDF salt, base64 encoded"`
}

type uploadOutput struct {
	Body uploadResponse
}

type uploadResponse struct {
	ID     int    `json:"file_id"`
	Status string `json:"status"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Owned  []fileInfo       `json:"owned"`
	Shared []sharedFileInfo `json:"shared,omitempty"`
}

type fileInfo struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}

type sharedFileInfo struct {
	fileInfo
	Tier string `json:"tier"`
}

type downloadInput struct {
	ID   int `path:"id"`
	Body accessRequest
}

type accessRequest struct {
	Password string `json:"password,omitempty"`
	Op       string `json:"op,omitempty" doc:"Requested access tier (view or download), defaults to download"`
}

type sharedInput struct {
	Token string `path:"token"`
	Body  accessRequest
}

type contentOutput struct {
	Body contentBody
}

type contentBody struct {
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	Data  string `json:"data" doc:"Plaintext or client ciphertext, base64 encoded"`
	Nonce string `json:"nonce,omitempty"`
	Salt  string `json:"salt,omitempty"`
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
