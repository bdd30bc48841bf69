package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"filevault/internal/app/client/config"

	"golang.org/x/exp/slog"
)

// App is the client-side face of the vault: a thin authenticated HTTP
// wrapper plus a token cached on disk between invocations.
type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.ConfigDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	app := &App{
		config: cfg,
		log:    log,
		http:   newHTTPClient(cfg.ServerAddress),
	}

	if token, err := os.ReadFile(cfg.TokenPath); err == nil && len(token) > 0 {
		app.http.SetToken(string(token))
	}

	return app, nil
}

// Authenticated reports whether a saved session token is loaded. The token
// may still be expired; the server is the judge of that.
func (a *App) Authenticated() bool {
	return a.http.token != ""
}

func (a *App) SaveToken(token string) error {
	a.http.SetToken(token)
	if err := os.MkdirAll(filepath.Dir(a.config.TokenPath), 0700); err != nil {
		return err
	}
	return os.WriteFile(a.config.TokenPath, []byte(token), 0600)
}

func (a *App) Register(ctx context.Context, username, email, password string, secondFactor bool) (int, error) {
	var resp struct {
		ID int `json:"user_id"`
	}
	err := a.http.do(ctx, "POST", "/user/register", map[string]any{
		"username":      username,
		"email":         email,
		"password":      password,
		"second_factor": secondFactor,
	}, &resp)
	return resp.ID, err
}

// LoginResult mirrors the server's two-step login: either Token is usable
// right away or a one-time code has been mailed out.
type LoginResult struct {
	Token                string `json:"token"`
	SecondFactorRequired bool   `json:"second_factor_required"`
}

func (a *App) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var resp LoginResult
	err := a.http.do(ctx, "POST", "/user/login", map[string]any{
		"username": username,
		"password": password,
	}, &resp)
	return resp, err
}

func (a *App) VerifyCode(ctx context.Context, username, code string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := a.http.do(ctx, "POST", "/user/verify-code", map[string]any{
		"username": username,
		"code":     code,
	}, &resp)
	return resp.Token, err
}

func (a *App) Upload(ctx context.Context, name, data, password, nonce, salt string) (int, error) {
	body := map[string]any{
		"name": name,
		"data": data,
	}
	if password != "" {
		body["password"] = password
	}
	if nonce != "" {
		body["nonce"] = nonce
		body["salt"] = salt
	}

	var resp struct {
		ID int `json:"file_id"`
	}
	err := a.http.do(ctx, "POST", "/api/v1/files", body, &resp)
	return resp.ID, err
}

// Content is a downloaded file as the server returns it: plaintext for
// server-encrypted files, ciphertext plus parameters for client-encrypted
// ones. All byte fields are base64.
type Content struct {
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	Data  string `json:"data"`
	Nonce string `json:"nonce"`
	Salt  string `json:"salt"`
}

func (a *App) Download(ctx context.Context, fileID int, password, op string) (Content, error) {
	var resp Content
	err := a.http.do(ctx, "POST", fmt.Sprintf("/api/v1/files/%d/download", fileID), accessBody(password, op), &resp)
	return resp, err
}

// Shared fetches a file through an anonymous share link; no session needed.
func (a *App) Shared(ctx context.Context, token, password, op string) (Content, error) {
	var resp Content
	err := a.http.do(ctx, "POST", "/api/v1/shared/"+token, accessBody(password, op), &resp)
	return resp, err
}

func accessBody(password, op string) map[string]any {
	body := map[string]any{}
	if password != "" {
		body["password"] = password
	}
	if op != "" {
		body["op"] = op
	}
	return body
}

type FileInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	CreatedAt string `json:"created_at"`
	Tier      string `json:"tier"`
}

type Listing struct {
	Owned  []FileInfo `json:"owned"`
	Shared []FileInfo `json:"shared"`
}

func (a *App) List(ctx context.Context) (Listing, error) {
	var resp Listing
	err := a.http.do(ctx, "GET", "/api/v1/files", nil, &resp)
	return resp, err
}

func (a *App) Delete(ctx context.Context, fileID int) error {
	return a.http.do(ctx, "DELETE", fmt.Sprintf("/api/v1/files/%d", fileID), nil, nil)
}

type ShareResult struct {
	ID        int    `json:"share_id"`
	Token     string `json:"token"`
	Tier      string `json:"tier"`
	ExpiresAt string `json:"expires_at"`
}

func (a *App) Share(ctx context.Context, fileID int, grantee, tier string, ttlHours int) (ShareResult, error) {
	body := map[string]any{
		"file_id": fileID,
		"tier":    tier,
	}
	if grantee != "" {
		body["grantee"] = grantee
	}
	if ttlHours > 0 {
		body["ttl_hours"] = ttlHours
	}

	var resp ShareResult
	err := a.http.do(ctx, "POST", "/api/v1/shares", body, &resp)
	return resp, err
}

func (a *App) Revoke(ctx context.Context, shareID int) error {
	return a.http.do(ctx, "DELETE", fmt.Sprintf("/api/v1/shares/%d", shareID), nil, nil)
}
