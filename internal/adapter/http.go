package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

const (
	signupPath         = "/auth/signup"
	loginPath          = "/auth/login"
	logoutPath         = "/auth/logout"
	pullPath           = "/notes/pull"
	syncPath           = "/notes/sync"
	changePasswordPath = "/account/password/change"
	deleteAccountPath  = "/account/delete"

	headerAuthorization = "Authorization"
	headerUsername      = "X-Username"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	tokens store.TokenStore

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] bound to adapterCfg.Address. Tokens are read from and
// written to tokens.
//
// Returns an error if adapterCfg.Address is empty.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, tokens store.TokenStore, logger *logger.Logger) (ServerAdapter, error) {
	baseURL := config.NormalizeAddress(adapterCfg.Address)
	if baseURL == "" {
		return nil, fmt.Errorf("invalid adapter address: empty address")
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		tokens: tokens,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Signup implements [ServerAdapter]. POST /auth/signup, expects 201 and a
// bearer token in the Authorization response header.
func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(signupPath)
	if err != nil {
		return fmt.Errorf("%w: signup request: %w", ErrServerUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return h.storeIssuedToken(ctx, req.Username, resp)
}

// Login implements [ServerAdapter]. POST /auth/login; the note diff comes
// back in the body and the token in the Authorization header.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(loginPath)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: login request: %w", ErrServerUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	if err = h.storeIssuedToken(ctx, req.Username, resp); err != nil {
		return models.LoginResponse{}, err
	}

	var result models.LoginResponse
	if err = decodeBody(resp, &result); err != nil {
		return models.LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	return result, nil
}

// Logout implements [ServerAdapter]. POST /auth/logout with token. A rotated
// token in the response is ignored since the session is ending.
func (h *httpServerAdapter) Logout(ctx context.Context, username, token string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(headerAuthorization, utils.FormatBearer(token)).
		SetHeader(headerUsername, username).
		Post(logoutPath)
	if err != nil {
		return fmt.Errorf("%w: logout request: %w", ErrServerUnreachable, err)
	}

	return mapHTTPError(resp)
}

// Pull implements [ServerAdapter]. GET /notes/pull.
func (h *httpServerAdapter) Pull(ctx context.Context, username string) (models.PullResponse, error) {
	req, err := h.authedRequest(ctx, username)
	if err != nil {
		return models.PullResponse{}, err
	}

	resp, err := req.Get(pullPath)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: pull request: %w", ErrServerUnreachable, err)
	}
	if err = h.handleAuthedResponse(ctx, username, resp); err != nil {
		return models.PullResponse{}, err
	}

	var result models.PullResponse
	if err = decodeBody(resp, &result); err != nil {
		return models.PullResponse{}, fmt.Errorf("decode pull response: %w", err)
	}
	return result, nil
}

// Sync implements [ServerAdapter]. PUT /notes/sync.
func (h *httpServerAdapter) Sync(ctx context.Context, username string, body models.SyncRequest) (models.SyncResponse, error) {
	req, err := h.authedRequest(ctx, username)
	if err != nil {
		return models.SyncResponse{}, err
	}

	resp, err := req.SetBody(body).Put(syncPath)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: sync request: %w", ErrServerUnreachable, err)
	}
	if err = h.handleAuthedResponse(ctx, username, resp); err != nil {
		return models.SyncResponse{}, err
	}

	var result models.SyncResponse
	if err = decodeBody(resp, &result); err != nil {
		return models.SyncResponse{}, fmt.Errorf("decode sync response: %w", err)
	}
	return result, nil
}

// ChangePassword implements [ServerAdapter]. PUT /account/password/change.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, username string, body models.ChangePasswordRequest) error {
	req, err := h.authedRequest(ctx, username)
	if err != nil {
		return err
	}

	resp, err := req.SetBody(body).Put(changePasswordPath)
	if err != nil {
		return fmt.Errorf("%w: change password request: %w", ErrServerUnreachable, err)
	}

	return h.handleAuthedResponse(ctx, username, resp)
}

// DeleteAccount implements [ServerAdapter]. DELETE /account/delete.
func (h *httpServerAdapter) DeleteAccount(ctx context.Context, username string) error {
	req, err := h.authedRequest(ctx, username)
	if err != nil {
		return err
	}

	resp, err := req.Delete(deleteAccountPath)
	if err != nil {
		return fmt.Errorf("%w: delete account request: %w", ErrServerUnreachable, err)
	}

	return mapHTTPError(resp)
}

// authedRequest builds a request carrying the stored token for username.
// An expired JWT fails here without touching the network.
func (h *httpServerAdapter) authedRequest(ctx context.Context, username string) (*resty.Request, error) {
	token, err := h.tokens.GetAccessToken(ctx, username)
	if errors.Is(err, store.ErrTokenNotFound) {
		return nil, ErrNoAccessToken
	}
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if utils.TokenExpired(token, h.now()) {
		h.logger.Debug().
			Str("func", "httpServerAdapter.authedRequest").
			Str("username", username).
			Msg("stored access token has expired")
		return nil, ErrTokenExpired
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader(headerAuthorization, utils.FormatBearer(token)).
		SetHeader(headerUsername, username), nil
}

// handleAuthedResponse maps the status and stores a rotated token if the
// server sent one.
func (h *httpServerAdapter) handleAuthedResponse(ctx context.Context, username string, resp *resty.Response) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	header := resp.Header().Get(headerAuthorization)
	if header == "" {
		return nil
	}
	token, err := utils.ParseBearerToken(header)
	if err != nil {
		h.logger.Warn().
			Str("func", "httpServerAdapter.handleAuthedResponse").
			Str("username", username).
			Msg("ignoring malformed rotated token")
		return nil
	}
	if err = h.tokens.SetAccessToken(ctx, username, token); err != nil {
		return fmt.Errorf("store rotated access token: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) storeIssuedToken(ctx context.Context, username string, resp *resty.Response) error {
	token, err := utils.ParseBearerToken(resp.Header().Get(headerAuthorization))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingToken, err)
	}
	if err = h.tokens.SetAccessToken(ctx, username, token); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.storeIssuedToken").
		Str("username", username).
		Int("status", resp.StatusCode()).
		Msg("access token stored")
	return nil
}

// decodeBody unmarshals a JSON body into v. An empty body leaves v as is.
func decodeBody(resp *resty.Response, v any) error {
	if len(resp.Body()) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Body(), v)
}
