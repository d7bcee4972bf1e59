package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

// Request is one logical API call. Retry state after an authorization
// failure is tracked per Request execution, never by mutating shared
// configuration.
type Request struct {
	Method string
	Path   string // relative to the base URL, e.g. /bookings
	Query  url.Values
	Header http.Header
	Body   any // marshalled as JSON when non-nil
	Out    any // decoded from the response body when non-nil
}

// AuthExpiredFunc is invoked when the session becomes unrecoverable: a
// failed token refresh, or a repeated 401 after a successful one.
type AuthExpiredFunc func()

// Transport is the single path to the external API. It attaches the bearer
// token when one is stored and performs at most one transparent
// refresh-and-resend cycle per request on a 401 response.
type Transport struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     *zap.Logger

	// refreshMu serializes token refreshes so simultaneously failing
	// requests trigger a single remote refresh call.
	refreshMu     sync.Mutex
	onAuthExpired AuthExpiredFunc
}

func NewTransport(baseURL string, timeout time.Duration, tokens ports.TokenStore, log *zap.Logger) *Transport {
	return &Transport{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// OnAuthExpired registers the hook that moves the session to a logged-out
// state. Must be set before concurrent use.
func (t *Transport) OnAuthExpired(fn AuthExpiredFunc) {
	t.onAuthExpired = fn
}

// Do executes the request. A 401 on a not-yet-retried request triggers a
// refresh of the access token followed by exactly one resend; a second 401
// and any refresh failure end the session.
func (t *Transport) Do(ctx context.Context, req Request) error {
	pair, err := t.tokens.Pair()
	if err != nil {
		return fmt.Errorf("failed to load tokens: %w", err)
	}

	access := pair.AccessToken
	retried := false

	for {
		status, data, err := t.send(ctx, req, access)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && access != "" {
			if retried {
				// The refreshed token was rejected too. The session is
				// unrecoverable: clear and surface a re-login error.
				t.expireSession()
				return domain.ErrSessionExpired
			}
			newAccess, rerr := t.refreshAccessToken(ctx, access)
			if rerr != nil {
				t.expireSession()
				return domain.ErrSessionExpired
			}
			access = newAccess
			retried = true
			continue
		}

		if status < 200 || status >= 300 {
			return decodeAPIError(status, data)
		}
		if req.Out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, req.Out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil
	}
}

func (t *Transport) send(ctx context.Context, req Request, access string) (int, []byte, error) {
	u := t.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.http.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token and persists it. staleAccess is the token that was just rejected:
// when another in-flight request already refreshed, the stored token has
// moved on and the remote call is skipped.
func (t *Transport) refreshAccessToken(ctx context.Context, staleAccess string) (string, error) {
	t.refreshMu.Lock()
	defer t.refreshMu.Unlock()

	pair, err := t.tokens.Pair()
	if err != nil {
		return "", err
	}
	if pair.AccessToken != "" && pair.AccessToken != staleAccess {
		return pair.AccessToken, nil
	}
	if pair.RefreshToken == "" {
		return "", domain.ErrNotAuthenticated
	}

	t.log.Debug("access token rejected, refreshing")

	refreshReq := Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   map[string]string{"refreshToken": pair.RefreshToken},
	}
	status, data, err := t.send(ctx, refreshReq, "")
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", decodeAPIError(status, data)
	}

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.AccessToken == "" {
		return "", fmt.Errorf("invalid refresh response")
	}
	if err := t.tokens.SetAccessToken(out.AccessToken); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (t *Transport) expireSession() {
	if err := t.tokens.Clear(); err != nil {
		t.log.Warn("failed to clear tokens", zap.Error(err))
	}
	if t.onAuthExpired != nil {
		t.onAuthExpired()
	}
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}
	if len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
		apiErr.Status = status
	}
	return apiErr
}
