package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/formcraft-backend/internal/auth"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
)

// DefaultFormsURL is the Forms API v1 collection endpoint.
const DefaultFormsURL = "https://forms.googleapis.com/v1/forms"

// expiryLeeway treats tokens this close to their expiry as already expired.
const expiryLeeway = time.Minute

// responsesPageSize is the largest page forms.responses.list accepts.
const responsesPageSize = 5000

type tokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (auth.OAuthTokens, error)
}

// FormsClient talks to the Google Forms API on behalf of users.
type FormsClient struct {
	baseURL    string
	httpClient *http.Client
	refresher  tokenRefresher
	log        *slog.Logger
	now        func() time.Time
}

// NewFormsClient creates a Forms API client. An empty baseURL uses DefaultFormsURL.
func NewFormsClient(baseURL string, timeout time.Duration, refresher tokenRefresher, logger *slog.Logger) *FormsClient {
	if baseURL == "" {
		baseURL = DefaultFormsURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FormsClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		refresher:  refresher,
		log:        logger.With("adapter", "google_forms"),
		now:        time.Now,
	}
}

// Session binds the client to one user's credential. Access tokens minted
// during the session are kept and reported by Rotated.
func (c *FormsClient) Session(cred domain.Credential) *Session {
	return &Session{client: c, cred: cred}
}

// Session is a sequence of Forms API calls made with one user's credential.
// It is safe for concurrent use.
type Session struct {
	client *FormsClient

	mu      sync.Mutex
	cred    domain.Credential
	rotated bool
}

// Rotated returns the current credential and whether it changed since the
// session was opened.
func (s *Session) Rotated() (domain.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.rotated
}

// Create creates an empty form with title.
func (s *Session) Create(ctx context.Context, title string) (*gforms.Form, error) {
	body := struct {
		Info gforms.Info `json:"info"`
	}{Info: gforms.Info{Title: title}}

	var out gforms.Form
	if err := s.do(ctx, "create", http.MethodPost, s.client.baseURL, body, &out); err != nil {
		return nil, err
	}
	if out.FormID == "" {
		return nil, &domain.ProviderAPIError{Op: "create", Status: http.StatusOK, Message: "response has no formId"}
	}
	return &out, nil
}

// BatchUpdate submits reqs as one unit. An empty batch is not sent.
func (s *Session) BatchUpdate(ctx context.Context, formID string, reqs []gforms.Request) error {
	if len(reqs) == 0 {
		return nil
	}
	endpoint := s.client.baseURL + "/" + url.PathEscape(formID) + ":batchUpdate"
	return s.do(ctx, "batchUpdate", http.MethodPost, endpoint, gforms.BatchUpdate{Requests: reqs}, nil)
}

// Get reads the form with its current item list.
func (s *Session) Get(ctx context.Context, formID string) (*gforms.Form, error) {
	var out gforms.Form
	endpoint := s.client.baseURL + "/" + url.PathEscape(formID)
	if err := s.do(ctx, "get", http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseResponses stops the form from accepting responses.
func (s *Session) CloseResponses(ctx context.Context, formID string) error {
	endpoint := s.client.baseURL + "/" + url.PathEscape(formID) + ":setPublishSettings"
	return s.do(ctx, "setPublishSettings", http.MethodPost, endpoint, gforms.ClosedPublishSettings(), nil)
}

// CountResponses pages through the form's responses and counts them.
func (s *Session) CountResponses(ctx context.Context, formID string) (int, error) {
	base := s.client.baseURL + "/" + url.PathEscape(formID) + "/responses"

	total := 0
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("pageSize", strconv.Itoa(responsesPageSize))
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page gforms.ResponseList
		if err := s.do(ctx, "responses.list", http.MethodGet, base+"?"+q.Encode(), nil, &page); err != nil {
			return 0, err
		}
		total += len(page.Responses)

		if page.NextPageToken == "" {
			return total, nil
		}
		pageToken = page.NextPageToken
	}
}

// do performs one API call. The access token is refreshed first when it is
// known to be expired, or after a 401, in which case the call is sent once more.
func (s *Session) do(ctx context.Context, op, method, endpoint string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("forms %s: marshal: %w", op, err)
		}
		payload = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cred.HasAccessToken() {
		return fmt.Errorf("forms %s: %w", op, domain.ErrCredentialMissing)
	}

	refreshed := false
	if s.cred.Expired(s.client.now(), expiryLeeway) && s.cred.RefreshToken != "" {
		if err := s.refreshLocked(ctx); err != nil {
			return fmt.Errorf("forms %s: %w", op, err)
		}
		refreshed = true
	}

	for {
		status, body, err := s.send(ctx, method, endpoint, payload)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.client.log.ErrorContext(ctx, "forms call failed", slog.String("op", op), slog.String("error", err.Error()))
			return &domain.ProviderAPIError{Op: op, Message: "google forms unavailable"}
		}

		if status == http.StatusUnauthorized {
			if refreshed || s.cred.RefreshToken == "" {
				return fmt.Errorf("forms %s: %w", op, domain.ErrCredentialExpired)
			}
			if err := s.refreshLocked(ctx); err != nil {
				return fmt.Errorf("forms %s: %w", op, err)
			}
			refreshed = true
			continue
		}

		if status < 200 || status >= 300 {
			apiErr := parseAPIError(op, status, body)
			s.client.log.ErrorContext(ctx, "forms call rejected",
				slog.String("op", op),
				slog.Int("status", status),
				slog.String("code", apiErr.Code),
				slog.String("message", apiErr.Message))
			return apiErr
		}

		if out == nil || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &domain.ProviderAPIError{Op: op, Status: status, Message: "invalid response body: " + err.Error()}
		}
		return nil
	}
}

func (s *Session) send(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	}
	req.Header.Set("Authorization", "Bearer "+s.cred.AccessToken)

	resp, err := doWithRetry(ctx, s.client.httpClient, req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// refreshLocked replaces the access token. The refresh token is replaced only
// when Google returns a new one. s.mu must be held.
func (s *Session) refreshLocked(ctx context.Context) error {
	if s.client.refresher == nil {
		return domain.ErrCredentialExpired
	}
	tokens, err := s.client.refresher.Refresh(ctx, s.cred.RefreshToken)
	if err != nil {
		return err
	}

	s.cred.AccessToken = tokens.AccessToken
	s.cred.Expiry = tokens.Expiry
	if tokens.RefreshToken != "" {
		s.cred.RefreshToken = tokens.RefreshToken
	}
	s.rotated = true

	s.client.log.DebugContext(ctx, "google access token refreshed", slog.String("user_id", s.cred.UserID.String()))
	return nil
}

// apiErrorBody is Google's JSON error envelope.
type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func parseAPIError(op string, status int, body []byte) *domain.ProviderAPIError {
	apiErr := &domain.ProviderAPIError{Op: op, Status: status}

	var env apiErrorBody
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Code = env.Error.Status
		apiErr.Message = env.Error.Message
		return apiErr
	}

	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	apiErr.Message = string(body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
