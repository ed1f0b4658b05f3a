package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/heartmarshall/formcraft-backend/internal/auth"
	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

var (
	// Made variables for testing purposes
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Scopes requested at sign-in. Forms and Drive scopes are needed for
// every provider call made on the user's behalf.
var Scopes = []string{
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/forms.responses.readonly",
	"https://www.googleapis.com/auth/drive.file",
}

// Verifier exchanges Google OAuth authorization codes for user identity and tokens,
// and refreshes access tokens.
type Verifier struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
	log          *slog.Logger
	now          func() time.Time
}

// NewVerifier creates a Google OAuth verifier.
// Parameters come from config.AuthConfig: GoogleClientID, GoogleClientSecret, GoogleRedirectURI.
func NewVerifier(clientID, clientSecret, redirectURI string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          logger.With("adapter", "google_oauth"),
		now:          time.Now,
	}
}

// tokenResponse represents the response from Google's token endpoint.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// errorResponse represents Google's OAuth error response format.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// userinfoResponse represents the response from Google's userinfo endpoint.
type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthCodeURL returns the consent screen URL. Offline access with a forced
// consent prompt makes Google issue a refresh token on every sign-in.
func (v *Verifier) AuthCodeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", v.clientID)
	q.Set("redirect_uri", v.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(Scopes, " "))
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	if state != "" {
		q.Set("state", state)
	}
	return authURL + "?" + q.Encode()
}

// VerifyCode exchanges an authorization code for the user's identity and tokens.
func (v *Verifier) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	tokens, err := v.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	userinfo, err := v.fetchUserinfo(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	if !userinfo.VerifiedEmail {
		return nil, fmt.Errorf("oauth: email not verified")
	}

	identity := &auth.OAuthIdentity{
		GoogleID: userinfo.ID,
		Email:    userinfo.Email,
		Name:     userinfo.Name,
		Tokens:   tokens,
	}
	if userinfo.Picture != "" {
		identity.AvatarURL = &userinfo.Picture
	}

	v.log.DebugContext(ctx, "google oauth success", slog.String("email", userinfo.Email))

	return identity, nil
}

// Refresh obtains a new access token for refreshToken. A revoked or expired
// grant yields domain.ErrCredentialExpired. The returned RefreshToken is set
// only when Google rotated it.
func (v *Verifier) Refresh(ctx context.Context, refreshToken string) (auth.OAuthTokens, error) {
	if refreshToken == "" {
		return auth.OAuthTokens{}, fmt.Errorf("oauth refresh: %w", domain.ErrCredentialExpired)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	tok, err := v.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return auth.OAuthTokens{}, v.refreshError(ctx, err)
	}

	tokens := auth.OAuthTokens{AccessToken: tok.AccessToken, Expiry: tok.Expiry}
	if tok.RefreshToken != refreshToken {
		tokens.RefreshToken = tok.RefreshToken
	}
	return tokens, nil
}

func (v *Verifier) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     v.clientID,
		ClientSecret: v.clientSecret,
		RedirectURL:  v.redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// refreshError maps a failed refresh-token grant to domain errors.
func (v *Verifier) refreshError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		v.log.ErrorContext(ctx, "google oauth refresh failed", slog.String("error", err.Error()))
		return &domain.ProviderAPIError{Op: "token refresh", Message: "google unavailable"}
	}

	status := 0
	if re.Response != nil {
		status = re.Response.StatusCode
	}
	v.log.ErrorContext(ctx, "google oauth refresh failed",
		slog.Int("status", status),
		slog.String("error", re.ErrorCode))

	if re.ErrorCode == "invalid_grant" || status == http.StatusUnauthorized {
		return fmt.Errorf("oauth refresh: %w", domain.ErrCredentialExpired)
	}
	return &domain.ProviderAPIError{
		Op:      "token refresh",
		Status:  status,
		Code:    re.ErrorCode,
		Message: re.ErrorDescription,
	}
}

// exchangeCode exchanges the authorization code for tokens.
func (v *Verifier) exchangeCode(ctx context.Context, code string) (auth.OAuthTokens, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", v.clientID)
	data.Set("client_secret", v.clientSecret)
	data.Set("redirect_uri", v.redirectURI)

	resp, body, err := v.postForm(ctx, data)
	if err != nil {
		v.log.ErrorContext(ctx, "google oauth token exchange failed", slog.String("error", err.Error()))
		return auth.OAuthTokens{}, fmt.Errorf("oauth: google unavailable")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			v.log.ErrorContext(ctx, "google oauth token exchange failed",
				slog.Int("status", resp.StatusCode),
				slog.String("error", errResp.Error))

			// 400 errors are typically invalid/expired codes
			if resp.StatusCode == http.StatusBadRequest {
				return auth.OAuthTokens{}, fmt.Errorf("oauth: invalid or expired code")
			}
		}

		v.log.ErrorContext(ctx, "google oauth token exchange failed", slog.Int("status", resp.StatusCode))
		return auth.OAuthTokens{}, fmt.Errorf("oauth: google unavailable")
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		v.log.ErrorContext(ctx, "google oauth token exchange failed", slog.String("error", "invalid json"))
		return auth.OAuthTokens{}, fmt.Errorf("oauth: invalid token response")
	}

	if tokenResp.AccessToken == "" {
		v.log.ErrorContext(ctx, "google oauth token exchange failed", slog.String("error", "missing access_token"))
		return auth.OAuthTokens{}, fmt.Errorf("oauth: invalid token response")
	}

	return v.toTokens(tokenResp), nil
}

func (v *Verifier) toTokens(r tokenResponse) auth.OAuthTokens {
	t := auth.OAuthTokens{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
	if r.ExpiresIn > 0 {
		t.Expiry = v.now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return t
}

// postForm posts data to the token endpoint and returns the response with its body read.
func (v *Verifier) postForm(ctx context.Context, data url.Values) (*http.Response, []byte, error) {
	encodedData := data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(encodedData))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encodedData)), nil
	}

	resp, err := doWithRetry(ctx, v.httpClient, req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read token response: %w", err)
	}
	return resp, body, nil
}

// fetchUserinfo fetches user information using the access token.
func (v *Verifier) fetchUserinfo(ctx context.Context, accessToken string) (*userinfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := doWithRetry(ctx, v.httpClient, req)
	if err != nil {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}

	var userinfo userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&userinfo); err != nil {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", "invalid json"))
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}

	if userinfo.ID == "" || userinfo.Email == "" {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", "missing required fields"))
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}

	return &userinfo, nil
}

// doWithRetry executes an HTTP request, retrying once on 5xx or network errors
// after 500ms. Requests with a body must set GetBody.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err == nil && resp.StatusCode < 500 {
		return resp, nil
	}
	if resp != nil {
		resp.Body.Close()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		retry.Body = body
	}
	return client.Do(retry)
}
