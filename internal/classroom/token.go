package classroom

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// expirySkew is subtracted from the reported token expiry so a token is
// refreshed before it can lapse mid-request.
const expirySkew = 30 * time.Second

// Credential holds the long-lived Google OAuth2 refresh credential.
// All three fields must be non-empty before any exchange is attempted.
type Credential struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// MissingFields returns the environment variable names of required
// credential fields that are empty.
func (c Credential) MissingFields() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.RefreshToken == "" {
		missing = append(missing, "GOOGLE_REFRESH_TOKEN")
	}
	return missing
}

// Validate returns a ConfigError naming the missing fields, or nil when the
// credential is complete.
func (c Credential) Validate() error {
	missing := c.MissingFields()
	if len(missing) == 0 {
		return nil
	}
	return domain.NewConfigError(
		"MISSING_CREDENTIALS",
		"Google OAuth credentials are not configured: "+strings.Join(missing, ", "),
		map[string]interface{}{"missing": missing},
	)
}

// TokenProvider exchanges the refresh credential for short-lived access
// tokens. Tokens are cached process-wide until their reported expiry minus
// a safety margin; concurrent callers share a single in-flight exchange.
type TokenProvider struct {
	cred     Credential
	endpoint oauth2.Endpoint

	mu  sync.Mutex
	tok *oauth2.Token
}

// NewTokenProvider creates a token provider against Google's token endpoint.
func NewTokenProvider(cred Credential) *TokenProvider {
	return &TokenProvider{cred: cred, endpoint: google.Endpoint}
}

// NewTokenProviderWithEndpoint creates a token provider against a custom
// identity provider endpoint. Used by tests to stand in a local double.
func NewTokenProviderWithEndpoint(cred Credential, endpoint oauth2.Endpoint) *TokenProvider {
	return &TokenProvider{cred: cred, endpoint: endpoint}
}

// AccessToken returns a valid bearer token, exchanging the refresh
// credential when no cached token is usable. Credential validation happens
// before any network call; a single exchange attempt is made per refresh
// because exchange failures are configuration problems, not transient ones.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	if err := p.cred.Validate(); err != nil {
		return "", err
	}

	// Holding the lock across the exchange keeps refreshes single-flight:
	// concurrent callers block here and reuse the fresh token.
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tok != nil && p.tok.AccessToken != "" &&
		(p.tok.Expiry.IsZero() || time.Until(p.tok.Expiry) > expirySkew) {
		return p.tok.AccessToken, nil
	}

	cfg := &oauth2.Config{
		ClientID:     p.cred.ClientID,
		ClientSecret: p.cred.ClientSecret,
		Endpoint:     p.endpoint,
	}
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: p.cred.RefreshToken}).Token()
	if err != nil {
		p.tok = nil
		return "", classifyExchangeError(err)
	}

	p.tok = tok
	return tok.AccessToken, nil
}

// classifyExchangeError maps oauth2 exchange failures to the AuthError
// taxonomy, calling out the mismatched-client case for actionable
// diagnostics.
func classifyExchangeError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		if rerr.ErrorCode == "invalid_client" {
			return domain.NewAuthError(
				"CLIENT_MISMATCH",
				"Google rejected the client credentials (invalid_client): check GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET",
				err,
			)
		}
		msg := rerr.ErrorCode
		if rerr.ErrorDescription != "" {
			msg += ": " + rerr.ErrorDescription
		}
		if msg == "" {
			msg = "token exchange rejected by Google"
		}
		return domain.NewAuthError("TOKEN_EXCHANGE_REJECTED", msg, err)
	}
	return domain.NewAuthError("TOKEN_EXCHANGE_FAILED", "could not exchange refresh token: "+err.Error(), err)
}
