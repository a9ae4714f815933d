package httpclient

import (
	"fmt"
	"net/http"
)

// AuthType identifies an authentication scheme.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends an Authorization: Bearer <token> header.
	AuthBearer
	// AuthBasic sends HTTP basic credentials.
	AuthBasic
	// AuthAPIKey sends an API key in a header or query parameter.
	AuthAPIKey
	// AuthCustom applies a caller-provided function to the request.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type AuthType

	// Token is the bearer token for AuthBearer.
	Token string

	// Username and Password are the credentials for AuthBasic.
	Username string
	Password string

	// Key and KeyName configure AuthAPIKey. KeyName is the header or
	// query parameter name.
	Key     string
	KeyName string

	// InQuery sends the API key as a query parameter instead of a
	// header.
	InQuery bool

	// Apply is the request mutator for AuthCustom.
	Apply func(*http.Request) error
}

// BearerAuth returns a bearer-token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth returns an HTTP basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuthHeader returns an auth config that sends the key in the
// named header.
func APIKeyAuthHeader(name, key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, KeyName: name, Key: key}
}

// APIKeyAuthQuery returns an auth config that sends the key as the named
// query parameter.
func APIKeyAuthQuery(name, key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, KeyName: name, Key: key, InQuery: true}
}

// CustomAuth returns an auth config backed by a request mutator.
func CustomAuth(apply func(*http.Request) error) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: apply}
}

func (a *AuthConfig) apply(req *http.Request) error {
	switch a.Type {
	case AuthNone:
		return nil
	case AuthBearer:
		if a.Token == "" {
			return fmt.Errorf("httpclient: bearer auth requires a token")
		}
		req.Header.Set("Authorization", "Bearer "+a.Token)
		return nil
	case AuthBasic:
		if a.Username == "" {
			return fmt.Errorf("httpclient: basic auth requires a username")
		}
		req.SetBasicAuth(a.Username, a.Password)
		return nil
	case AuthAPIKey:
		if a.Key == "" || a.KeyName == "" {
			return fmt.Errorf("httpclient: api key auth requires key and key name")
		}
		if a.InQuery {
			q := req.URL.Query()
			q.Set(a.KeyName, a.Key)
			req.URL.RawQuery = q.Encode()
		} else {
			req.Header.Set(a.KeyName, a.Key)
		}
		return nil
	case AuthCustom:
		if a.Apply == nil {
			return fmt.Errorf("httpclient: custom auth requires an apply function")
		}
		return a.Apply(req)
	default:
		return fmt.Errorf("httpclient: unknown auth type %d", a.Type)
	}
}
