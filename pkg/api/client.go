package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tickit/pkg/utils"
)

// DefaultBaseURL is where the TickIT backend listens unless configured otherwise
const DefaultBaseURL = "http://localhost:8080"

// TokenSource hands out the bearer token of the current session.
// An empty token means nobody is logged in.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the TickIT REST backend
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// Now is the clock used to check token expiry
	Now func() time.Time
}

// New creates a gateway client. A nil httpClient uses http.DefaultClient,
// which imposes no timeout.
func New(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		Now:     time.Now,
	}
}

// BaseURL returns the backend address requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one round trip
type call struct {
	op     string
	method string
	path   string
	body   any  // JSON-encoded when non-nil
	out    any  // decoded from a 2xx JSON response when non-nil
	public bool // sent without a bearer token
}

func (c *Client) do(ctx context.Context, cl call) error {
	var payload io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", cl.op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, payload)
	if err != nil {
		return &NetworkError{Op: cl.op, Err: err}
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if !cl.public {
		token, err := c.bearer()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	utils.Log("%s %s", cl.method, req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		utils.Log("%s failed: %v", cl.op, err)
		return &NetworkError{Op: cl.op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: cl.op, StatusCode: resp.StatusCode, Err: err}
	}
	utils.Log("%s -> %d (%d bytes)", cl.op, resp.StatusCode, len(raw))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, cl.out); err != nil {
			return &NetworkError{Op: cl.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
		return nil

	case (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) && !cl.public:
		return ErrUnauthenticated

	case resp.StatusCode >= 400 && resp.StatusCode < 500 && (cl.method != http.MethodGet || cl.public):
		return &ValidationError{StatusCode: resp.StatusCode, Message: serverMessage(raw, resp.StatusCode)}

	default:
		utils.Log("%s: unexpected response body: %s", cl.op, string(raw))
		return &NetworkError{Op: cl.op, StatusCode: resp.StatusCode, Err: errors.New(serverMessage(raw, resp.StatusCode))}
	}
}

// bearer returns the session token, refusing to send a request without one
func (c *Client) bearer() (string, error) {
	if c.tokens == nil {
		return "", ErrUnauthenticated
	}
	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("reading session token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthenticated
	}
	if TokenExpired(token, c.Now()) {
		utils.Log("session token expired, not sending request")
		return "", ErrUnauthenticated
	}
	return token, nil
}

// TokenExpired reads the exp claim without verifying the signature.
// Tokens that are not JWTs, or carry no exp, are left for the server to judge.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

// serverMessage extracts what the backend said: a message or error field,
// the field errors of a rejected form, or the plain-text body
func serverMessage(raw []byte, status int) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return http.StatusText(status)
	}

	var fields map[string]any
	if json.Unmarshal(raw, &fields) != nil {
		return text
	}
	for _, key := range []string{"message", "error"} {
		if msg, ok := fields[key].(string); ok && msg != "" {
			return msg
		}
	}

	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if _, ok := v.(string); ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return text
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k].(string))
	}
	return strings.Join(msgs, "; ")
}
