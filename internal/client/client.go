// Package client talks to a raincast server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/mod/semver"

	"github.com/izzyreal/raincast/internal/protocol"
	"github.com/izzyreal/raincast/internal/version"
)

const maxBody = 1 << 20

var (
	ErrLoginRejected = errors.New("Invalid username or password")
	ErrIncompatible  = errors.New("incompatible server")

	// ErrResponseTooLarge is returned for bodies over the 1 MiB read limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is a non-OK response. Message is the server's "error"
// field with markup removed, or empty when the body carried none.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected: status=%d", e.Status)
	}
	return fmt.Sprintf("request rejected: status=%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. A cookie jar is added when
// it has none, since the session lives in a cookie.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login posts credentials to /login and keeps the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	status, _, err := c.postForm(ctx, "/login", "login", url.Values{"username": {username}, "password": {password}})
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusUnauthorized:
		return ErrLoginRejected
	case status >= 300 && status < 400:
		return nil
	default:
		return &ApplicationError{Status: status}
	}
}

// Signup posts a new account to /signup. A rejected form comes back as an
// *ApplicationError carrying the server's message.
func (c *Client) Signup(ctx context.Context, form url.Values) error {
	status, data, err := c.postForm(ctx, "/signup", "signup", form)
	if err != nil {
		return err
	}
	if status >= 300 && status < 400 {
		return nil
	}
	return &ApplicationError{Status: status, Message: cleanText(protocol.DecodeErrorMessage(data))}
}

// postForm sends an urlencoded form without following the redirect that
// marks success.
func (c *Client) postForm(ctx context.Context, path, op string, form url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	noRedirect := *c.http
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	data, status, err := doWith(&noRedirect, req, op)
	return status, data, err
}

// Predict sends snapshot to /predict as a multipart form and returns the
// validated result. Errors are *TransportError, *ApplicationError or
// *protocol.SchemaError.
func (c *Client) Predict(ctx context.Context, snapshot url.Values) (protocol.PredictionResult, error) {
	body, contentType, err := encodeMultipart(snapshot)
	if err != nil {
		return protocol.PredictionResult{}, fmt.Errorf("encode prediction form: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return protocol.PredictionResult{}, fmt.Errorf("create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	data, status, err := c.do(req, "predict")
	if err != nil {
		return protocol.PredictionResult{}, err
	}
	if status != http.StatusOK {
		return protocol.PredictionResult{}, &ApplicationError{Status: status, Message: cleanText(protocol.DecodeErrorMessage(data))}
	}
	return protocol.DecodePredictionResult(data)
}

func (c *Client) ModelInfo(ctx context.Context) (protocol.ModelInfo, error) {
	var info protocol.ModelInfo
	err := c.getJSON(ctx, "/model_info", "model info", &info)
	return info, err
}

func (c *Client) ServerInfo(ctx context.Context) (protocol.ServerInfo, error) {
	var info protocol.ServerInfo
	err := c.getJSON(ctx, "/api/v1/server-info", "server info", &info)
	return info, err
}

// CheckCompatible rejects servers speaking another API version, or whose
// release has a different major version than this build. Non-release
// versions such as "dev" skip the release check.
func CheckCompatible(info protocol.ServerInfo) error {
	if info.APIVersion != version.APIVersion {
		return fmt.Errorf("%w: api_version=%d, want %d", ErrIncompatible, info.APIVersion, version.APIVersion)
	}
	local := version.Current()
	if semver.IsValid(local) && semver.IsValid(info.Version) && semver.Major(local) != semver.Major(info.Version) {
		return fmt.Errorf("%w: server %s, client %s", ErrIncompatible, info.Version, local)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path, what string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", what, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	data, status, err := c.do(req, what)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &ApplicationError{Status: status, Message: cleanText(protocol.DecodeErrorMessage(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, op string) ([]byte, int, error) {
	return doWith(c.http, req, op)
}

func doWith(h *http.Client, req *http.Request, op string) ([]byte, int, error) {
	resp, err := h.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	if len(data) > maxBody {
		return nil, resp.StatusCode, fmt.Errorf("%s: %w (limit %d bytes)", op, ErrResponseTooLarge, maxBody)
	}
	return data, resp.StatusCode, nil
}

func encodeMultipart(values url.Values) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var strict = bluemonday.StrictPolicy()

// cleanText removes markup from server supplied text.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
