package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a client for baseURL. The timeout bounds every
// request end to end; zero means no timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status <= 299 }

func (r *response) statusError() *StatusError {
	return &StatusError{Status: r.status, Message: extractErrorMessage(r.body)}
}

// do sends payload (if any) as JSON and returns the raw response. Only
// failures to obtain a response are reported as errors.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + path, Err: err}
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	payload := map[string]string{"username": username, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/login/", payload)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.statusError()
	}
	// A 2xx body without a readable id is not an error here; the session
	// reports it as a failed login.
	id, _ := DecodeUserID(resp.body)
	return &AuthResult{StatusCode: resp.status, UserID: id}, nil
}

// SignUp treats any 2xx as an answer and leaves the 201 check to the
// caller; the body is decoded leniently, so an unparsable 201 has no id.
func (c *HTTPClient) SignUp(ctx context.Context, username, email, password string) (*AuthResult, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/signup/", payload)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.statusError()
	}
	// Lenient on purpose, see the doc comment.
	id, _ := DecodeUserID(resp.body)
	return &AuthResult{StatusCode: resp.status, UserID: id}, nil
}

func (c *HTTPClient) CreateProfile(ctx context.Context, req CreateProfileRequest) (*CreateProfileResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/profiles/", req)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.statusError()
	}

	res := &CreateProfileResult{StatusCode: resp.status}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return res, nil
	}
	var out struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, decodingError("profile response", err)
	}
	if len(out.Profile) > 0 && !bytes.Equal(out.Profile, []byte("null")) {
		res.Profile = out.Profile
	}
	return res, nil
}

// createResource posts payload and reads the id under {key: {id}}.
func (c *HTTPClient) createResource(ctx context.Context, path, key string, payload any) (*int, error) {
	resp, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.statusError()
	}

	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, decodingError(key+" response", err)
	}
	raw, ok := out[key]
	if !ok {
		return nil, nil
	}
	var ref struct {
		ID flexID `json:"id"`
	}
	if err := json.Unmarshal(raw, &ref); err != nil {
		// null or a non-object: no id to report.
		return nil, nil
	}
	return ref.ID.value, nil
}

func (c *HTTPClient) CreateCourse(ctx context.Context, code string) (*int, error) {
	return c.createResource(ctx, "/courses/", "course", map[string]string{"code": code})
}

func (c *HTTPClient) CreateMajor(ctx context.Context, name string) (*int, error) {
	return c.createResource(ctx, "/majors/", "major", map[string]string{"name": name})
}

func (c *HTTPClient) getList(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.statusError()
	}
	return resp.body, nil
}

func (c *HTTPClient) ListCourses(ctx context.Context) ([]Course, error) {
	body, err := c.getList(ctx, "/courses/")
	if err != nil {
		return nil, err
	}
	return decodeList[Course](body, "courses")
}

func (c *HTTPClient) ListMajors(ctx context.Context) ([]Major, error) {
	body, err := c.getList(ctx, "/majors/")
	if err != nil {
		return nil, err
	}
	return decodeList[Major](body, "majors")
}

func (c *HTTPClient) ListProfiles(ctx context.Context) ([]RichProfile, error) {
	body, err := c.getList(ctx, "/profiles/")
	if err != nil {
		return nil, err
	}
	return decodeList[RichProfile](body, "profiles")
}

func (c *HTTPClient) RecordSwipe(ctx context.Context, d models.SwipeDecision) (*models.MatchResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/swipes/", d)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.statusError()
	}

	var out struct {
		MatchFound *bool  `json:"match_found"`
		NewMatchID flexID `json:"new_match_id"`
	}
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := json.Unmarshal(resp.body, &out); err != nil {
			return nil, decodingError("swipe response", err)
		}
	}

	res := &models.MatchResult{MatchID: out.NewMatchID.value}
	if out.MatchFound != nil {
		res.Matched = *out.MatchFound
	}
	return res, nil
}
