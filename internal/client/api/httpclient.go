package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nishant0207/online-filesharing/internal/client/models"
	"github.com/nishant0207/online-filesharing/internal/logging"
)

const defaultTimeout = 30 * time.Second

// HTTPClient is the production Client. It talks JSON over HTTP to the
// file-sharing backend, attaching the bearer credential when one is set.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request and decodes a 2xx JSON body into out (if non-nil).
// Non-2xx statuses and transport failures come back as *StatusError or a
// wrapped ErrUnavailable; the caller never sees a partial result.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t := c.bearer(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
		return nil
	}

	return c.statusError(ctx, method, path, resp)
}

// statusError maps a non-2xx response to the error taxonomy, pulling the
// server's {"detail": ...} message through when present.
func (c *HTTPClient) statusError(ctx context.Context, method, path string, resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)

	kind := ErrValidation
	switch {
	case resp.StatusCode >= 500:
		kind = ErrUnavailable
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = ErrUnauthorized
	}

	c.log.Warn(ctx, "request rejected",
		"method", method, "path", path, "status", resp.StatusCode, "detail", payload.Detail)
	return &StatusError{Status: resp.StatusCode, Detail: payload.Detail, kind: kind}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", nil, bytes.NewReader(body), "application/json", &resp); err != nil {
		return "", err
	}

	c.SetToken(resp.AccessToken)
	return resp.AccessToken, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/signup", nil, bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) ListFiles(ctx context.Context, sort models.SortKey, filter models.FilterKey) ([]models.FileRecord, error) {
	q := url.Values{}
	if sort != "" {
		q.Set("sort_by", string(sort))
	}
	if filter != models.FilterAll {
		q.Set("filter_by", string(filter))
	}

	var records []models.FileRecord
	if err := c.do(ctx, http.MethodGet, "/files", q, nil, "", &records); err != nil {
		if isNotFound(err) {
			// The backend answers 404 when the listing is empty.
			return []models.FileRecord{}, nil
		}
		return nil, err
	}
	for i := range records {
		records[i].Ownership = models.Owned
	}
	return records, nil
}

func (c *HTTPClient) ListShared(ctx context.Context) ([]models.FileRecord, error) {
	var records []models.FileRecord
	if err := c.do(ctx, http.MethodGet, "/shared-files", nil, nil, "", &records); err != nil {
		if isNotFound(err) {
			return []models.FileRecord{}, nil
		}
		return nil, err
	}
	for i := range records {
		records[i].Ownership = models.SharedWithMe
		// The payload carries the owner's star flag; a shared-with-me
		// record is never presented as starred.
		records[i].Starred = false
	}
	return records, nil
}

func (c *HTTPClient) Upload(ctx context.Context, filename string, payload io.Reader) (string, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(part, payload); err != nil {
		return "", "", err
	}
	if err := mw.Close(); err != nil {
		return "", "", err
	}

	var resp struct {
		FileID  string `json:"file_id"`
		FileURL string `json:"file_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/upload", nil, &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", "", err
	}
	return resp.FileID, resp.FileURL, nil
}

func (c *HTTPClient) Delete(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/delete/"+url.PathEscape(fileID), nil, nil, "", nil)
}

func (c *HTTPClient) Share(ctx context.Context, fileID, recipientEmail string) error {
	body, err := json.Marshal(map[string]string{"shared_with_email": recipientEmail})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/share/"+url.PathEscape(fileID), nil, bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) PublicLink(ctx context.Context, fileID string, expiryMinutes int) (models.PublicLink, error) {
	q := url.Values{"expiry_minutes": []string{strconv.Itoa(expiryMinutes)}}

	var resp struct {
		PublicURL string    `json:"public_url"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := c.do(ctx, http.MethodPost, "/public-link/"+url.PathEscape(fileID), q, nil, "", &resp); err != nil {
		return models.PublicLink{}, err
	}
	return models.PublicLink{URL: resp.PublicURL, ExpiresAt: resp.ExpiresAt, ExpiryMinutes: expiryMinutes}, nil
}

func (c *HTTPClient) ToggleStar(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodPost, "/files/"+url.PathEscape(fileID)+"/star", nil, nil, "", nil)
}

func (c *HTTPClient) RemoveSharedGrant(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/shared-files/"+url.PathEscape(fileID), nil, nil, "", nil)
}

func (c *HTTPClient) DownloadURL(ctx context.Context, fileID string) (string, error) {
	var resp struct {
		DownloadURL string `json:"download_url"`
	}
	if err := c.do(ctx, http.MethodGet, "/download/"+url.PathEscape(fileID), nil, nil, "", &resp); err != nil {
		return "", err
	}
	return resp.DownloadURL, nil
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
