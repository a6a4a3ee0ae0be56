package verilens

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"verilens/internal/logging"
	"verilens/internal/mediatype"
)

// API paths. The presigned upload URL is the only endpoint outside the base
// URL; it is returned by the API and receives the raw PUT without auth.
const (
	signedURLPath  = "/api/files/aws-presigned"
	socialPath     = "/api/files/social"
	mediaPath      = "/api/media/users"
	mediaPagesPath = "/api/media/users/pages"
)

// signedURLResponse is the wire shape of the presigned upload handshake.
type signedURLResponse struct {
	Code      string `json:"code"`
	Errno     int    `json:"errno"`
	RequestID string `json:"requestId"`
	MediaID   string `json:"mediaId"`
	Response  struct {
		SignedURL string `json:"signedUrl"`
	} `json:"response"`
}

// socialUploadResponse is the wire shape of a social link submission.
type socialUploadResponse struct {
	Code      string `json:"code"`
	Errno     int    `json:"errno"`
	RequestID string `json:"requestId"`
	MediaID   string `json:"mediaId"`
}

// getJSON performs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := c.baseURL.JoinPath(endpoint)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	return c.decodeResponse(resp, out)
}

// postJSON performs an authenticated POST with a JSON body and decodes the
// response into out.
func (c *Client) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	target := c.baseURL.JoinPath(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	return c.decodeResponse(resp, out)
}

// putSigned uploads raw bytes to a presigned URL. The API key header is
// deliberately omitted; the URL itself carries the authorization.
func (c *Client) putSigned(ctx context.Context, signedURL string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	req.ContentLength = int64(len(data))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload to signed url: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "signed upload rejected: " + string(bytes.TrimSpace(body)),
			kind:       categorize(resp.StatusCode),
		}
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// decodeResponse maps non-2xx statuses onto the error taxonomy and decodes
// successful bodies into out.
func (c *Client) decodeResponse(resp *http.Response, out any) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    serverMessage(body),
		kind:       categorize(resp.StatusCode),
	}
}

func categorize(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// serverMessage pulls the "error" field out of a JSON error body when one
// is present.
func serverMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return ""
}

// Upload submits a local file for analysis via the presigned URL flow and
// returns the handle used to poll for its result.
func (c *Client) Upload(ctx context.Context, path string) (UploadHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UploadHandle{}, fmt.Errorf("%w: file not found: %s", ErrInvalidFile, path)
		}
		return UploadHandle{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return UploadHandle{}, fmt.Errorf("%w: %s is a directory", ErrInvalidFile, path)
	}
	if info.Size() == 0 {
		return UploadHandle{}, fmt.Errorf("%w: file is empty: %s", ErrInvalidFile, path)
	}
	if limit, ok := mediatype.SizeLimit(path); ok && info.Size() > limit {
		return UploadHandle{}, fmt.Errorf("%w: %s exceeds the %d byte limit for its media type", ErrInvalidFile, path, limit)
	}

	fileName := filepath.Base(path)
	var signed signedURLResponse
	if err := c.postJSON(ctx, signedURLPath, map[string]string{"fileName": fileName}, &signed); err != nil {
		return UploadHandle{}, fmt.Errorf("request signed url: %w", err)
	}
	if signed.Response.SignedURL == "" {
		return UploadHandle{}, fmt.Errorf("signed url response missing url (code %q, errno %d)", signed.Code, signed.Errno)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return UploadHandle{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return UploadHandle{}, fmt.Errorf("%w: file is empty: %s", ErrInvalidFile, path)
	}

	if err := c.putSigned(ctx, signed.Response.SignedURL, data, mediatype.ForPath(path)); err != nil {
		return UploadHandle{}, err
	}

	c.logger.Debug("file uploaded",
		logging.String("request_id", signed.RequestID),
		logging.String("file", fileName),
		logging.Int64("size_bytes", info.Size()))

	return UploadHandle{
		RequestID: signed.RequestID,
		MediaID:   signed.MediaID,
	}, nil
}

// UploadSocialMedia submits a social media link for analysis.
func (c *Client) UploadSocialMedia(ctx context.Context, link string) (UploadHandle, error) {
	if err := ValidateSocialLink(link); err != nil {
		return UploadHandle{}, err
	}
	var resp socialUploadResponse
	if err := c.postJSON(ctx, socialPath, map[string]string{"socialLink": link}, &resp); err != nil {
		return UploadHandle{}, fmt.Errorf("submit social link: %w", err)
	}
	if resp.RequestID == "" {
		return UploadHandle{}, fmt.Errorf("social upload response missing request id (code %q, errno %d)", resp.Code, resp.Errno)
	}

	c.logger.Debug("social link submitted", logging.String("request_id", resp.RequestID))

	return UploadHandle{
		RequestID: resp.RequestID,
		MediaID:   resp.MediaID,
	}, nil
}
