package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danialarif/gigdesk/internal/domain"
)

// PresignRequest asks the backend for a presigned upload URL scoped by
// destination prefix and visibility.
type PresignRequest struct {
	FileName   string              `json:"fileName"`
	MimeType   string              `json:"mimeType"`
	FileSize   int64               `json:"fileSize"`
	Prefix     string              `json:"prefix"`
	Visibility domain.Visibility   `json:"visibility"`
	Category   domain.FileCategory `json:"category,omitempty"`
}

// PresignResponse carries the upload grant. AccessURL is set only for
// public uploads.
type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	AccessURL string `json:"accessUrl,omitempty"`
}

// PresignUpload requests a presigned upload URL.
func (c *Client) PresignUpload(ctx context.Context, req PresignRequest) (*PresignResponse, error) {
	var resp PresignResponse
	if err := c.do(ctx, http.MethodPost, "/uploads/presigned-url", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadGrant is a time-limited signed download URL for a private
// storage key.
type DownloadGrant struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresIn"`
}

// SignedDownload exchanges a private storage key for a signed URL.
// expiresIn is in seconds; zero lets the backend pick its default.
func (c *Client) SignedDownload(ctx context.Context, key string, expiresIn int) (*DownloadGrant, error) {
	q := url.Values{"key": {key}}
	if expiresIn > 0 {
		q.Set("expiresIn", strconv.Itoa(expiresIn))
	}
	var grant DownloadGrant
	if err := c.get(ctx, "/uploads/download?"+q.Encode(), &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// PutObject PUTs raw bytes to a presigned object-storage URL. The URL
// embeds its own credentials, so no bearer token is attached and the
// request goes straight to storage, not the backend.
func (c *Client) PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		return fmt.Errorf("uploading to storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("storage rejected upload: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
