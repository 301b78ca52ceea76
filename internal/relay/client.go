// Package relay submits form data to the third-party form relay service.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"time"
)

// ErrRejected is returned when the relay answers without success=true.
var ErrRejected = errors.New("relay: submission rejected")

type Client struct {
	url        string
	accessKey  string
	httpClient *http.Client
}

func NewClient(url, accessKey string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SubmitJSON posts fields as a JSON object together with the access key.
func (c *Client) SubmitJSON(ctx context.Context, fields map[string]string) (*Response, error) {
	body := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["access_key"] = c.accessKey

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// SubmitMultipart posts fields, the access key and an optional file as
// multipart/form-data.
func (c *Client) SubmitMultipart(ctx context.Context, fields map[string]string, file *Attachment) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	// stable field order
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := mw.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.WriteField("access_key", c.accessKey); err != nil {
		return nil, fmt.Errorf("write access key: %w", err)
	}

	if file != nil {
		part, err := mw.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result Response
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !result.Success {
		return &result, fmt.Errorf("%w: %s", ErrRejected, result.Message)
	}
	return &result, nil
}
