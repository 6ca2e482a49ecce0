// Package registry fetches remote skill manifests, caches them with a
// freshness window, and installs skills from them into the per-agent
// directories, recording every install in the ledger.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
)

// Client is the HTTP transport surface: fetch text, download bytes,
// POST form data, GET with bearer auth. Deadlines are imposed by the
// caller through the context.
type Client struct {
	resty *resty.Client
}

// NewClient builds a client with retries and an optional bearer token
// applied to every request.
func NewClient(token string) *Client {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("User-Agent", "ai-skills-aggregator/1.0")

	if token != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return &Client{resty: client}
}

// SetProxy routes all requests through the given proxy URL.
func (c *Client) SetProxy(proxyURL string) {
	if proxyURL != "" {
		c.resty.SetProxy(proxyURL)
	}
}

// FetchText GETs a URL and returns the response body as text.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", apperr.IO("HTTP request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", apperr.IO(fmt.Sprintf("HTTP %d for %s", resp.StatusCode(), url), nil)
	}
	return resp.String(), nil
}

// DownloadFile GETs a URL and writes the body to dest, creating parent
// directories as needed.
func (c *Client) DownloadFile(ctx context.Context, url, dest string) error {
	resp, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		return apperr.IO("download failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return apperr.IO(fmt.Sprintf("HTTP %d downloading %s", resp.StatusCode(), url), nil)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return apperr.IO("failed to create directory", err)
	}
	if err := os.WriteFile(dest, resp.Body(), 0644); err != nil {
		return apperr.IO("failed to write file", err)
	}
	return nil
}

// PostForm POSTs url-encoded form data and returns the response text.
func (c *Client) PostForm(ctx context.Context, url, body string) (string, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody(body).
		Post(url)
	if err != nil {
		return "", apperr.IO("POST failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", apperr.IO(fmt.Sprintf("HTTP %d for POST %s", resp.StatusCode(), url), nil)
	}
	return resp.String(), nil
}

// GetWithAuth GETs a URL with an explicit bearer token, overriding the
// client default.
func (c *Client) GetWithAuth(ctx context.Context, url, token string) (string, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", token)).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return "", apperr.IO("GET failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", apperr.IO(fmt.Sprintf("HTTP %d for %s", resp.StatusCode(), url), nil)
	}
	return resp.String(), nil
}
