// Package gofile relays files to the gofile.io hosting provider and
// normalizes its API responses.
package gofile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zinc-sig/relay/internal/upload"
)

const (
	// DefaultAPIURL is the provider's discovery endpoint base.
	DefaultAPIURL = "https://api.gofile.io"

	// DefaultServer is used whenever server discovery fails. Selection
	// never fails an upload; the fallback is silent apart from a log line.
	DefaultServer = "store1"

	defaultTimeout = 30 * time.Second
)

// Client relays files to gofile.io. A zero-configured client talks to the
// production API; tests override the endpoint templates.
type Client struct {
	httpClient *http.Client
	apiURL     string
	uploadURL  string // template taking the server name
	linkURL    string // template taking server, file id, filename
	logger     *zap.Logger
}

type serversResponse struct {
	Status string `json:"status"`
	Data   struct {
		Servers []struct {
			Name string `json:"name"`
		} `json:"servers"`
	} `json:"data"`
}

type uploadResponse struct {
	Status string `json:"status"`
	Data   struct {
		FileID       string `json:"fileId"`
		Size         int64  `json:"size"`
		DownloadPage string `json:"downloadPage"`
	} `json:"data"`
}

// NewClient creates a client with the production endpoints and a default
// request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiURL:     DefaultAPIURL,
		uploadURL:  "https://%s.gofile.io/uploadFile",
		linkURL:    "https://%s.gofile.io/download/%s/%s",
		logger:     zap.NewNop(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "gofile"
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Configure applies optional overrides: api_url (discovery base),
// upload_url and link_url (endpoint templates), and timeout_seconds.
func (c *Client) Configure(config map[string]any) error {
	c.apiURL = upload.StringValueDefault(config, "api_url", c.apiURL)
	c.uploadURL = upload.StringValueDefault(config, "upload_url", c.uploadURL)
	c.linkURL = upload.StringValueDefault(config, "link_url", c.linkURL)
	if secs := upload.IntValue(config, "timeout_seconds", 0); secs > 0 {
		c.httpClient.Timeout = time.Duration(secs) * time.Second
	}
	return nil
}

// Ping reports whether the discovery endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/servers", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gofile: discovery returned status %d", resp.StatusCode)
	}
	return nil
}

// SelectServer returns the name of the provider edge node to upload to.
// On HTTP 200 with status "ok" and a non-empty server list it returns the
// first listed server; on any failure it logs the reason and returns the
// fixed default. It never returns an error.
func (c *Client) SelectServer(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/servers", nil)
	if err != nil {
		c.logger.Error("building server discovery request", zap.Error(err))
		return DefaultServer
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("server discovery failed", zap.Error(err))
		return DefaultServer
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("server discovery returned non-200",
			zap.Int("status", resp.StatusCode))
		return DefaultServer
	}

	var parsed serversResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error("decoding server discovery response", zap.Error(err))
		return DefaultServer
	}

	if parsed.Status != "ok" || len(parsed.Data.Servers) == 0 {
		c.logger.Error("server discovery returned no usable servers",
			zap.String("status", parsed.Status),
			zap.Int("servers", len(parsed.Data.Servers)))
		return DefaultServer
	}

	// The first listed server is the provider's preferred one.
	return parsed.Data.Servers[0].Name
}

// Upload validates the filename, streams the content to the selected server
// as multipart form data, and normalizes the provider's JSON response.
// Validation failures return before any outbound call. A single failed
// attempt is terminal; nothing is retried.
func (c *Client) Upload(ctx context.Context, reader io.Reader, filename string, size int64) (*upload.Result, error) {
	filename = upload.SanitizeFilename(filename)
	if filename == "" {
		return upload.Failure("Empty filename"), nil
	}
	if !upload.AllowedFile(filename) {
		return upload.Failure(upload.AllowedTypesMessage()), nil
	}

	server := c.SelectServer(ctx)
	uploadURL := fmt.Sprintf(c.uploadURL, server)

	// Stream the multipart body; the file is never buffered whole.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, reader); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, pr)
	if err != nil {
		// Unblock the writer goroutine; nothing will read the pipe.
		_ = pr.Close()
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("upload transport failure",
			zap.String("server", server), zap.Error(err))
		return upload.Failuref("Upload error: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Error("upload failed",
			zap.String("server", server), zap.Int("status", resp.StatusCode))
		return upload.Failuref("Upload failed with status %d", resp.StatusCode), nil
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error("decoding upload response",
			zap.String("server", server), zap.Error(err))
		return upload.Failuref("Upload error: %v", err), nil
	}

	if parsed.Status != "ok" {
		c.logger.Error("upload rejected by provider",
			zap.String("server", server), zap.String("status", parsed.Status))
		return upload.Failuref("Upload failed with provider status %q", parsed.Status), nil
	}

	return &upload.Result{
		Success:      true,
		DirectLink:   fmt.Sprintf(c.linkURL, server, parsed.Data.FileID, filename),
		FileID:       parsed.Data.FileID,
		FileName:     filename,
		Size:         parsed.Data.Size,
		DownloadPage: parsed.Data.DownloadPage,
	}, nil
}

func init() {
	upload.RegisterProvider("gofile", func() upload.Provider {
		return NewClient()
	})
}
