package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tagdiff/internal/difftree"
	"tagdiff/internal/logger"
)

const maxResponseBytes = 64 << 20

// HTTPComparator uploads both files as multipart fields file1 and file2 and
// expects a JSON array of nodes back.
type HTTPComparator struct {
	URL    string
	Client *http.Client
}

func NewHTTPComparator(url string, timeout time.Duration) *HTTPComparator {
	return &HTTPComparator{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPComparator) Compare(ctx context.Context, pathA, pathB string) ([]difftree.Node, error) {
	if err := checkInputs(pathA, pathB); err != nil {
		return nil, err
	}

	body, contentType, err := multipartBody(pathA, pathB)
	if err != nil {
		return nil, fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return nil, fail(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fail(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fail(fmt.Errorf("read response: %w", err))
	}
	logger.Debug("Comparator responded", "url", c.URL, "status", resp.StatusCode, "bytes", len(data), "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fail(remoteError(resp.StatusCode, data))
	}

	nodes, err := difftree.DecodeBytes(data)
	if err != nil {
		return nil, fail(err)
	}
	return nodes, nil
}

func remoteError(status int, data []byte) error {
	var payload difftree.ErrorPayload
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return &RemoteError{StatusCode: status, Message: payload.Error}
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &RemoteError{StatusCode: status, Message: msg}
}

func multipartBody(pathA, pathB string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := addFile(w, "file1", pathA); err != nil {
		return nil, "", err
	}
	if err := addFile(w, "file2", pathB); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func addFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
