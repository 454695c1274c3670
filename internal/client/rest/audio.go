package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/legalconnect/consult-client/internal/model"
)

// UploadAudio submits a case-intake recording for transcription. The
// transcription pipeline itself is an external collaborator; the client only
// ships bytes and reads the processed record back.
func (c *Client) UploadAudio(ctx context.Context, fileName string, audio io.Reader, userID int64) (*model.ClientAudio, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := "/api/audio/upload"
	if userID != 0 {
		path += "?" + url.Values{"userId": {strconv.FormatInt(userID, 10)}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // .

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apiError(resp)
	}

	var record model.ClientAudio
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &record, nil
}

func (c *Client) AudioRecords(ctx context.Context) ([]model.ClientAudio, error) {
	var records []model.ClientAudio
	if err := c.doJSON(ctx, http.MethodGet, "/api/audio/all", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch audio records: %w", err)
	}
	return records, nil
}

func (c *Client) AudioByID(ctx context.Context, id int64) (*model.ClientAudio, error) {
	var record model.ClientAudio
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/audio/%d", id), nil, &record); err != nil {
		return nil, fmt.Errorf("failed to fetch audio record %d: %w", id, err)
	}
	return &record, nil
}
