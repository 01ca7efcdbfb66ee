package service

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wawe-app/wawe/backend/config"
)

// ErrNoPublicID is returned when a stored URL carries no extractable media
// identifier. No network call is attempted in that case.
var ErrNoPublicID = errors.New("cannot extract public id from image URL")

// publicIDPattern matches the content after /upload/, minus an optional
// v<digits>/ version segment and the trailing file extension.
var publicIDPattern = regexp.MustCompile(`/upload/(?:v\d+/)?(.+)\.[a-zA-Z]+$`)

// ExtractPublicID derives the stable media identifier from a full hosted
// image URL, e.g. ".../image/upload/v123/folder/pic.jpg" -> "folder/pic".
func ExtractPublicID(imageURL string) (string, error) {
	match := publicIDPattern.FindStringSubmatch(imageURL)
	if match == nil {
		return "", ErrNoPublicID
	}
	return match[1], nil
}

// SignDestroy computes the destroy-request signature: hex SHA-1 over
// "public_id=<id>&timestamp=<ts>" concatenated with the shared secret.
func SignDestroy(publicID string, timestamp int64, apiSecret string) string {
	toSign := fmt.Sprintf("public_id=%s&timestamp=%d", publicID, timestamp)
	sum := sha1.Sum([]byte(toSign + apiSecret))
	return hex.EncodeToString(sum[:])
}

// DestroyResult is the media host's response to a destroy request.
type DestroyResult struct {
	Result string `json:"result"` // "ok", "not found" or "error"
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// MediaService talks to the external media host: unsigned uploads and
// signed deletions.
type MediaService struct {
	cfg        config.CloudinaryConfig
	client     *http.Client
	uploadURL  string
	destroyURL string

	// now is stubbed in tests
	now func() time.Time
}

// NewMediaService creates a new MediaService instance.
func NewMediaService(cfg config.CloudinaryConfig) *MediaService {
	return &MediaService{
		cfg:        cfg,
		client:     &http.Client{Timeout: 30 * time.Second},
		uploadURL:  cfg.UploadURL(),
		destroyURL: cfg.DestroyURL(),
		now:        time.Now,
	}
}

// Upload sends an image to the media host upload endpoint as a multipart
// form and returns the hosted secure URL.
func (s *MediaService) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.WriteField("upload_preset", s.cfg.UploadPreset); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.WriteField("api_key", s.cfg.APIKey); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send upload request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(data))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("empty secure URL in upload response")
	}
	return result.SecureURL, nil
}

// Destroy issues a signed deletion request for the given public id.
func (s *MediaService) Destroy(ctx context.Context, publicID string) (*DestroyResult, error) {
	timestamp := s.now().Unix()
	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", strconv.FormatInt(timestamp, 10))
	form.Set("api_key", s.cfg.APIKey)
	form.Set("signature", SignDestroy(publicID, timestamp, s.cfg.APISecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.destroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send destroy request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result DestroyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode destroy response: %w", err)
	}
	return &result, nil
}

// DeleteByURL extracts the public id from a stored URL and destroys the
// hosted image. It reports true only when the host answers "ok". An URL
// without an extractable id fails fast without a network call.
func (s *MediaService) DeleteByURL(ctx context.Context, imageURL string) (bool, error) {
	publicID, err := ExtractPublicID(imageURL)
	if err != nil {
		return false, err
	}
	result, err := s.Destroy(ctx, publicID)
	if err != nil {
		return false, err
	}
	return result.Result == "ok", nil
}
