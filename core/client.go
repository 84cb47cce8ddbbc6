package core

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// envelope is the response shape every kazi backend endpoint follows:
// {success, data, message?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

type (
	ClientOptions struct {
		BaseURL    string
		Session    SessionSource
		Logger     Logger
		HTTPClient *http.Client // defaults to a plain http.Client
	}

	// Client issues calls against one kazi backend. It writes no local cache;
	// collection state belongs to the ListController that fetched it.
	Client struct {
		baseURL string
		session SessionSource
		log     Logger
		http    *http.Client
	}
)

func NewClient(opts *ClientOptions) *Client {
	c := &Client{
		baseURL: opts.BaseURL,
		session: opts.Session,
		log:     opts.Logger,
		http:    opts.HTTPClient,
	}
	if c.log == nil {
		c.log = NopLogger{}
	}
	if c.http == nil {
		c.http = new(http.Client)
	}
	return c
}

// NewClientFromConfig wires a Client the standard way for the apps.
func NewClientFromConfig(conf *Config, session SessionSource, logger Logger) *Client {
	return NewClient(&ClientOptions{
		BaseURL:    conf.APIBaseURL,
		Session:    session,
		Logger:     logger,
		HTTPClient: &http.Client{Timeout: conf.RequestTimeout},
	})
}

// do runs one request and decodes the envelope. The bearer header is attached
// iff a session exists at call time; some endpoints (public job listings) are
// intentionally reachable without one.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil {
		if sess, ok := c.session.Current(); ok {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", errors.Wrapf(err, "%s %s", method, path))
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	env := new(envelope)
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s %s response", method, path)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			// never trust the backend's shape blindly
			return nil, NewAPIError(res.StatusCode, "malformed response from server")
		}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 || !env.Success {
		c.log.Debug("server rejected request", map[string]interface{}{
			"method": method, "path": path, "status": res.StatusCode, "message": env.Message,
		})
		return nil, NewAPIError(res.StatusCode, env.Message)
	}
	return env, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s %s payload", method, path)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, nil, body, "application/json")
}

func decodeData(env *envelope, dst interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return NewAPIError(http.StatusOK, "malformed response from server")
	}
	return nil
}

// List fetches a whole collection. A 2xx response with no data yields an
// empty, non-nil slice.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	items := make([]T, 0)
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Retrieve fetches a single record.
func Retrieve[T any](ctx context.Context, c *Client, path string) (T, error) {
	var item T
	env, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return item, err
	}
	err = decodeData(env, &item)
	return item, err
}

// Create POSTs a JSON payload and returns the created record.
func Create[T any](ctx context.Context, c *Client, path string, payload interface{}) (T, error) {
	var item T
	env, err := c.doJSON(ctx, http.MethodPost, path, payload)
	if err != nil {
		return item, err
	}
	err = decodeData(env, &item)
	return item, err
}

// Update PUTs a JSON payload and returns the updated record.
func Update[T any](ctx context.Context, c *Client, path string, payload interface{}) (T, error) {
	var item T
	env, err := c.doJSON(ctx, http.MethodPut, path, payload)
	if err != nil {
		return item, err
	}
	err = decodeData(env, &item)
	return item, err
}

// Remove DELETEs a record.
func Remove(ctx context.Context, c *Client, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "")
	return err
}

// File is one part of a multipart submission (profile pictures, resumes),
// keyed by the backend's field name for that document type.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Upload POSTs a multipart form with plain fields and named file parts.
func Upload[T any](ctx context.Context, c *Client, path string, fields map[string]string, files ...File) (T, error) {
	var item T

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return item, errors.Wrap(err, "writing form field "+k)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return item, errors.Wrap(err, "creating form file "+f.Field)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return item, errors.Wrap(err, "writing form file "+f.Field)
		}
	}
	if err := w.Close(); err != nil {
		return item, errors.Wrap(err, "closing multipart body")
	}

	env, err := c.do(ctx, http.MethodPost, path, nil, body, w.FormDataContentType())
	if err != nil {
		return item, err
	}
	err = decodeData(env, &item)
	return item, err
}
