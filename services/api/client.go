package apisvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
)

const (
	HeaderRequestID = "X-Request-ID"

	defaultTimeout = 10 * time.Second
)

type (
	Options struct {
		BaseURL    string
		Timeout    time.Duration
		Session    auth.Session
		Logger     core.Logger
		HTTPClient *http.Client // overrides Timeout when set
	}

	// Client wraps the backend REST API. Every request carries the client's Session.
	Client struct {
		baseURL string
		session auth.Session
		rc      *rest.Client
		logger  core.Logger
	}
)

func NewClient(opts Options) (*Client, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(opts.BaseURL, "BaseURL"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "creating api client")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: trimSlash(opts.BaseURL),
		session: opts.Session,
		rc:      &rest.Client{HTTPClient: httpClient},
		logger:  core.OrNop(opts.Logger),
	}, nil
}

// WithSession returns a copy of the client acting for sess.
func (c *Client) WithSession(sess auth.Session) *Client {
	cp := *c
	cp.session = sess
	return &cp
}

func (c *Client) Session() auth.Session { return c.session }

func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	return c.do(ctx, rest.Get, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method rest.Method, path string, query map[string]string, in, out interface{}) error {
	headers := map[string]string{
		"Accept":        "application/json",
		HeaderRequestID: uuid.New().String(),
	}
	c.session.Apply(headers)

	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return errors.Wrapf(err, "encoding %s %s body", method, path)
		}
		headers["Content-Type"] = "application/json"
	}

	req := rest.Request{
		Method:      method,
		BaseURL:     c.baseURL + path,
		Headers:     headers,
		QueryParams: query,
		Body:        body,
	}
	start := time.Now()
	resp, err := c.rc.SendWithContext(ctx, req)
	if err != nil {
		err = errors.Wrapf(err, "%s %s", method, path)
		c.logger.Error(fmt.Sprintf("api request failed: %v", err), err, c.session)
		return err
	}
	c.logger.Debug(fmt.Sprintf("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if out == nil || resp.Body == "" {
		return nil
	}
	if err = json.Unmarshal([]byte(resp.Body), out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

// newAPIError reads an error body: either {"error": "..."} or a field -> message map.
func newAPIError(resp *rest.Response) *core.APIError {
	apiErr := &core.APIError{StatusCode: resp.StatusCode}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
		apiErr.Message = resp.Body
		return apiErr
	}
	if msg, ok := payload["error"].(string); ok {
		apiErr.Message = msg
		return apiErr
	}
	flds := make(map[string]string, len(payload))
	for k, v := range payload {
		if s, ok := v.(string); ok {
			flds[k] = s
		}
	}
	if len(flds) > 0 {
		apiErr.Fields = flds
		apiErr.Message = "validation failed"
	}
	return apiErr
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

func setInt(q map[string]string, key string, v int) {
	if v > 0 {
		q[key] = strconv.Itoa(v)
	}
}

func setString(q map[string]string, key, v string) {
	if v != "" {
		q[key] = v
	}
}
