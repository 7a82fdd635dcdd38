// Package httpclient es un cliente JSON mínimo para hablar con la API
// (smoke tests, scripts de carga y los tests end-to-end del router).
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/juju/errors"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20
)

// Client envuelve *http.Client con una BaseURL y headers fijos
// (Authorization, X-Debug-User-ID).
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Headers map[string]string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimSpace(baseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.NotValidf("base url %q", baseURL)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Headers: map[string]string{},
	}, nil
}

// With devuelve una copia con un header extra.
func (c *Client) With(key, value string) *Client {
	cp := *c
	cp.Headers = make(map[string]string, len(c.Headers)+1)
	for k, v := range c.Headers {
		cp.Headers[k] = v
	}
	cp.Headers[key] = value
	return &cp
}

// Response es la respuesta cruda; la API responde JSON en todos los casos.
type Response struct {
	Status int
	Body   []byte
}

func (r Response) Decode(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return errors.Annotatef(err, "decode %q", string(r.Body))
	}
	return nil
}

// Error devuelve el campo "error" del cuerpo ("" si no hay).
func (r Response) Error() string {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(r.Body, &body)
	return body.Error
}

// HTTPError representa una respuesta no-2xx en DoJSON.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

// Do manda in como JSON (si no es nil) y devuelve status y body sin
// interpretar. Solo falla por errores de transporte.
func (c *Client) Do(ctx context.Context, method, path string, in any) (Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return Response{}, errors.Annotate(err, "marshal request")
		}
		body = bytes.NewReader(b)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return Response{}, errors.Annotate(err, "new request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, errors.Annotatef(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Response{}, errors.Annotate(err, "read body")
	}
	return Response{Status: resp.StatusCode, Body: raw}, nil
}

// DoJSON es Do más decode de out; un status no-2xx vuelve como *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.Do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return &HTTPError{StatusCode: resp.Status, Message: resp.Error()}
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	return resp.Decode(out)
}
