// SPDX-License-Identifier: GPL-3.0-or-later

// Package flasharray implements a client of the flash array management REST API.
package flasharray

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/prtg-sensors/flasharray/pkg/web"
)

// APIVersion is the array REST API version the client speaks.
const APIVersion = "1.12"

// ErrAuthFailed indicates that a session could not be established
// (bad credentials, bad api token, or no credentials at all).
var ErrAuthFailed = errors.New("authentication failed")

var errUnauthorized = errors.New("unauthorized")

// New creates a flash array API client.
// If apiToken is empty, Login exchanges request username/password for a token.
func New(clientCfg web.ClientConfig, reqCfg web.RequestConfig, apiToken string) (*Client, error) {
	httpClient, err := web.NewHTTPClient(clientCfg)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.Jar = jar

	c := &Client{
		Request:    reqCfg,
		httpClient: httpClient,
	}
	c.token.set(apiToken)
	return c, nil
}

// Client is a flash array management REST API client.
// The session is established lazily on the first query and re-established
// once per query when the array reports it expired.
type Client struct {
	Request    web.RequestConfig
	httpClient *http.Client

	token    token
	loggedIn bool
}

// Login ensures the client holds an api token and opens a session with it.
func (c *Client) Login() error {
	if !c.token.isSet() {
		if c.Request.Username == "" || c.Request.Password == "" {
			return fmt.Errorf("%w: api token or username/password required", ErrAuthFailed)
		}
		tok, err := c.obtainAPIToken()
		if err != nil {
			return err
		}
		c.token.set(tok)
	}

	var resp struct {
		Username string `json:"username"`
	}
	body := map[string]string{"api_token": c.token.get()}
	if err := c.do(http.MethodPost, "/auth/session", "", body, &resp); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	c.loggedIn = true
	return nil
}

// Logout closes the session.
func (c *Client) Logout() error {
	if !c.loggedIn {
		return nil
	}
	c.loggedIn = false
	return c.do(http.MethodDelete, "/auth/session", "", nil, nil)
}

// LoggedIn reports whether the client holds an open session.
func (c *Client) LoggedIn() bool {
	return c.loggedIn
}

// ArrayInfo queries array identity (GET array).
func (c *Client) ArrayInfo() (*ArrayInfo, error) {
	var info ArrayInfo
	if err := c.get("/array", "", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ArraySpace queries array capacity and consumption (GET array?space=true).
func (c *Client) ArraySpace() (*ArraySpace, error) {
	var space ArraySpace
	if err := c.get("/array", web.URLQuery("space", "true"), &space); err != nil {
		return nil, err
	}
	return &space, nil
}

// Monitor queries array performance (GET array?action=monitor).
func (c *Client) Monitor() (*ArrayMonitor, error) {
	var ms []ArrayMonitor
	if err := c.get("/array", web.URLQuery("action", "monitor"), &ms); err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, errors.New("monitor: empty response")
	}
	return &ms[0], nil
}

// Hardware queries hardware components (GET hardware).
func (c *Client) Hardware() ([]Hardware, error) {
	var hws []Hardware
	if err := c.get("/hardware", "", &hws); err != nil {
		return nil, err
	}
	return hws, nil
}

// Drives queries drives (GET drive).
func (c *Client) Drives() ([]Drive, error) {
	var drives []Drive
	if err := c.get("/drive", "", &drives); err != nil {
		return nil, err
	}
	return drives, nil
}

// Volumes queries volumes (GET volume).
func (c *Client) Volumes() ([]Volume, error) {
	var vols []Volume
	if err := c.get("/volume", "", &vols); err != nil {
		return nil, err
	}
	return vols, nil
}

// VolumeNames queries volumes and returns their names in response order.
func (c *Client) VolumeNames() ([]string, error) {
	vols, err := c.Volumes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(vols))
	for _, v := range vols {
		names = append(names, v.Name)
	}
	return names, nil
}

// VolumeSpace queries space consumption of a single volume (GET volume/<name>?space=true).
func (c *Client) VolumeSpace(name string) (*VolumeSpace, error) {
	var space VolumeSpace
	if err := c.get("/volume/"+name, web.URLQuery("space", "true"), &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *Client) obtainAPIToken() (string, error) {
	var resp struct {
		APIToken string `json:"api_token"`
	}
	body := map[string]string{
		"username": c.Request.Username,
		"password": c.Request.Password,
	}
	if err := c.do(http.MethodPost, "/auth/apitoken", "", body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if resp.APIToken == "" {
		return "", fmt.Errorf("%w: no api token in response", ErrAuthFailed)
	}
	return resp.APIToken, nil
}

func (c *Client) get(path, query string, dst any) error {
	if !c.loggedIn {
		if err := c.Login(); err != nil {
			return err
		}
	}

	err := c.do(http.MethodGet, path, query, nil, dst)
	if errors.Is(err, errUnauthorized) {
		// expired session, retry once
		if err := c.Login(); err != nil {
			return err
		}
		err = c.do(http.MethodGet, path, query, nil, dst)
	}
	return err
}

func (c *Client) do(method, path, query string, body, dst any) error {
	req, err := c.createRequest(method, path, query, body)
	if err != nil {
		return fmt.Errorf("error on creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error on request to '%s': %v", req.URL, err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: '%s' returned %d", errUnauthorized, req.URL, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("'%s' returned HTTP status code %d", req.URL, resp.StatusCode)
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("error on decoding response from '%s': %v", req.URL, err)
	}
	return nil
}

func (c *Client) createRequest(method, path, query string, body any) (*http.Request, error) {
	cfg := c.Request.Copy()
	cfg.Method = method

	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		cfg.Body = string(bs)
	}

	req, err := web.NewHTTPRequestWithPath(cfg, "/api/"+APIVersion+path)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = query
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}

type token struct {
	value string
}

func (t *token) get() string  { return t.value }
func (t *token) set(v string) { t.value = v }
func (t *token) isSet() bool  { return t.value != "" }
