// SPDX-License-Identifier: GPL-3.0-or-later

// Package prtgapi implements the PRTG server configuration API calls used to
// provision per-volume sensors: duplicate an existing sensor, set its
// parameters, resume it, and delete it.
package prtgapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/prtg-sensors/flasharray/pkg/web"
)

// ProvisioningError is an error of a single provisioning call.
// It is local to one action: the caller logs it and moves on.
type ProvisioningError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ProvisioningError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("prtg api %s failed (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("prtg api %s failed: %s", e.Op, e.Message)
}

// New creates a PRTG configuration API client.
// Redirects are never followed: the duplicateobject call reports the new
// object id via the redirect location.
func New(clientCfg web.ClientConfig, reqCfg web.RequestConfig, passhash string) (*Client, error) {
	clientCfg.NotFollowRedirect = true

	httpClient, err := web.NewHTTPClient(clientCfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		Request:    reqCfg,
		httpClient: httpClient,
		passhash:   passhash,
	}, nil
}

// Client is a PRTG server configuration API client.
type Client struct {
	Request    web.RequestConfig
	httpClient *http.Client

	passhash string
}

// DuplicateObject clones the object id into targetID under the given name
// and returns the new object id.
func (c *Client) DuplicateObject(id, name, targetID string) (string, error) {
	query := c.query(map[string]string{
		"id":       id,
		"name":     name,
		"targetid": targetID,
	})

	resp, err := c.do("duplicateobject", "/api/duplicateobject.htm", query)
	if err != nil {
		return "", err
	}
	defer closeBody(resp)

	location := resp.Header.Get("Location")
	if resp.StatusCode != http.StatusFound || location == "" {
		return "", &ProvisioningError{Op: "duplicateobject", StatusCode: resp.StatusCode, Message: "no redirect with new object id"}
	}

	newID, err := objectIDFromLocation(location)
	if err != nil {
		return "", &ProvisioningError{Op: "duplicateobject", Message: err.Error()}
	}
	return newID, nil
}

// SetObjectProperty sets a single property of the object.
func (c *Client) SetObjectProperty(id, name, value string) error {
	query := c.query(map[string]string{
		"id":    id,
		"name":  name,
		"value": value,
	})
	return c.doOK("setobjectproperty", "/api/setobjectproperty.htm", query)
}

// Resume unpauses the object.
func (c *Client) Resume(id string) error {
	query := c.query(map[string]string{
		"id":     id,
		"action": "1",
	})
	return c.doOK("pause", "/api/pause.htm", query)
}

// DeleteObject deletes the object.
func (c *Client) DeleteObject(id string) error {
	query := c.query(map[string]string{
		"id":      id,
		"approve": "1",
	})
	return c.doOK("deleteobject", "/api/deleteobject.htm", query)
}

func (c *Client) doOK(op, path, query string) error {
	resp, err := c.do(op, path, query)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return &ProvisioningError{Op: op, StatusCode: resp.StatusCode, Message: "unexpected HTTP status"}
	}
	return nil
}

func (c *Client) do(op, path, query string) (*http.Response, error) {
	req, err := web.NewHTTPRequestWithPath(c.Request, path)
	if err != nil {
		return nil, &ProvisioningError{Op: op, Message: err.Error()}
	}
	req.URL.RawQuery = query

	resp, err := c.httpClient.Do(req)
	if err != nil && !errors.Is(err, web.ErrRedirectAttempted) {
		return nil, &ProvisioningError{Op: op, Message: err.Error()}
	}
	return resp, nil
}

func (c *Client) query(params map[string]string) string {
	params["username"] = c.Request.Username
	params["passhash"] = c.passhash
	return web.URLQueryMulti(params)
}

func objectIDFromLocation(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("unparsable redirect location '%s'", location)
	}
	id := u.Query().Get("id")
	if id == "" {
		return "", fmt.Errorf("redirect location '%s' has no object id", location)
	}
	return id, nil
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
