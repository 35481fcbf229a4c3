// Package api implements the HTTP client for a content service.
//
// The client fetches page documents by name and executes form
// submissions; it satisfies both the sdui.Source and the sdui.Poster
// boundary.
package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/sduikit/sdui"
	"github.com/sduikit/sdui/internal/errors"
	"github.com/sduikit/sdui/internal/logging"
)

// Endpoints below the service base URL.
const (
	epPages   = "/pages/"
	epUpdates = "/updates"
)

// Client represents the content service API.
type Client struct {
	base   string
	client *http.Client
}

// NewClient sets up an API client for the service at the given base URL.
func NewClient(base string) *Client {
	return &Client{
		base:   base,
		client: &http.Client{},
	}
}

// Fetch retrieves the raw document for the named page.
// A 404 from the service is reported as a "not found" error.
//
// Fetch implements sdui.Source.
func (c *Client) Fetch(name string) ([]byte, error) {
	url, err := resolve(c.base, epPages+name)
	if err != nil {
		return nil, err
	}

	logging.Debug("API GET %v", url)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sdui")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "page request failed")
	}
	defer res.Body.Close()

	err = errors.ExpectOK(res, "page request failed")
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	logging.Debug("page request for %q returned %d bytes", name, len(data))
	return data, nil
}

// FetchPage retrieves and decodes the named page.
func (c *Client) FetchPage(name string) (*sdui.Page, error) {
	data, err := c.Fetch(name)
	if err != nil {
		return nil, err
	}
	return sdui.DecodePage(data)
}

// Post sends a request body to the given URL and returns the HTTP
// status code. An error is returned only if no response was produced.
//
// Post implements sdui.Poster.
func (c *Client) Post(url, contentType string, body io.Reader) (int, error) {
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "sdui")

	res, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	// must read the body to end before closing
	// https://golang.org/pkg/net/http/#Client.Do
	io.Copy(io.Discard, res.Body)

	logging.Debug("API POST %v returned status %v", url, res.StatusCode)
	return res.StatusCode, nil
}

// NewNotifications sets up a listener for server-pushed page updates.
// The websocket URL is derived from the client's base URL.
func (c *Client) NewNotifications() *Notifications {
	url := c.base + epUpdates
	url = strings.Replace(url, "https://", "wss://", 1)
	url = strings.Replace(url, "http://", "ws://", 1)

	return newNotifications(url)
}
