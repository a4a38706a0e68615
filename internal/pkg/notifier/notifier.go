// Package notifier delivers the list of executed deletions to a Gotify
// endpoint. Delivery is best-effort: failures are reported to the caller to
// log, never retried, and never affect the outcome of the run.
package notifier

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

const (
	messageTitle    = "Disk Usage Monitor Alert"
	messagePriority = 5
)

// Notifier posts messages to one Gotify application endpoint.
type Notifier struct {
	endpoint string
	client   *http.Client
}

// New builds a Notifier from the configured base URL and application token.
// The message is posted to <base>/message?token=<token>.
func New(gotifyURL, token string) (*Notifier, error) {
	if !govalidator.IsURL(gotifyURL) {
		return nil, fmt.Errorf("invalid Gotify URL: %q", gotifyURL)
	}

	u, err := url.Parse(gotifyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Gotify URL: %w", err)
	}

	u.Path = path.Join(u.Path, "message")
	query := u.Query()
	query.Set("token", token)
	u.RawQuery = query.Encode()

	return &Notifier{
		endpoint: u.String(),
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Send joins the descriptors into one multi-part message and delivers it in
// a single blocking request. A transport error or a non-2xx status is
// returned as an error.
func (n *Notifier) Send(descriptors []string) error {
	form := url.Values{
		"title":    {messageTitle},
		"message":  {strings.Join(descriptors, "\n\n")},
		"priority": {strconv.Itoa(messagePriority)},
	}

	resp, err := n.client.PostForm(n.endpoint, form)
	if err != nil {
		return fmt.Errorf("gotify request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("gotify returned status %s", resp.Status)
	}

	return nil
}
