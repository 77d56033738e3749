package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
)

// Login posts form credentials to the backend origin outside the API prefix
// and the envelope. The backend answers a successful login with a redirect;
// any 2xx or 3xx counts as success unless it redirects back with an error.
// On success the session flag is set and the backend's cookies are returned.
func (c *Client) Login(ctx context.Context, username, password string) ([]*http.Cookie, error) {
	if err := c.requireName("username", username); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	form := url.Values{"username": {username}, "password": {password}}
	target := c.originURL(routepath.Login)
	c.logRequest(http.MethodPost, target, nil, map[string]string{"username": username})

	ctx, span := c.tracer.Start(ctx, "POST "+routepath.Login)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.decorate(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeAPITransport, c.messages.Format(string(platformerrors.CodeAPITransport), nil), err)
	}
	defer drain(resp.Body)

	status := resp.StatusCode
	location := resp.Header.Get("Location")
	metadata := map[string]string{platformerrors.MetaHTTPStatus: strconv.Itoa(status)}
	if location != "" {
		metadata[platformerrors.MetaLocation] = location
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden,
		status >= 300 && status < 400 && strings.Contains(location, "error"):
		c.clearSession()
		return nil, platformerrors.WithMetadata(platformerrors.CodeAPIUnauthorized, c.messages.Format(string(platformerrors.CodeAPIUnauthorized), nil), metadata)
	case status >= 400:
		return nil, platformerrors.WithMetadata(platformerrors.CodeAPITransport, fmt.Sprintf("Request failed with status code %d", status), metadata)
	}

	if err := session.MarkLoggedIn(c.session); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeSessionStore, c.messages.Format(string(platformerrors.CodeSessionStore), nil), err)
	}
	return resp.Cookies(), nil
}

// Logout ends the backend session. The local session flag is cleared even
// when the backend cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	defer c.clearSession()
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.originURL(routepath.Logout)
	c.logRequest(http.MethodPost, target, nil, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	c.decorate(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodeAPITransport, c.messages.Format(string(platformerrors.CodeAPITransport), nil), err)
	}
	defer drain(resp.Body)
	if resp.StatusCode >= 400 {
		return platformerrors.WithMetadata(platformerrors.CodeAPITransport,
			fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
			map[string]string{platformerrors.MetaHTTPStatus: strconv.Itoa(resp.StatusCode)},
		)
	}
	return nil
}

// LoggedIn reports whether the client's session flag is set.
func (c *Client) LoggedIn() bool {
	return session.IsLoggedIn(c.session)
}
