package bring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges the client's credentials for an access and refresh token
// and bootstraps the session: it stores the user identifiers and auth
// headers, resolves the account locale, and loads the per-list settings and
// article dictionaries that later calls depend on.
//
// It returns ErrAuth on bad credentials (the service answers 400 for a
// malformed e-mail and 401 for wrong credentials), ErrParse when a success
// response cannot be decoded, and ErrRequest on transport failures.
func (c *Client) Login(ctx context.Context) (*AuthResponse, error) {
	form := url.Values{
		"email":    {c.mail},
		"password": {c.password},
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "v2/bringauth"})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeForm)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("authentication failed due to connection timeout: %w", ErrRequest)
		}
		return nil, fmt.Errorf("authentication failed due to request exception (%v): %w", err, ErrRequest)
	}
	text, err := readBody(resp)
	if err != nil {
		return nil, transportError(err)
	}
	// The success body carries tokens, so only failures are logged.
	if resp.StatusCode != http.StatusOK {
		c.log.Debugf("response from %s [%d]: %s", reqURL, resp.StatusCode, text)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		var errResp errorResponse
		if jsonErr := json.Unmarshal([]byte(text), &errResp); jsonErr != nil {
			c.log.Debugf("cannot parse login response: %v", jsonErr)
		} else {
			c.log.Debugf("cannot login: %s", errResp.Message)
		}
		return nil, fmt.Errorf("login failed due to authorization failure, please check your email and password: %w", ErrAuth)
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("login failed due to bad request, please check your email: %w", ErrAuth)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("login returned status %d: %w", resp.StatusCode, ErrRequest)
	}

	var data AuthResponse
	if err := decodeStrict(text, &data); err != nil {
		return nil, fmt.Errorf("cannot parse login request response: %w", err)
	}

	c.session.uuid = data.UUID
	c.session.publicUUID = data.PublicUUID
	c.session.headers[headerUserUUID] = data.UUID
	c.session.headers[headerPublicUserUUID] = data.PublicUUID
	c.session.headers[headerAuthorization] = data.TokenType + " " + data.AccessToken
	c.session.refreshToken = data.RefreshToken
	c.session.setExpiresIn(data.ExpiresIn)

	account, err := c.GetUserAccount(ctx)
	if err != nil {
		return nil, err
	}
	c.session.headers[headerCountry] = account.UserLocale.Country
	c.session.userLocale = MapUserLanguageToLocale(account.UserLocale)

	if err := c.ReloadUserListSettings(ctx); err != nil {
		return nil, err
	}
	if err := c.ReloadArticleTranslations(ctx); err != nil {
		return nil, err
	}
	return &data, nil
}

// RetrieveNewAccessToken exchanges a refresh token for a new access token
// and updates the session's auth header and expiry. The stored refresh token
// is used when refreshToken is empty; without one the call fails with ErrAuth
// and a fresh Login is required.
func (c *Client) RetrieveNewAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		refreshToken = c.session.refreshToken
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token not found, login required: %w", ErrAuth)
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "v2/bringauth/token"})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.session.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", contentTypeForm)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("retrieve new access token failed due to connection timeout: %w", ErrRequest)
		}
		return nil, fmt.Errorf("retrieve new access token failed due to request exception (%v): %w", err, ErrRequest)
	}
	text, err := readBody(resp)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Debugf("response from %s [%d]: %s", reqURL, resp.StatusCode, text)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		var errResp errorResponse
		if jsonErr := json.Unmarshal([]byte(text), &errResp); jsonErr != nil {
			c.log.Debugf("cannot parse token response: %v", jsonErr)
		} else {
			c.log.Debugf("cannot retrieve new access token: %s", errResp.Message)
		}
		return nil, fmt.Errorf("retrieve new access token failed due to authorization failure, the refresh token is invalid or expired: %w", ErrAuth)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("token request returned status %d: %w", resp.StatusCode, ErrRequest)
	}

	var data TokenResponse
	if err := decodeStrict(text, &data); err != nil {
		return nil, fmt.Errorf("cannot parse token request response: %w", err)
	}

	c.session.headers[headerAuthorization] = data.TokenType + " " + data.AccessToken
	c.session.setExpiresIn(data.ExpiresIn)

	return &data, nil
}
