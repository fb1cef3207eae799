package bring

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetAllUserSettings loads all user settings and per-list settings.
func (c *Client) GetAllUserSettings(ctx context.Context) (*UserSettingsResponse, error) {
	rel := &url.URL{Path: "bringusersettings/" + c.session.uuid}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var settings UserSettingsResponse
	if err := decodeStrict(text, &settings); err != nil {
		return nil, fmt.Errorf("loading user settings failed during parsing of request response: %w", err)
	}
	return &settings, nil
}

// GetUserAccount returns the current account profile, including the raw
// device locale that MapUserLanguageToLocale resolves to a catalog locale.
func (c *Client) GetUserAccount(ctx context.Context) (*UserAccount, error) {
	rel := &url.URL{Path: "v2/bringusers/" + c.session.uuid}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var account UserAccount
	if err := decodeStrict(text, &account); err != nil {
		return nil, fmt.Errorf("loading user account failed during parsing of request response: %w", err)
	}
	return &account, nil
}

// DoesUserExist checks whether an account exists for the given e-mail
// address, defaulting to the client's own address when mail is empty. A
// missing account is ErrUserUnknown; any other failure of the check except a
// timeout is ErrEmailInvalid.
func (c *Client) DoesUserExist(ctx context.Context, mail string) (bool, error) {
	if mail == "" {
		mail = c.mail
	}
	if mail == "" {
		return false, fmt.Errorf("argument mail missing")
	}

	rel := &url.URL{Path: "bringusers", RawQuery: url.Values{"email": {mail}}.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.session.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return false, fmt.Errorf("verifying email failed due to connection timeout: %w", ErrRequest)
		}
		return false, fmt.Errorf("e-mail %s is invalid: %w", mail, ErrEmailInvalid)
	}
	text, err := readBody(resp)
	if err != nil {
		return false, transportError(err)
	}
	c.log.Debugf("response from %s [%d]: %s", reqURL, resp.StatusCode, text)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, fmt.Errorf("user %s does not exist: %w", mail, ErrUserUnknown)
	case resp.StatusCode >= http.StatusBadRequest:
		return false, fmt.Errorf("e-mail %s is invalid: %w", mail, ErrEmailInvalid)
	}
	return true, nil
}

// SetListArticleLanguage sets the article language of a list. The dependent
// caches are reloaded eagerly afterwards, since a stale per-list locale
// would silently mistranslate item names on later calls.
func (c *Client) SetListArticleLanguage(ctx context.Context, listUUID, language string) error {
	if !LocaleSupported(language) {
		return fmt.Errorf("language %s not supported", language)
	}

	form := url.Values{"value": {language}}
	rel := &url.URL{Path: "bringusersettings/" + c.session.uuid + "/" + listUUID + "/listArticleLanguage"}
	if _, err := c.do(ctx, http.MethodPost, rel, []byte(form.Encode()), contentTypeForm); err != nil {
		return err
	}

	if err := c.ReloadUserListSettings(ctx); err != nil {
		return err
	}
	return c.ReloadArticleTranslations(ctx)
}
