package bring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// ReloadUserListSettings refreshes the per-list settings cache, notably the
// listArticleLanguage setting that drives item-name translation.
func (c *Client) ReloadUserListSettings(ctx context.Context) error {
	settings, err := c.GetAllUserSettings(ctx)
	if err != nil {
		return err
	}
	listSettings := make(map[string]map[string]string, len(settings.UserListSettings))
	for _, listSetting := range settings.UserListSettings {
		values := make(map[string]string, len(listSetting.UserSettings))
		for _, setting := range listSetting.UserSettings {
			values[setting.Key] = setting.Value
		}
		listSettings[listSetting.ListUUID] = values
	}
	c.session.listSettings = listSettings
	return nil
}

// ReloadArticleTranslations loads every dictionary the session needs and
// replaces the cached tables wholesale, inverse maps included.
func (c *Client) ReloadArticleTranslations(ctx context.Context) error {
	translations, err := c.loadArticleTranslations(ctx)
	if err != nil {
		return err
	}
	catalog := make(map[string]map[string]string, len(translations))
	for locale, table := range translations {
		inverse := make(map[string]string, len(table))
		for catalogName, localName := range table {
			inverse[localName] = catalogName
		}
		catalog[locale] = inverse
	}
	c.translations = translations
	c.catalog = catalog
	return nil
}

// loadArticleTranslations fetches the dictionaries for every locale the
// session actually needs: the distinct listArticleLanguage values across all
// known lists plus the user's account locale, skipping the default locale
// (which needs no dictionary) and anything unsupported. Each dictionary is
// read from the local resource directory when one is configured, falling
// back to the remote static host.
func (c *Client) loadArticleTranslations(ctx context.Context) (map[string]map[string]string, error) {
	required := make([]string, 0, len(c.session.listSettings)+1)
	seen := map[string]bool{}
	add := func(locale string) {
		if !seen[locale] {
			seen[locale] = true
			required = append(required, locale)
		}
	}
	for _, settings := range c.session.listSettings {
		if locale, ok := settings["listArticleLanguage"]; ok {
			add(locale)
		} else {
			add(c.session.userLocale)
		}
	}
	add(c.session.userLocale)

	dictionaries := map[string]map[string]string{}
	for _, locale := range required {
		if locale == DefaultLocale || !LocaleSupported(locale) {
			continue
		}

		if c.localeDir != "" {
			table, err := c.loadArticleTranslationsFromFile(locale)
			if err == nil {
				dictionaries[locale] = table
				continue
			}
			c.log.Warnf("locale file articles.%s.json could not be loaded from %s, downloading instead: %v", locale, c.localeDir, err)
		}

		table, err := c.downloadArticleTranslations(ctx, locale)
		if err != nil {
			return nil, err
		}
		dictionaries[locale] = table
	}
	return dictionaries, nil
}

func (c *Client) loadArticleTranslationsFromFile(locale string) (map[string]string, error) {
	path := filepath.Join(c.localeDir, "articles."+locale+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (c *Client) downloadArticleTranslations(ctx context.Context, locale string) (map[string]string, error) {
	reqURL := c.localesURL.ResolveReference(&url.URL{Path: "articles." + locale + ".json"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("loading article translations for locale %s failed due to connection timeout: %w", locale, ErrRequest)
		}
		return nil, fmt.Errorf("loading article translations for locale %s failed due to request exception (%v): %w", locale, err, ErrRequest)
	}
	text, err := readBody(resp)
	if err != nil {
		return nil, transportError(err)
	}
	c.log.Debugf("response from %s [%d]", reqURL, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loading article translations for locale %s returned status %d: %w", locale, resp.StatusCode, ErrRequest)
	}
	var table map[string]string
	if err := json.Unmarshal([]byte(text), &table); err != nil {
		return nil, fmt.Errorf("loading article translations for locale %s failed during parsing of request response: %w", locale, ErrParse)
	}
	return table, nil
}

// translate maps an item name between the catalog language and a locale.
// Exactly one of toLocale/fromLocale drives the direction; whichever is
// non-empty wins, with toLocale taking precedence. Translating to or from
// the default locale is a no-op because catalog names are already in it.
// Names absent from the dictionary pass through unchanged.
func (c *Client) translate(itemID, toLocale, fromLocale string) (string, error) {
	locale := toLocale
	if locale == "" {
		locale = fromLocale
	}
	if locale == DefaultLocale {
		return itemID, nil
	}
	if locale == "" {
		return "", errors.New("one of the arguments toLocale or fromLocale required")
	}
	if !LocaleSupported(locale) {
		return "", fmt.Errorf("locale %s not supported", locale)
	}

	table := c.translations[locale]
	if toLocale == "" {
		table = c.catalog[locale]
	}
	if table == nil {
		return "", fmt.Errorf("translation failed, dictionary for locale %s not loaded: %w", locale, ErrTranslation)
	}
	if translated, ok := table[itemID]; ok {
		return translated, nil
	}
	return itemID, nil
}

// listLocale resolves the authoritative locale for a list: its configured
// listArticleLanguage when present, else the user's account locale.
func (c *Client) listLocale(listUUID string) string {
	if settings, ok := c.session.listSettings[listUUID]; ok {
		if locale, ok := settings["listArticleLanguage"]; ok {
			return locale
		}
	}
	return c.session.userLocale
}
