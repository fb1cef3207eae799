package bring

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testUUID = "00000000-0000-0000-0000-000000000000"

const (
	loginResponseJSON = `{
		"uuid": "00000000-0000-0000-0000-000000000000",
		"publicUuid": "00000000-0000-0000-0000-000000000000",
		"photoPath": "",
		"bringListUUID": "00000000-0000-0000-0000-000000000000",
		"access_token": "ACCESS_TOKEN",
		"refresh_token": "REFRESH_TOKEN",
		"token_type": "Bearer",
		"expires_in": 604799,
		"email": "EMAIL"
	}`

	tokenResponseJSON = `{
		"access_token": "NEW_ACCESS_TOKEN",
		"refresh_token": "REFRESH_TOKEN",
		"token_type": "Bearer",
		"expires_in": 604799
	}`

	userAccountJSON = `{
		"email": "EMAIL",
		"emailVerified": true,
		"photoPath": "",
		"premiumConfiguration": {
			"hasPremium": false,
			"hideSponsoredProducts": false,
			"hideSponsoredTemplates": false,
			"hideSponsoredPosts": false,
			"hideSponsoredCategories": false,
			"hideOffersOnMain": false
		},
		"publicUserUuid": "00000000-0000-0000-0000-000000000000",
		"userLocale": {"language": "de", "country": "DE"},
		"userUuid": "00000000-0000-0000-0000-000000000000"
	}`

	userSettingsJSON = `{
		"usersettings": [{"key": "autoPush", "value": "ON"}],
		"userlistsettings": [{
			"listUuid": "00000000-0000-0000-0000-000000000000",
			"usersettings": [{"key": "listArticleLanguage", "value": "de-DE"}]
		}]
	}`

	loadListsJSON = `{
		"lists": [{
			"listUuid": "00000000-0000-0000-0000-000000000000",
			"name": "Einkauf",
			"theme": "ch.publisheria.bring.theme.home"
		}]
	}`

	getListJSON = `{
		"uuid": "00000000-0000-0000-0000-000000000000",
		"status": "REGISTERED",
		"items": {
			"purchase": [{
				"uuid": "item-1",
				"itemId": "Pouletbrüstli",
				"specification": "1kg",
				"attributes": [{
					"type": "PURCHASE_CONDITIONS",
					"content": {"urgent": true, "convenient": true, "discounted": false}
				}]
			}],
			"recently": [{
				"uuid": "item-2",
				"itemId": "Zitrone",
				"specification": ""
			}]
		}
	}`

	errorResponseJSON = `{
		"message": "Authentication failed.",
		"error": "invalid_token",
		"error_description": "The access token is invalid",
		"errorcode": 401
	}`
)

// newTestClient starts an API double on mux and returns a client pointed at
// it, with dictionaries served from testdata.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.Client(), "EMAIL", "PASSWORD",
		WithBaseURL(server.URL+"/rest/"),
		WithLocalesURL(server.URL+"/locale/"),
		WithLocaleDir("testdata"),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

// registerLoginFixtures wires the endpoints Login touches so tests can start
// from an authenticated client.
func registerLoginFixtures(mux *http.ServeMux) {
	mux.HandleFunc("POST /rest/v2/bringauth", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, loginResponseJSON)
	})
	registerBootstrapFixtures(mux)
}

// registerBootstrapFixtures wires the account and settings endpoints Login
// loads after the credential exchange, for tests that mock the auth endpoint
// themselves.
func registerBootstrapFixtures(mux *http.ServeMux) {
	mux.HandleFunc("GET /rest/v2/bringusers/"+testUUID, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, userAccountJSON)
	})
	mux.HandleFunc("GET /rest/bringusersettings/"+testUUID, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, userSettingsJSON)
	})
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func defaultTestHTTPClient() *http.Client {
	return &http.Client{}
}

func login(t *testing.T, client *Client) {
	t.Helper()
	if _, err := client.Login(t.Context()); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
}
