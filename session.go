package bring

import (
	"encoding/json"
	"fmt"
	"time"
)

// Header names sent on every authenticated request.
const (
	headerAuthorization  = "Authorization"
	headerAPIKey         = "X-BRING-API-KEY"
	headerClient         = "X-BRING-CLIENT"
	headerApplication    = "X-BRING-APPLICATION"
	headerCountry        = "X-BRING-COUNTRY"
	headerUserUUID       = "X-BRING-USER-UUID"
	headerPublicUserUUID = "X-BRING-PUBLIC-USER-UUID"
)

const apiKey = "cof4Nc6D8saplXjE3h3HXqHH8m7VU2i1Gs0g85Sp"

func defaultHeaders() map[string]string {
	return map[string]string{
		headerAuthorization: "Bearer",
		headerAPIKey:        apiKey,
		headerClient:        "android",
		headerApplication:   "bring",
		headerCountry:       "DE",
		headerUserUUID:      "",
	}
}

// session holds all mutable per-client state: auth headers, tokens with
// expiry, the per-list settings cache and the ETag-indexed response cache.
// It is owned by one Client and not synchronized; see the package doc for
// the concurrency contract.
type session struct {
	headers      map[string]string
	uuid         string
	publicUUID   string
	userLocale   string
	listSettings map[string]map[string]string
	refreshToken string
	expiresAt    time.Time
	etags        map[string]string
	cache        map[string]string
}

func newSession() *session {
	return &session{
		headers:      defaultHeaders(),
		userLocale:   DefaultLocale,
		listSettings: map[string]map[string]string{},
		etags:        map[string]string{},
		cache:        map[string]string{},
	}
}

// tokenExpiredAt reports whether the access token is expired at now. A token
// without a recorded expiry counts as expired, and so does one whose absolute
// expiry timestamp is at or before now.
func (s *session) tokenExpiredAt(now time.Time) bool {
	return s.expiresAt.IsZero() || !s.expiresAt.After(now)
}

func (s *session) tokenExpired() bool {
	return s.tokenExpiredAt(time.Now())
}

func (s *session) setExpiresIn(seconds int) {
	s.expiresAt = time.Now().Add(time.Duration(seconds) * time.Second)
}

// expireToken forces the next request to refresh the access token first.
func (s *session) expireToken() {
	s.expiresAt = time.Time{}
}

// HeadersSerialize encodes login session headers to an opaque string so a
// caller can persist them across process restarts.
func HeadersSerialize(headers map[string]string) (string, error) {
	data, err := json.Marshal(headers)
	if err != nil {
		return "", fmt.Errorf("serialize headers: %w", err)
	}
	return string(data), nil
}

// HeadersDeserialize decodes session headers persisted by HeadersSerialize.
func HeadersDeserialize(serialized string) (map[string]string, error) {
	var headers map[string]string
	if err := json.Unmarshal([]byte(serialized), &headers); err != nil {
		return nil, fmt.Errorf("deserialize headers: %w", err)
	}
	return headers, nil
}
