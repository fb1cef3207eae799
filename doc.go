// Package bring provides an HTTP client for the Bring shopping-list service.
//
// # Overview
//
// The package authenticates a user, retrieves and mutates shopping lists and
// their items, sends push notifications to shared-list members, and
// translates item names between the catalog language and each list's locale.
// Every operation is a single HTTP request mapped onto typed models and
// guarded by shared retry/refresh logic.
//
// # Architecture
//
//   - client.go: Client construction, options and the generic transport
//   - auth.go: login and access-token refresh
//   - session.go: session state, default headers, header persistence
//   - translate.go: article dictionaries and bidirectional name translation
//   - lists.go, notify.go, user.go, activity.go, templates.go: one method
//     per remote endpoint
//   - types.go: request/response models mirroring the API schema
//
// # Client Usage
//
// Create a client with an http.Client and credentials, then log in:
//
//	client, err := bring.NewClient(&http.Client{}, "mail@example.com", "secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := client.Login(ctx); err != nil {
//		log.Fatal(err)
//	}
//	lists, err := client.LoadLists(ctx)
//
// Login bootstraps everything later calls depend on: user identifiers, auth
// headers, the account locale, per-list settings and article dictionaries.
//
// # Request Handling
//
// All requests:
//   - Take a context for cancellation; the library sets no timeout itself
//   - Send the session headers (API key, client identifiers, bearer token)
//   - Refresh the access token proactively once it expires
//   - Use conditional GETs backed by an ETag-indexed response cache
//   - Retry at most once, after a 401-triggered token refresh or after
//     dropping a stale ETag mapping on a 304 cache miss
//
// # Error Handling
//
// Failures map onto a closed set of sentinel errors (ErrAuth, ErrRequest,
// ErrParse, ErrTranslation, ErrUserUnknown, ErrEmailInvalid) that callers
// match with errors.Is; wrapped messages carry the operation context.
// Malformed caller input returns plain errors.
//
// # Concurrency
//
// A Client owns unsynchronized mutable session state and supports one
// in-flight call sequence at a time. Concurrent callers must coordinate
// externally or use separate clients. No call spawns goroutines or timers.
package bring
