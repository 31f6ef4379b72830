// Package huuto provides a client for the Huuto.net auction-marketplace API.
//
// Huuto.net is a Finnish online auction site. This package implements the
// credential and session lifecycle, a generic request dispatcher, and thin
// wrappers for the documented API endpoints.
//
// # Architecture
//
//   - Client: the dispatcher owning the HTTP transport; it attaches the
//     session token to authenticated calls and classifies responses
//   - TokenManager: decides whether the cached token is still usable and
//     performs login when it is not; concurrent callers share one login
//   - CredentialStore / FileStore: persistence for username, password and
//     the cached token, so sessions survive process restarts
//   - CallSpec and Params: a typed description of one API call; unset
//     parameters are omitted from the request entirely
//
// # Usage
//
// Create a client backed by an INI credential file:
//
//	logger := zerolog.New(os.Stderr)
//	store := huuto.NewFileStore("huuto_config.ini")
//	client, err := huuto.NewClient("", store, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	results, err := client.SearchItems(ctx, huuto.SearchParams{
//		Words:    huuto.String("kitara"),
//		Category: []int64{344},
//	})
//
// Authentication happens lazily: the first call that requires a token logs
// in with the stored credentials, persists the issued token and reuses it
// until it expires.
//
// # Error Handling
//
// Credential and request construction failures use sentinel errors
// (ErrConfigMissing, ErrCredentialsInvalid, ErrMissingPathParam, ...).
// Failed API calls return *APIError carrying the classification kind, the
// HTTP status and the raw response payload:
//
//	var apiErr *huuto.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// item no longer exists
//	}
//
// The client never retries on its own, with one exception: a 401/403 on an
// authenticated call invalidates the cached token and retries exactly once.
package huuto
