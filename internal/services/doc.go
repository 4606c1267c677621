// Package services implements the HTTP client for the play-clip backend.
//
// # API Service
//
// [APIService] owns two [http.Client] values sharing one [rate.Limiter]: an authenticated client whose
// transport is an [oauth2.Transport] fed by the [Session] token, and a public client used for login
// and registration.
//
// Every request waits on the limiter first, so bursts from the TUI (rapid filter changes, refreshes) are
// throttled client side.
//
// # Session
//
// The bearer credential is not owned here. A [Session] supplies it through [Session.Token] and is told
// through [Session.OnUnauthorized] when the backend rejects it, so the caller can sign the user out.
//
// # Error Handling
//
// Errors are classified with sentinels from the shared package:
//   - [shared.ErrNotAuthenticated] : no token, or the backend answered 401/403
//   - [shared.ErrNetwork] : the request never completed
//   - [shared.ErrAPIRequest] : any other non-2xx response, or an undecodable body
//
// # Endpoints
//
// [PlaysClient] is the read/write surface the feed and CLI consume:
//   - GET /api/plays, /api/plays/fyp, /api/plays/video_of_day
//   - GET and POST /api/user_playbook
//   - POST /api/plays
//
// Raw play objects are decoded as untyped maps and handed to [models.NormalizePlays] unchanged.
package services
