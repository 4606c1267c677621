// Package repositories implements SQLite persistence for local client state.
//
// Key Implementations:
//   - [SessionRepository] : the stored login, a single row holding the bearer token and its expiry
//   - [LikeRepository] : local-only play likes, never sent to the backend
//
// [SessionRepository] also satisfies the services.Session contract, so the API client reads its bearer
// token straight from the database and a 401 from the backend clears it.
package repositories
