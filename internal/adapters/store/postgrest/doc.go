// Package postgrest is a record store that talks to a hosted Postgres
// database through its PostgREST endpoint (/rest/v1).
//
// The package is a translation boundary. Wire rows, Prefer headers and the
// PostgREST error body stay here; callers only see domain types and errors.
//
// # Requests
//
//   - Reads are GET requests with eq. filters and are retried on 5xx and
//     transport failures.
//   - Inserts are POST requests with "Prefer: return=representation" and are
//     sent exactly once, since a replayed insert can duplicate rows.
//   - Preference writes upsert with "on_conflict=user_id" and
//     "Prefer: resolution=merge-duplicates".
//
// # Error Mapping
//
//   - 409 or SQLSTATE 23505 (unique violation) → [domain.ErrConflict]
//   - 5xx, 401, 403, 404, 429, transport failures and an open circuit →
//     [domain.ErrUnavailable]
//   - any other 4xx → [*APIError] carrying the code, message, details and hint
//
// Every request authenticates with the service key in both the apikey and
// Authorization headers, see [KeyAuth].
package postgrest
