// Package httputil provides the HTTP plumbing shared by the pagemarks API
// server and its client.
//
// # Overview
//
//   - [WriteJSON] and [WriteError]: JSON responses, with structured errors
//     mapped to status codes through [errors.HTTPStatus]
//   - [RequestID]: middleware that tags every request with an X-Request-ID
//   - [PostJSON]: client-side JSON round trip with [Retry]
//
// # Errors
//
// Failed requests are answered with an [ErrorBody]:
//
//	{"code": "INVALID_SCENE", "message": "scene \"x\" has 2 problem(s)", "request_id": "..."}
//
// [PostJSON] decodes that body back into an [errors.Error], so the code
// survives the round trip.
//
// # Retries
//
// [Retry] only retries errors wrapped in [RetryableError]. [PostJSON] wraps
// transport failures and 5xx responses; 4xx responses fail immediately.
//
// [errors.HTTPStatus]: github.com/matzehuels/pagemarks/pkg/errors.HTTPStatus
// [errors.Error]: github.com/matzehuels/pagemarks/pkg/errors.Error
package httputil
