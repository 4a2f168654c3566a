// Package main runs vaultd, the daemon that holds one session's keys in
// memory and serves the material store over HTTP.
//
// Key generation starts as soon as the daemon starts. Until it finishes,
// requests that need keys answer 503 with kind "initialization_pending".
//
// HTTP API
//
//	GET /healthz
//	    Key store state: {"keys": "pending" | "ready" | "failed"}.
//
//	GET /keys
//	    Public signing and exchange keys (base64 raw P-256 points) and
//	    their fingerprints. Private keys are never served.
//
//	POST /materials {"name", "description", "kind", "content"}
//	    Seal base64 content and store it. Returns the new material.
//
//	GET /materials
//	    Material metadata, newest first, without bundles.
//
//	GET /materials/{id}
//	    One material including its encrypted bundle.
//
//	GET /materials/{id}/content
//	    Verify, decrypt and return the raw content with its viewer MIME type.
//
//	PUT /materials/{id}/content {"content"}
//	    Replace the content with a newly sealed bundle.
//
//	PATCH /materials/{id} {"name"?, "description"?}
//	    Edit plaintext details.
//
//	DELETE /materials/{id}
//	    Delete the material and its bundle.
//
// Behaviour
//
//   - Keys live only in process memory; restarting the daemon makes every
//     stored bundle unreadable.
//   - Errors are {"error", "kind"} with 400, 404, 422, 500 or 503.
//   - An access log records method, path, remote, status, bytes and duration
//     when --verbose is set.
//   - SIGINT and SIGTERM trigger a graceful shutdown.
package main
