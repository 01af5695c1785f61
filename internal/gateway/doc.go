// Package gateway connects the bot to its chat host.
//
// The host is reached through a small JSON/HTTP API. HTTPClient implements
// domain.GatewayClient against it, and Server is an in-memory implementation
// of the same API used by cmd/relay during development and in tests.
//
// HTTP API
//
//	POST /plugins
//	    Register a plugin descriptor.
//
//	POST /events/{bot}
//	    Enqueue a group-message event for {bot}. Empty id and zero time are
//	    filled in by the server.
//
//	GET /events/{bot}?limit=N
//	    Return up to N queued events. All are returned when limit is absent
//	    or larger than the queue.
//
//	POST /events/{bot}/ack { "count": N }
//	    Drop the first N queued events. The queue is cleared when N exceeds
//	    its length.
//
//	POST /groups/{group}/messages
//	GET  /groups/{group}/messages
//	    Post a message chain to a group, or list the chains posted so far.
//
//	GET /images/{id}
//	    Resolve an image id seen in an event or message to { "url": ... }.
//
// Non-2xx responses carry { "error": ... } and surface from HTTPClient as
// errors naming the method, path and status.
package gateway
