// Package main runs the in-memory chat gateway used by searchbyimage during
// development and tests. It queues group-message events for bots, keeps the
// message chains they post back and resolves image ids to URLs.
//
// See package internal/gateway for the HTTP API.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Requests are logged at debug level with method, path, remote, status,
//     bytes and duration.
//   - The default listen address is :8080.
//
// Example session
//
//	relay --log-level debug &
//	curl -XPOST localhost:8080/events/1 -d '{"group_id":5,"sender_id":2,
//	  "message":[{"type":"plain","text":"以图搜图"},
//	             {"type":"image","image_id":"a","url":"https://i.example/a.png"}]}'
//	SEARCHBYIMAGE_GATEWAY_BOT_ID=1 searchbyimage serve
//	curl localhost:8080/groups/5/messages
package main
