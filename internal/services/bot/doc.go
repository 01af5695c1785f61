// Package bot is the event loop that answers image search commands.
//
// Run polls the gateway for group-message events, handles each batch on a
// bounded worker pool and acknowledges it. HandleEvent parses a single event
// and, when it carries a search command, replies in the group by quoting the
// command, echoing the searched image and listing the matching sources.
package bot
