// Package domain defines the chat, search and history models shared across the bot,
// and the contracts between its layers. It holds plain types and interfaces only.
package domain
