package interfaces

import (
	"context"

	domaintypes "searchbyimage/internal/domain/types"
)

// SearchEngine queries a reverse image search backend.
type SearchEngine interface {
	Search(ctx context.Context, imageURL string) (domaintypes.SearchResponse, error)
}

// SearchService runs a search end to end: cache, rate limit, backend, history.
type SearchService interface {
	Search(
		ctx context.Context,
		req domaintypes.SearchRequest,
	) (domaintypes.SearchOutcome, error)
}

// BotService handles group events delivered by the gateway.
type BotService interface {
	HandleEvent(ctx context.Context, event domaintypes.GroupMessageEvent) error
	Run(ctx context.Context) error
}
