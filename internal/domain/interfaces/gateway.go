package interfaces

import (
	"context"

	domaintypes "searchbyimage/internal/domain/types"
)

// GatewayClient is how the bot talks to its chat host, all with context.
type GatewayClient interface {
	RegisterPlugin(ctx context.Context, descriptor domaintypes.PluginDescriptor) error

	FetchEvents(
		ctx context.Context,
		bot domaintypes.UserID,
		limit int,
	) ([]domaintypes.GroupMessageEvent, error)
	AckEvents(ctx context.Context, bot domaintypes.UserID, count int) error

	SendGroupMessage(
		ctx context.Context,
		group domaintypes.GroupID,
		chain domaintypes.MessageChain,
	) error
	QueryImageURL(ctx context.Context, id domaintypes.ImageID) (string, error)
}
