package domain

import (
	interfaces "searchbyimage/internal/domain/interfaces"
	types "searchbyimage/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	GroupID           = types.GroupID
	UserID            = types.UserID
	EventID           = types.EventID
	ImageID           = types.ImageID
	Origin            = types.Origin
	SegmentKind       = types.SegmentKind
	Segment           = types.Segment
	MessageChain      = types.MessageChain
	GroupMessageEvent = types.GroupMessageEvent
	SearchHit         = types.SearchHit
	SearchResponse    = types.SearchResponse
	SearchRequest     = types.SearchRequest
	SearchOutcome     = types.SearchOutcome
	SearchRecord      = types.SearchRecord
	HistoryStats      = types.HistoryStats
	Settings          = types.Settings
	PluginDescriptor  = types.PluginDescriptor
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	GatewayClient = interfaces.GatewayClient
	SearchEngine  = interfaces.SearchEngine
	SearchService = interfaces.SearchService
	BotService    = interfaces.BotService
	SettingsStore = interfaces.SettingsStore
	SecretStore   = interfaces.SecretStore
	HistoryStore  = interfaces.HistoryStore
	ResultCache   = interfaces.ResultCache
)

const (
	OriginGroup = types.OriginGroup
	OriginCLI   = types.OriginCLI

	SegmentPlain = types.SegmentPlain
	SegmentImage = types.SegmentImage
	SegmentQuote = types.SegmentQuote
	SegmentAt    = types.SegmentAt

	ImagePlaceholder = types.ImagePlaceholder

	QuotaUnknown = types.QuotaUnknown
)

// Segment constructors re-exported for callers that only import domain.
var (
	Plain = types.Plain
	Image = types.Image
	Quote = types.Quote
	At    = types.At
)
