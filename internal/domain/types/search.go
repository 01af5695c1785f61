package types

import "time"

// SearchHit is one match returned by the image search backend.
type SearchHit struct {
	Similarity float64  `json:"similarity"`
	ExtURLs    []string `json:"ext_urls,omitempty"`
	IndexName  string   `json:"index_name,omitempty"`
	Title      string   `json:"title,omitempty"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
}

// QuotaUnknown marks a remaining-quota count the backend did not report.
const QuotaUnknown = -1

// SearchResponse is a parsed backend answer. Hits keep the backend's order,
// which is by descending similarity. Remaining counts are QuotaUnknown when
// absent from the answer.
type SearchResponse struct {
	Hits           []SearchHit `json:"hits"`
	Status         int         `json:"status"`
	ShortRemaining int         `json:"short_remaining"`
	LongRemaining  int         `json:"long_remaining"`
}

// SearchRequest asks for sources of the image at ImageURL.
type SearchRequest struct {
	ImageURL  string  `json:"image_url"`
	Threshold float64 `json:"threshold"`
	GroupID   GroupID `json:"group_id,omitempty"`
	SenderID  UserID  `json:"sender_id,omitempty"`
	Origin    Origin  `json:"origin"`
}

// SearchOutcome is the result of a handled SearchRequest.
type SearchOutcome struct {
	ID        string         `json:"id"`
	Request   SearchRequest  `json:"request"`
	Response  SearchResponse `json:"response"`
	ReplyText string         `json:"reply_text"`
	Cached    bool           `json:"cached"`
}

// SearchRecord is a persisted history row.
type SearchRecord struct {
	ID            string    `db:"id" json:"id"`
	GroupID       GroupID   `db:"group_id" json:"group_id"`
	SenderID      UserID    `db:"sender_id" json:"sender_id"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	Threshold     float64   `db:"threshold" json:"threshold"`
	HitCount      int       `db:"hit_count" json:"hit_count"`
	TopSimilarity float64   `db:"top_similarity" json:"top_similarity"`
	Cached        bool      `db:"cached" json:"cached"`
	Origin        Origin    `db:"origin" json:"origin"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// HistoryStats summarises the search history.
type HistoryStats struct {
	Total  int64 `db:"total" json:"total"`
	Cached int64 `db:"cached" json:"cached"`
}
