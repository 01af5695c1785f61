package saucenao

import (
	"fmt"

	"github.com/tidwall/gjson"

	"searchbyimage/internal/domain"
)

// Parse decodes a JSON API body. Hits keep the order of the "results" array.
//
// Similarities arrive as strings ("92.31") or numbers; both are accepted.
// A result without "data.ext_urls" is kept with no URLs.
func Parse(body []byte) (domain.SearchResponse, error) {
	if !gjson.ValidBytes(body) {
		return domain.SearchResponse{}, ErrMalformedResponse
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return domain.SearchResponse{}, ErrMalformedResponse
	}

	header := doc.Get("header")
	out := domain.SearchResponse{
		Status:         int(header.Get("status").Int()),
		ShortRemaining: quota(header.Get("short_remaining")),
		LongRemaining:  quota(header.Get("long_remaining")),
	}
	if out.Status < 0 {
		msg := header.Get("message").String()
		return out, fmt.Errorf("saucenao: server error %d: %s", out.Status, msg)
	}

	doc.Get("results").ForEach(func(_, r gjson.Result) bool {
		h := domain.SearchHit{
			Similarity: r.Get("header.similarity").Float(),
			IndexName:  r.Get("header.index_name").String(),
			Thumbnail:  r.Get("header.thumbnail").String(),
			Title:      r.Get("data.title").String(),
		}
		for _, u := range r.Get("data.ext_urls").Array() {
			h.ExtURLs = append(h.ExtURLs, u.String())
		}
		out.Hits = append(out.Hits, h)
		return true
	})
	return out, nil
}

func quota(r gjson.Result) int {
	if !r.Exists() {
		return domain.QuotaUnknown
	}
	return int(r.Int())
}
