// Package reply turns search hits into the text the bot posts back.
package reply

import (
	"fmt"
	"strings"

	"searchbyimage/internal/domain"
)

// MaxAnswers caps the number of sources listed in one reply.
const MaxAnswers = 5

const (
	headerFormat = "在以下来源找到相似度大于%.2f%%的结果:\n"
	lineFormat   = "相似度：%.2f%%，链接：%s"
	noneFormat   = "未在任何来源中寻找到相似度大于%.2f%%的结果。"
)

// Format lists at most maxAnswers hits whose similarity is at least threshold.
//
// Hits must be in descending similarity order: listing stops at the first
// hit below threshold. Hits without any source URL are skipped before the
// similarity check. Every line but the maxAnswers-th is followed by a newline.
func Format(hits []domain.SearchHit, threshold float64, maxAnswers int) string {
	if maxAnswers <= 0 {
		maxAnswers = MaxAnswers
	}

	var sb strings.Builder
	count := 0
	for _, h := range hits {
		if len(h.ExtURLs) == 0 {
			continue
		}
		if h.Similarity < threshold || count >= maxAnswers {
			break
		}
		if count == 0 {
			fmt.Fprintf(&sb, headerFormat, threshold)
		}
		fmt.Fprintf(&sb, lineFormat, h.Similarity, h.ExtURLs[0])
		count++
		if count < maxAnswers {
			sb.WriteByte('\n')
		}
	}
	if count == 0 {
		fmt.Fprintf(&sb, noneFormat, threshold)
	}
	return sb.String()
}

// Count returns how many hits Format would list.
func Count(hits []domain.SearchHit, threshold float64, maxAnswers int) int {
	if maxAnswers <= 0 {
		maxAnswers = MaxAnswers
	}
	n := 0
	for _, h := range hits {
		if len(h.ExtURLs) == 0 {
			continue
		}
		if h.Similarity < threshold || n >= maxAnswers {
			break
		}
		n++
	}
	return n
}
