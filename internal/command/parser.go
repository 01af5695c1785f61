package command

import (
	"regexp"
	"strconv"

	"searchbyimage/internal/domain"
)

const (
	// Trigger is the keyword that starts an image search.
	Trigger = "以图搜图"

	// DefaultThreshold applies when the command carries no threshold.
	DefaultThreshold = 80.0
)

var (
	// thresholdPattern is checked first; its group captures the threshold.
	thresholdPattern = regexp.MustCompile(`(?s)` + Trigger + `[ \n]*?\[图片\][ \n]*?(\d\d?\.\d\d?|\d\d?)`)
	simplePattern    = regexp.MustCompile(`(?s)` + Trigger + `[ \n]*?\[图片\]`)
)

// Command is a parsed image search request.
type Command struct {
	Image     domain.Segment
	Threshold float64
}

// Parse reports whether chain asks for an image search.
//
// The trigger, the image placeholder and an optional threshold may appear
// anywhere in the rendered content. The searched image is always the first
// image of the chain, so a matching message without an image is ignored.
func Parse(chain domain.MessageChain) (Command, bool) {
	content := chain.ContentString()

	var cmd Command
	if m := thresholdPattern.FindStringSubmatch(content); m != nil {
		th, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Command{}, false
		}
		cmd.Threshold = th
	} else if simplePattern.MatchString(content) {
		cmd.Threshold = DefaultThreshold
	} else {
		return Command{}, false
	}

	img, ok := chain.FirstImage()
	if !ok {
		return Command{}, false
	}
	cmd.Image = img
	return cmd, true
}
