// Package command recognises image search requests in group messages.
//
// A request is the trigger keyword followed (after optional spaces or
// newlines) by an image, and optionally by a similarity threshold:
//
//	以图搜图 [image]
//	以图搜图 [image] 92.5
//
// Matching runs over the chain's rendered content, where images appear as
// "[图片]".
package command
