package util

import "strings"

const (
	paragraphBreak     = "\n\n"
	sentenceTerminator = ". "
)

// SplitText cuts text into ordered segments of at most maxChunkSize runes,
// preferring paragraph breaks, then sentence terminators, falling back to a
// hard cut at the size limit. Concatenating the returned segments in order
// reproduces the input exactly.
func SplitText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 4000
	}
	runes := []rune(text)
	if len(runes) <= maxChunkSize {
		return []string{text}
	}
	out := make([]string, 0, len(runes)/maxChunkSize+1)
	start := 0
	for len(runes)-start > maxChunkSize {
		window := string(runes[start : start+maxChunkSize])
		cut := maxChunkSize
		if i := strings.LastIndex(window, paragraphBreak); i >= 0 {
			cut = len([]rune(window[:i+len(paragraphBreak)]))
		} else if i := strings.LastIndex(window, sentenceTerminator); i >= 0 {
			cut = len([]rune(window[:i+len(sentenceTerminator)]))
		}
		// A breakpoint that makes no forward progress would loop forever.
		if cut <= 0 {
			cut = maxChunkSize
		}
		out = append(out, string(runes[start:start+cut]))
		start += cut
	}
	return append(out, string(runes[start:]))
}
