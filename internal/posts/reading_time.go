package posts

import "strings"

// DefaultWordsPerMinute is the assumed average adult reading speed.
const DefaultWordsPerMinute = 200

// EstimateReadingTime returns the estimated reading duration in whole
// minutes for the given Markdown source, at the default reading speed.
func EstimateReadingTime(content string) int {
	return EstimateReadingTimeAt(content, DefaultWordsPerMinute)
}

// EstimateReadingTimeAt counts whitespace-separated words, divides by the
// supplied words-per-minute rate, and rounds up. The floor is one minute for
// any input, empty content included, so stored posts never show "0 min read".
func EstimateReadingTimeAt(content string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
