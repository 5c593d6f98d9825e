package indexer

import "iter"

// Window is one fixed-size slice of a section body.
type Window struct {
	Text  string
	Start int // Offset within the body
	End   int
}

// Windows yields overlapping fixed-size windows over body. The sequence is
// lazy and restartable. A body no longer than maxChars yields one window;
// otherwise consecutive windows overlap by exactly overlap characters, except
// possibly the final one, and every character is covered by at least one
// window. Callers must ensure 0 <= overlap < maxChars.
func Windows(body string, maxChars, overlap int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if len(body) <= maxChars {
			yield(Window{Text: body, Start: 0, End: len(body)})
			return
		}

		offset := 0
		for offset < len(body) {
			end := offset + maxChars
			if end > len(body) {
				end = len(body)
			}
			if !yield(Window{Text: body[offset:end], Start: offset, End: end}) {
				return
			}
			next := offset + maxChars - overlap
			if next < 0 {
				next = 0
			}
			offset = next
		}
	}
}
