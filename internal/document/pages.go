package document

import "strings"

// PageSentinel delimits pages inside a single concatenated markup blob. It is
// a block-level, non-text element the editing surface never emits through
// normal formatting, so it cannot collide with stored markup.
const PageSentinel = `<hr class="page-break" contenteditable="false">`

// JoinPages concatenates pages into one blob using the page sentinel.
func JoinPages(pages []string) string {
	return strings.Join(pages, PageSentinel)
}

// SplitPages reverses JoinPages: SplitPages(JoinPages(p)) == p for any
// sequence, including single-element sequences and empty pages.
func SplitPages(blob string) []string {
	return strings.Split(blob, PageSentinel)
}
