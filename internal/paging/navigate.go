package paging

type targetKind int

const (
	targetNone targetKind = iota
	targetPrev
	targetNext
	targetPage
)

// Target is a navigation request: previous page, next page or an explicit
// page number. The zero Target navigates nowhere.
type Target struct {
	kind targetKind
	page int
}

// Prev targets the previous page.
func Prev() Target { return Target{kind: targetPrev} }

// Next targets the next page.
func Next() Target { return Target{kind: targetNext} }

// PageNumber targets page n.
func PageNumber(n int) Target { return Target{kind: targetPage, page: n} }


// Navigate returns the page reached from current by t. Prev on the first
// page and Next on the last are no-ops; explicit pages are clamped.
func Navigate(t Target, current, count int) int {
	current = Clamp(current, count)
	switch t.kind {
	case targetPrev:
		return max(1, current-1)
	case targetNext:
		return min(max(count, 1), current+1)
	case targetPage:
		return Clamp(t.page, count)
	}
	return current
}
