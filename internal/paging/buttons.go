package paging

import "strconv"

// ButtonKind tags a Button.
type ButtonKind int

const (
	ButtonPrev ButtonKind = iota
	ButtonPage
	ButtonEllipsis
	ButtonNext
)

func (k ButtonKind) String() string {
	switch k {
	case ButtonPrev:
		return "prev"
	case ButtonPage:
		return "page"
	case ButtonEllipsis:
		return "ellipsis"
	case ButtonNext:
		return "next"
	}
	return "unknown"
}

// Button is one element of the pagination control.
// Page is set for ButtonPage only.
type Button struct {
	Kind     ButtonKind
	Page     int
	Active   bool
	Disabled bool
}

// Target returns the navigation a click on b performs, and false for
// ellipses and disabled buttons.
func (b Button) Target() (Target, bool) {
	if b.Disabled {
		return Target{}, false
	}
	switch b.Kind {
	case ButtonPrev:
		return Prev(), true
	case ButtonNext:
		return Next(), true
	case ButtonPage:
		return PageNumber(b.Page), true
	}
	return Target{}, false
}

func (b Button) String() string {
	switch b.Kind {
	case ButtonPrev:
		return "‹"
	case ButtonNext:
		return "›"
	case ButtonEllipsis:
		return "…"
	}
	return strconv.Itoa(b.Page)
}

// BuildButtons lays out the pagination control for current out of count
// pages with a window of at most maxVisible page numbers. It returns nil
// when there is a single page.
func BuildButtons(current, count, maxVisible int) []Button {
	if count <= 1 {
		return nil
	}
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	current = Clamp(current, count)

	start := max(1, current-maxVisible/2)
	end := min(count, start+maxVisible-1)
	if end-start < maxVisible-1 {
		start = max(1, end-maxVisible+1)
	}

	out := make([]Button, 0, maxVisible+6)
	out = append(out, Button{Kind: ButtonPrev, Disabled: current == 1})

	if start > 1 {
		out = append(out, Button{Kind: ButtonPage, Page: 1})
		if start > 2 {
			out = append(out, Button{Kind: ButtonEllipsis})
		}
	}
	for p := start; p <= end; p++ {
		out = append(out, Button{Kind: ButtonPage, Page: p, Active: p == current})
	}
	if end < count {
		if end < count-1 {
			out = append(out, Button{Kind: ButtonEllipsis})
		}
		out = append(out, Button{Kind: ButtonPage, Page: count})
	}

	out = append(out, Button{Kind: ButtonNext, Disabled: current == count})
	return out
}
