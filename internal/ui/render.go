package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/cache"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/paging"
)

// Header renders the title line with live counts.
func Header(user string, s cache.Stats) string {
	return fmt.Sprintf("%s %s   %s %d  %s %d  %s %d",
		TitleStyle.Render("Todos"),
		MutedStyle.Render("@"+user),
		SuccessStyle.Render("✔"), s.Done,
		PendingStyle.Render("•"), s.Pending(),
		AccentStyle.Render("Total"), s.Total,
	)
}

// PageButtons renders the pagination control on one line. Disabled
// controls are faint, the active page is reversed.
func PageButtons(bs []paging.Button) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		s := b.String()
		switch {
		case b.Disabled:
			s = MutedStyle.Render(s)
		case b.Active:
			s = ActivePage.Render(" " + s + " ")
		case b.Kind == paging.ButtonEllipsis:
			s = MutedStyle.Render(s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// ItemLine renders one to-do with its checkbox and age.
func ItemLine(n int, it model.TodoItem, done bool, now time.Time) string {
	box := MutedStyle.Render(BoxUnchecked)
	text := it.Text
	if done {
		box = SuccessStyle.Render(BoxChecked)
		text = DoneStyle.Render(text)
	}
	return fmt.Sprintf("%s %s %s  %s",
		MutedStyle.Render(fmt.Sprintf("%2d.", n)),
		box, text,
		MutedStyle.Render(RelativeTime(it.LastEditedAt, now)),
	)
}

// RelativeTime describes how long ago stamp was: "just now", minutes,
// hours or days, and the raw stamp once it is a week old or unparsable.
func RelativeTime(stamp string, now time.Time) string {
	t, err := model.ParseTimestamp(stamp)
	if err != nil {
		return stamp
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d d ago", int(d/(24*time.Hour)))
	}
	return stamp
}
