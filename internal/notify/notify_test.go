package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DismissesAfterTimeout(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	q := NewQueue(func() time.Time { return now })

	q.Notify("saved", Success)
	now = now.Add(time.Second)
	q.Notify("boom", Error)

	got := q.Active(now)
	require.Len(t, got, 2)
	assert.Equal(t, "saved", got[0].Message)

	got = q.Active(now.Add(2 * time.Second))
	require.Len(t, got, 1)
	assert.Equal(t, "boom", got[0].Message)

	assert.Empty(t, q.Active(now.Add(DismissAfter)))
}

func TestConsole_RoutesByKind(t *testing.T) {
	var out, errOut bytes.Buffer
	c := Console{Out: &out, Err: &errOut}

	c.Notify("created", Success)
	c.Notify("failed", Error)
	c.Notify("empty", Warning)

	assert.Contains(t, out.String(), "created")
	assert.Contains(t, errOut.String(), "failed")
	assert.Contains(t, errOut.String(), "empty")
	assert.NotContains(t, out.String(), "failed")
}

func TestFuncAndRecorder(t *testing.T) {
	var r Recorder
	var fn []string
	f := Func(func(msg string, _ Kind) { fn = append(fn, msg) })

	r.Notify("hi", Warning)
	f.Notify("hi", Warning)

	assert.Equal(t, Entry{Message: "hi", Kind: Warning}, r.Last())
	assert.Equal(t, []string{"hi"}, fn)
	assert.Equal(t, Entry{}, (&Recorder{}).Last())
	assert.Equal(t, "warning", Warning.String())
}
