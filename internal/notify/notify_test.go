package notify

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Notify(Notification{Title: "x"})
		}()
	}
	wg.Wait()
	assert.Len(t, r.All(), 20)

	r.Notify(Notification{Title: "last", Variant: Destructive})
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "last", last.Title)
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	Multi{&a, nil, &b}.Notify(Notification{Title: "hi"})
	assert.Len(t, a.All(), 1)
	assert.Len(t, b.All(), 1)
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Notify(Notification{Title: "Saved", Description: "All good"})
	p.Notify(Notification{Title: "Error", Description: "locked", Variant: Destructive})
	p.Notify(Notification{Title: "Bare"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Saved")
	assert.Contains(t, lines[0], "All good")
	assert.Contains(t, lines[1], "locked")
	assert.Contains(t, lines[2], "Bare")
}

func TestLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLogged(zap.New(core))

	l.Notify(Notification{Title: "ok"})
	l.Notify(Notification{Title: "bad", Description: "locked", Variant: Destructive})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "locked", entries[1].ContextMap()["description"])
}
