package bus

import (
	"sync"
	"testing"
	"time"

	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan ledger.FilterPatch) ledger.FilterPatch {
	t.Helper()
	select {
	case p, ok := <-ch:
		require.True(t, ok, "channel closed")
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for patch")
		return nil
	}
}

func TestEmitReachesEverySubscriber(t *testing.T) {
	b := New(nil)
	a, unsubA := b.Subscribe()
	c, unsubC := b.Subscribe()
	defer unsubA()
	defer unsubC()

	patch := ledger.CategoryPatch{Value: "alim", Mode: ledger.ModeToggle}
	b.Emit(patch)

	assert.Equal(t, patch, receive(t, a))
	assert.Equal(t, patch, receive(t, c))
}

func TestLateSubscriberGetsLastPatch(t *testing.T) {
	b := New(nil)
	b.Emit(ledger.TypePatch{Value: ledger.Entrada})
	b.Emit(ledger.CurrentMonthPatch{})

	ch, unsub := b.Subscribe()
	defer unsub()

	assert.Equal(t, ledger.CurrentMonthPatch{}, receive(t, ch))
	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, ledger.CurrentMonthPatch{}, last)
}

func TestNoReplayBeforeFirstEmit(t *testing.T) {
	b := New(nil)
	ch, unsub := b.Subscribe()
	defer unsub()

	select {
	case p := <-ch:
		t.Fatalf("unexpected patch %v", p)
	default:
	}
	_, ok := b.Last()
	assert.False(t, ok)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New(nil)
	ch, unsub := b.Subscribe()
	unsub()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)

	b.Emit(ledger.ClearAllPatch{})
}

func TestCloseEndsSubscriptions(t *testing.T) {
	b := New(nil)
	ch, unsub := b.Subscribe()
	b.Close()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)

	late, _ := b.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := New(nil)
	_, unsub := b.Subscribe()
	defer unsub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			b.Emit(ledger.CategoryPatch{Value: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a full subscriber")
	}
}

func TestConcurrentEmitters(t *testing.T) {
	b := New(nil)
	ch, unsub := b.Subscribe()
	defer unsub()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Emit(ledger.TypePatch{Value: ledger.Saida})
		}()
	}
	wg.Wait()

	assert.Len(t, ch, 8)
}
