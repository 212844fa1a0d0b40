//go:build unit || !integration

package stream

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatchOrder(t *testing.T) {
	r := NewRouter(zerolog.Nop())

	var calls []int
	r.On(KindQRUpdated, func(Event) { calls = append(calls, 1) })
	r.On(KindQRUpdated, func(Event) { calls = append(calls, 2) })
	r.On(KindMessageStatus, func(Event) { calls = append(calls, 99) })
	r.On(KindQRUpdated, func(Event) { calls = append(calls, 3) })

	r.Dispatch(Event{Kind: KindQRUpdated})
	require.Equal(t, []int{1, 2, 3}, calls)
}

func TestRouterRemove(t *testing.T) {
	r := NewRouter(zerolog.Nop())

	var calls []string
	a := r.On(KindOpen, func(Event) { calls = append(calls, "a") })
	r.On(KindOpen, func(Event) { calls = append(calls, "b") })
	require.Equal(t, 2, r.Count(KindOpen))

	a.Remove()
	a.Remove()
	require.Equal(t, 1, r.Count(KindOpen))

	r.Dispatch(Event{Kind: KindOpen})
	require.Equal(t, []string{"b"}, calls)

	var nilReg *Registration
	require.NotPanics(t, nilReg.Remove)
}

func TestRouterRemoveDuringDispatch(t *testing.T) {
	r := NewRouter(zerolog.Nop())

	var calls []string
	var second *Registration
	r.On(KindClose, func(Event) {
		calls = append(calls, "first")
		second.Remove()
	})
	second = r.On(KindClose, func(Event) { calls = append(calls, "second") })

	// the snapshot taken at dispatch still includes the removed listener
	r.Dispatch(Event{Kind: KindClose})
	require.Equal(t, []string{"first", "second"}, calls)

	r.Dispatch(Event{Kind: KindClose})
	require.Equal(t, []string{"first", "second", "first"}, calls)
}

func TestRouterRegisterDuringDispatch(t *testing.T) {
	r := NewRouter(zerolog.Nop())

	count := 0
	r.On(KindOpen, func(Event) {
		r.On(KindOpen, func(Event) { count++ })
	})

	r.Dispatch(Event{Kind: KindOpen})
	require.Equal(t, 0, count)
	r.Dispatch(Event{Kind: KindOpen})
	require.Equal(t, 1, count)
}

func TestRouterDropsUnobservedEvents(t *testing.T) {
	r := NewRouter(zerolog.Nop())
	require.NotPanics(t, func() {
		r.Dispatch(Event{Kind: "presence.update"})
		r.Dispatch(errorEvent(NewDecodeError([]byte("x"), "malformed envelope", nil)))
	})
}

func TestRouterIgnoresNilHandler(t *testing.T) {
	r := NewRouter(zerolog.Nop())

	reg := r.On(KindOpen, nil)
	require.Equal(t, 0, r.Count(KindOpen))
	require.NotPanics(t, func() { r.Dispatch(openEvent()) })
	require.NotPanics(t, reg.Remove)
}
