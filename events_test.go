package cursorfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents_Dispatch(t *testing.T) {
	events := NewEvents()

	var moves [][2]float64
	var sizes [][2]int
	pSub := events.OnPointerMove(func(x, y float64) { moves = append(moves, [2]float64{x, y}) })
	rSub := events.OnResize(func(w, h int) { sizes = append(sizes, [2]int{w, h}) })
	assert.Equal(t, 2, events.ListenerCount())
	assert.NotEqual(t, pSub.ID(), rSub.ID())

	events.EmitPointerMove(10, 20)
	events.EmitResize(800, 600)
	assert.Equal(t, [][2]float64{{10, 20}}, moves)
	assert.Equal(t, [][2]int{{800, 600}}, sizes)
}

func TestSubscription_Unsubscribe(t *testing.T) {
	events := NewEvents()
	calls := 0
	sub := events.OnPointerMove(func(x, y float64) { calls++ })

	sub.Unsubscribe()
	sub.Unsubscribe()
	events.EmitPointerMove(1, 1)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, events.ListenerCount())

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Unsubscribe)
}

func TestEvents_UnsubscribeFromCallback(t *testing.T) {
	events := NewEvents()
	calls := 0
	var sub *Subscription
	sub = events.OnResize(func(w, h int) {
		calls++
		sub.Unsubscribe()
	})

	events.EmitResize(1, 1)
	events.EmitResize(2, 2)
	assert.Equal(t, 1, calls)
}
