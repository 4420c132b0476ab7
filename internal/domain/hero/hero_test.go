package hero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
)

func TestSendRequest_ZeroRequestIsRejected(t *testing.T) {
	h := &hero.Info{Inventory: resources.New(100, 100, 100, 100)}

	resp := h.SendRequest(resources.Zero)

	assert.Equal(t, hero.Rejected, resp.Status)
	assert.True(t, resp.Provided.IsZero())
	assert.True(t, h.Reserved.IsZero())
}

func TestSendRequest_FullCoverageIsAcceptedAndReserved(t *testing.T) {
	h := &hero.Info{Inventory: resources.New(1000, 1000, 1000, 1000)}
	request := resources.New(100, 100, 100, 100)

	resp := h.SendRequest(request)

	assert.Equal(t, hero.Accepted, resp.Status)
	assert.Equal(t, request, resp.Provided)
	// Accepted requests reserve too, so a later request in the same pass
	// cannot double-spend the inventory.
	assert.Equal(t, request, h.Reserved)
}

func TestSendRequest_DisjointRequestIsRejectedWithoutMutation(t *testing.T) {
	h := &hero.Info{Inventory: resources.Of(resources.Iron, 100)}

	resp := h.SendRequest(resources.New(10, 5, 0, 0))

	assert.Equal(t, hero.Rejected, resp.Status)
	assert.True(t, h.Reserved.IsZero())
}

func TestSendRequest_PartialOverlapProvidesWhatItCan(t *testing.T) {
	h := &hero.Info{Inventory: resources.New(50, 0, 200, 0)}

	resp := h.SendRequest(resources.New(100, 100, 100, 0))

	assert.Equal(t, hero.PartiallyAccepted, resp.Status)
	assert.Equal(t, resources.New(50, 0, 100, 0), resp.Provided)
	assert.Equal(t, resources.New(50, 0, 100, 0), h.Reserved)
}

func TestSendRequest_ReservationsAreMonotoneAndBounded(t *testing.T) {
	h := &hero.Info{Inventory: resources.New(100, 100, 100, 100)}

	first := h.SendRequest(resources.New(80, 0, 0, 0))
	second := h.SendRequest(resources.New(80, 0, 0, 0))
	third := h.SendRequest(resources.New(80, 0, 0, 0))

	assert.Equal(t, hero.Accepted, first.Status)
	assert.Equal(t, hero.PartiallyAccepted, second.Status)
	assert.Equal(t, resources.New(20, 0, 0, 0), second.Provided)
	// Lumber is exhausted now; the third request shares no available kind.
	assert.Equal(t, hero.Rejected, third.Status)
	assert.True(t, h.Inventory.Covers(h.Reserved))
}

func TestCanGoOnAdventure(t *testing.T) {
	h := &hero.Info{Health: 60, Adventures: 2, IsAvailable: true}
	assert.True(t, h.CanGoOnAdventure())

	h.Health = 20
	assert.False(t, h.CanGoOnAdventure())

	h.Health = 60
	h.Adventures = 0
	assert.False(t, h.CanGoOnAdventure())

	h.Adventures = 1
	h.IsAvailable = false
	assert.False(t, h.CanGoOnAdventure())
}
