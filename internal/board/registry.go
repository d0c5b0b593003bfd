package board

import "sync"

// Registry maps room ids to live rooms. Rooms are created lazily on first
// join and removed once their last member leaves. The zero map is never
// exposed; construct with NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: map[string]*Room{}}
}

// GetOrCreate returns the room for id, creating an empty one if needed.
// The second result reports whether a new room was created.
func (g *Registry) GetOrCreate(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rm, ok := g.rooms[id]; ok {
		return rm, false
	}
	rm := newRoom(id)
	g.rooms[id] = rm
	return rm, true
}

// Get returns the room for id, or false when no such room exists.
func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rm, ok := g.rooms[id]
	return rm, ok
}

// Remove evicts the room for id. Removing an absent id is a no-op.
func (g *Registry) Remove(id string) {
	g.mu.Lock()
	delete(g.rooms, id)
	g.mu.Unlock()
}

// Len reports the number of live rooms.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
