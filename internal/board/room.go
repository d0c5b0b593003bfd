package board

// Sender delivers one encoded server frame to a client. Implementations
// must not block; delivery is best-effort.
type Sender interface {
	Send(b []byte)
}

type member struct {
	id   string
	name string
	out  Sender
}

// Room holds the shared state of one collaboration namespace: the
// append-only stroke log and the ordered member list. Rooms carry no lock
// of their own; the Service serializes all mutation (the Registry only
// guards its map).
type Room struct {
	ID      string
	strokes []Stroke
	members []member
}

func newRoom(id string) *Room {
	return &Room{ID: id}
}

func (r *Room) addMember(id, name string, out Sender) {
	r.members = append(r.members, member{id: id, name: name, out: out})
}

// removeMember drops the member with the given connection id, preserving
// the join order of the rest. Reports whether the member was present.
func (r *Room) removeMember(id string) bool {
	for i, m := range r.members {
		if m.id == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) empty() bool { return len(r.members) == 0 }

// rename updates the display name of an existing member in place.
func (r *Room) rename(id, name string) {
	for i := range r.members {
		if r.members[i].id == id {
			r.members[i].name = name
			return
		}
	}
}

// Names returns the display names of current members in join order.
func (r *Room) Names() []string {
	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		names = append(names, m.name)
	}
	return names
}

// Snapshot copies the current stroke log, in append order.
func (r *Room) Snapshot() []Stroke {
	out := make([]Stroke, len(r.strokes))
	copy(out, r.strokes)
	return out
}

func (r *Room) appendStroke(s Stroke) {
	r.strokes = append(r.strokes, s)
}

func (r *Room) clearStrokes() {
	r.strokes = nil
}

// broadcast fans an encoded frame out to every member except exceptID
// (empty string means everyone). Sends never block; a slow receiver may
// miss frames but never sees them reordered.
func (r *Room) broadcast(b []byte, exceptID string) {
	for _, m := range r.members {
		if m.id == exceptID {
			continue
		}
		m.out.Send(b)
	}
}
