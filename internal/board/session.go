package board

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/myk225/mini-draw/pkg/metrics"
)

// DefaultName is used when a join request carries no display name.
const DefaultName = "anon"

// Session is the server-side state of one live connection. RoomID is the
// back-reference to the session's current room (empty while unjoined) so
// disconnect cleanup is a direct lookup, not a registry scan.
type Session struct {
	ID     string
	Name   string
	RoomID string

	out    Sender
	closed bool
}

// Service is the session handler: it owns a Registry and applies every
// inbound event to room state, then fans the resulting frames out. A
// single mutex serializes join, stroke, clear, presence, and disconnect
// so concurrent connections never interleave a compound mutation (a clear
// racing a stroke append lands in one of the two well-defined states).
type Service struct {
	log *slog.Logger

	mu       sync.Mutex
	registry *Registry
}

// NewService builds a session handler over the given registry. The
// registry is injected so tests can run several independent instances.
func NewService(logger *slog.Logger, registry *Registry) *Service {
	return &Service{log: logger, registry: registry}
}

// Registry exposes the backing registry, mainly for tests and admin
// surfaces. Mutating rooms through it directly is not safe.
func (s *Service) Registry() *Registry { return s.registry }

// Connect creates the session for a freshly accepted connection.
func (s *Service) Connect(out Sender) *Session {
	sess := &Session{ID: uuid.NewString(), out: out}
	s.log.Debug("session.connect", "session", sess.ID)
	return sess
}

// Dispatch routes one decoded event to its handler. The event set is
// closed; DecodeEvent already rejected anything else.
func (s *Service) Dispatch(sess *Session, ev Event) {
	switch ev.Type {
	case EventJoin:
		s.Join(sess, ev.RoomID, ev.Name)
	case EventStroke:
		s.Stroke(sess, ev.RoomID, *ev.Stroke)
	case EventClear:
		s.Clear(sess, ev.RoomID)
	case EventGetPresence:
		s.Presence(sess, ev.RoomID)
	}
}

// Join moves the session into roomID, creating the room if needed. The
// joiner alone receives the catch-up snapshot of everything drawn so far;
// every member, joiner included, then receives the updated presence list.
// An empty roomID is protocol misuse: the requester gets an error frame
// and no room state changes. A session already in a room leaves it first;
// membership is single-room.
func (s *Service) Join(sess *Session, roomID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if roomID == "" {
		sess.out.Send(EncodeError("join-room requires a valid roomId"))
		return
	}
	if name == "" {
		name = DefaultName
	}

	if sess.RoomID != "" && sess.RoomID != roomID {
		s.leaveLocked(sess)
	}

	rm, created := s.registry.GetOrCreate(roomID)
	if created {
		metrics.RoomsActive.Inc()
		s.log.Info("room.created", "room", roomID)
	}

	if sess.RoomID == roomID {
		rm.rename(sess.ID, name)
	} else {
		rm.addMember(sess.ID, name, sess.out)
	}
	sess.Name = name
	sess.RoomID = roomID

	sess.out.Send(EncodeInitStrokes(rm.Snapshot()))
	rm.broadcast(EncodePresence(rm.Names()), "")

	s.log.Info("session.join", "session", sess.ID, "room", roomID, "name", name)
}

// Stroke appends one stroke to the room's log and relays it to every
// other member. Strokes referencing a room that does not exist are
// dropped without an error; a client racing its own disconnect or a room
// reap is not misbehaving.
func (s *Service) Stroke(sess *Session, roomID string, st Stroke) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		return
	}
	rm.appendStroke(st)
	metrics.StrokesTotal.Inc()
	rm.broadcast(EncodeStroke(st), sess.ID)
}

// Clear truncates the room's stroke log and notifies every member,
// sender included. Unknown rooms are dropped silently.
func (s *Service) Clear(sess *Session, roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		return
	}
	rm.clearStrokes()
	rm.broadcast(EncodeClear(), "")
	s.log.Info("room.cleared", "room", roomID, "session", sess.ID)
}

// Presence answers the requester, and only the requester, with the
// room's current display names. An unknown room yields an empty list.
func (s *Service) Presence(sess *Session, roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.registry.Get(roomID)
	if !ok {
		sess.out.Send(EncodePresence(nil))
		return
	}
	sess.out.Send(EncodePresence(rm.Names()))
}

// Disconnect runs the session's cleanup: leave the current room,
// broadcast the shrunken presence list, and reap the room if it emptied.
// It is idempotent; the transport layer may call it from multiple exit
// paths but the cleanup runs once.
func (s *Service) Disconnect(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.closed {
		return
	}
	sess.closed = true

	s.leaveLocked(sess)
	s.log.Debug("session.disconnect", "session", sess.ID)
}

// leaveLocked removes the session from its current room, if any. Caller
// holds s.mu.
func (s *Service) leaveLocked(sess *Session) {
	if sess.RoomID == "" {
		return
	}
	roomID := sess.RoomID
	sess.RoomID = ""

	rm, ok := s.registry.Get(roomID)
	if !ok || !rm.removeMember(sess.ID) {
		return
	}
	if rm.empty() {
		s.registry.Remove(roomID)
		metrics.RoomsActive.Dec()
		s.log.Info("room.reaped", "room", roomID)
		return
	}
	rm.broadcast(EncodePresence(rm.Names()), "")
}
