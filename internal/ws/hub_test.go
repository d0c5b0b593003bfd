package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/myk225/mini-draw/internal/board"
)

func newTestServer(t *testing.T) (*httptest.Server, *board.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := board.NewService(logger, board.NewRegistry())
	hub := NewHub(logger, svc, 64)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)
	return srv, svc
}

func dial(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = c.Close(websocket.StatusNormalClosure, "") })
	return c
}

type frame struct {
	Type    string         `json:"type"`
	Strokes []board.Stroke `json:"strokes"`
	Stroke  *board.Stroke  `json:"stroke"`
	Users   []string       `json:"users"`
	Message string         `json:"message"`
}

func send(t *testing.T, ctx context.Context, c *websocket.Conn, v string) {
	t.Helper()
	if err := c.Write(ctx, websocket.MessageText, []byte(v)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func recv(t *testing.T, ctx context.Context, c *websocket.Conn) frame {
	t.Helper()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

func TestServeWSScenario(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	alice := dial(t, ctx, srv.URL)
	send(t, ctx, alice, `{"type":"join-room","roomId":"X","name":"alice"}`)
	if f := recv(t, ctx, alice); f.Type != "init-strokes" || len(f.Strokes) != 0 {
		t.Fatalf("alice catch-up = %+v, want empty init-strokes", f)
	}
	if f := recv(t, ctx, alice); f.Type != "presence" || !reflect.DeepEqual(f.Users, []string{"alice"}) {
		t.Fatalf("alice presence = %+v", f)
	}

	bob := dial(t, ctx, srv.URL)
	send(t, ctx, bob, `{"type":"join-room","roomId":"X","name":"bob"}`)
	if f := recv(t, ctx, bob); f.Type != "init-strokes" {
		t.Fatalf("bob catch-up = %+v", f)
	}
	want := []string{"alice", "bob"}
	if f := recv(t, ctx, bob); f.Type != "presence" || !reflect.DeepEqual(f.Users, want) {
		t.Fatalf("bob presence = %+v, want %v", f, want)
	}
	if f := recv(t, ctx, alice); f.Type != "presence" || !reflect.DeepEqual(f.Users, want) {
		t.Fatalf("alice presence after bob joined = %+v, want %v", f, want)
	}

	// Alice draws; only bob sees the stroke.
	send(t, ctx, alice, `{"type":"stroke","roomId":"X","stroke":{"x0":0,"y0":0,"x1":10,"y1":10,"color":"#000","width":2}}`)
	st := board.Stroke{X1: 10, Y1: 10, Color: "#000", Width: 2}
	if f := recv(t, ctx, bob); f.Type != "stroke" || *f.Stroke != st {
		t.Fatalf("bob stroke = %+v, want %+v", f, st)
	}

	// Bob clears; both see it, including bob.
	send(t, ctx, bob, `{"type":"clear","roomId":"X"}`)
	if f := recv(t, ctx, alice); f.Type != "clear" {
		t.Fatalf("alice after clear = %+v, want clear (and no echo of her own stroke)", f)
	}
	if f := recv(t, ctx, bob); f.Type != "clear" {
		t.Fatalf("bob after clear = %+v", f)
	}

	// Alice leaves; bob sees presence shrink.
	_ = alice.Close(websocket.StatusNormalClosure, "")
	if f := recv(t, ctx, bob); f.Type != "presence" || !reflect.DeepEqual(f.Users, []string{"bob"}) {
		t.Fatalf("bob presence after alice left = %+v", f)
	}

	// Bob leaves; the room is reaped.
	_ = bob.Close(websocket.StatusNormalClosure, "")
	deadline := time.Now().Add(5 * time.Second)
	for svc.Registry().Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("room X not reaped after last member left")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeWSMalformedFrameKeepsConnectionAlive(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	c := dial(t, ctx, srv.URL)
	send(t, ctx, c, `this is not json`)
	if f := recv(t, ctx, c); f.Type != "error" || f.Message == "" {
		t.Fatalf("reply to garbage = %+v, want error", f)
	}

	// Connection still usable afterwards.
	send(t, ctx, c, `{"type":"join-room","roomId":"R","name":"alice"}`)
	if f := recv(t, ctx, c); f.Type != "init-strokes" {
		t.Fatalf("join after garbage = %+v", f)
	}
}

func TestServeWSJoinWithoutRoomID(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	c := dial(t, ctx, srv.URL)
	send(t, ctx, c, `{"type":"join-room","name":"alice"}`)
	if f := recv(t, ctx, c); f.Type != "error" {
		t.Fatalf("reply = %+v, want error", f)
	}
	if svc.Registry().Len() != 0 {
		t.Fatal("rejected join created a room")
	}
}
