package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHubBroadcast(t *testing.T) {
	hub := newHub()
	alice := &Client{userID: 1, send: make(chan ServerEvent, 16)}
	bob := &Client{userID: 2, send: make(chan ServerEvent, 16)}
	hub.register(alice)
	hub.register(bob)

	event := ServerEvent{Type: "message", From: 1, Data: "hello"}
	hub.broadcast(event)

	for _, c := range []*Client{alice, bob} {
		select {
		case received := <-c.send:
			if received.Type != "message" {
				t.Errorf("Expected type message, got %s", received.Type)
			}
			if received.From != 1 {
				t.Errorf("Expected from 1, got %d", received.From)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("Client %d did not receive broadcast in time", c.userID)
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := newHub()
	client := &Client{userID: 456, send: make(chan ServerEvent, 16)}
	hub.register(client)

	if len(hub.clients) != 1 {
		t.Errorf("Expected 1 client, got %d", len(hub.clients))
	}

	hub.unregister(client)

	if len(hub.clients) != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", len(hub.clients))
	}

	// Broadcast to an empty hub must not block or panic
	hub.broadcast(ServerEvent{Type: "message", Data: "into the void"})
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := newHub()
	slow := &Client{userID: 9, send: make(chan ServerEvent)} // unbuffered, nobody reading
	hub.register(slow)

	done := make(chan struct{})
	go func() {
		hub.broadcast(ServerEvent{Type: "message", Data: "dropped"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
}

func TestWsChatHandlerRejectsUnauthenticated(t *testing.T) {
	jwtSecret = []byte("test-secret-key-for-testing")

	req := httptest.NewRequest(http.MethodGet, "/ws/chat", nil)
	w := httptest.NewRecorder()

	wsChatHandler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated upgrade, got %d", w.Code)
	}
}
