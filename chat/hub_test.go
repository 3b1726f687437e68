package chat

import (
	"encoding/json"
	"testing"
	"time"

	"agora/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "room1",
	}

	hub.register <- client

	msg := outboundPayload{Action: "chat", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "room1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestSeededClientSurvivesImmediateDisconnect(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 256), Room: "room1"}
	seedHistory(client, []models.Message{
		{MessageID: "m1", ChatID: "room1", UserID: "u1", Content: "hello", SentAt: time.Now()},
	})

	// connect-then-disconnect right away: the hub closes Send on
	// unregister, so all seeding must be done before registration
	hub.register <- client
	hub.unregister <- client

	data, ok := <-client.Send
	if !ok {
		t.Fatal("expected the seeded frame before close")
	}
	var out outboundPayload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	if out.ID != "m1" || out.SenderID != "u1" {
		t.Fatalf("unexpected frame %+v", out)
	}
	if _, ok := <-client.Send; ok {
		t.Fatal("expected Send closed after the seeded frames drain")
	}
}

func TestSeedHistoryDropsFramesBeyondBuffer(t *testing.T) {
	client := &Client{Send: make(chan []byte, 2), Room: "room1"}
	seedHistory(client, []models.Message{
		{MessageID: "m1", ChatID: "room1"},
		{MessageID: "m2", ChatID: "room1"},
		{MessageID: "m3", ChatID: "room1"},
	})
	if len(client.Send) != 2 {
		t.Fatalf("expected a full buffer and no blocking, got %d frames", len(client.Send))
	}
}

func TestHubBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), Room: "roomA"}
	b := &Client{Send: make(chan []byte, 10), Room: "roomB"}
	hub.register <- a
	hub.register <- b

	hub.broadcast <- broadcastMsg{Room: "roomA", Data: []byte("only-a")}

	select {
	case got := <-a.Send:
		if string(got) != "only-a" {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for roomA message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("roomB should not receive %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
