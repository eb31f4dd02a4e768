package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestRunHubBroadcast(t *testing.T) {
	hub := NewRunHub(nil)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// registration goes through the hub goroutine; give it a beat
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(RunEvent{
		Type:      "run_completed",
		RunID:     "run_001",
		DatasetID: "ds_001",
		ModelID:   "model_001",
		Explainer: "lime",
		Metric:    "comprehensiveness",
		Score:     0.75,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var event RunEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("bad event payload: %v", err)
	}
	if event.Type != "run_completed" || event.RunID != "run_001" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Score != 0.75 {
		t.Errorf("expected score 0.75, got %v", event.Score)
	}
	if event.Timestamp.IsZero() {
		t.Error("broadcast should stamp the event")
	}
}

func TestBroadcastDoesNotBlockWithoutHubLoop(t *testing.T) {
	hub := NewRunHub(nil)
	// no Run() goroutine; every broadcast must still return promptly
	for i := 0; i < 1000; i++ {
		hub.Broadcast(RunEvent{Type: "run_started", DatasetID: "ds_001", ModelID: "model_001"})
	}
}
