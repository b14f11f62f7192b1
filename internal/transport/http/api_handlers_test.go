package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestRegisterLoginAndGuest(t *testing.T) {
	ts := startTestServer(t)

	status, body := postJSON(t, ts, "/api/register", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if status != http.StatusCreated || body["token"] == "" {
		t.Fatalf("register: status=%d body=%v", status, body)
	}

	status, _ = postJSON(t, ts, "/api/register", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: status=%d", status)
	}

	status, body = postJSON(t, ts, "/api/login", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if status != http.StatusOK || body["token"] == "" {
		t.Fatalf("login: status=%d body=%v", status, body)
	}

	status, _ = postJSON(t, ts, "/api/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login: status=%d", status)
	}

	status, body = postJSON(t, ts, "/api/guest", map[string]string{})
	if status != http.StatusOK || body["token"] == "" || body["username"] == "" {
		t.Fatalf("guest: status=%d body=%v", status, body)
	}
}

func TestRoomsEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms")
	if err != nil {
		t.Fatalf("rooms request failed: %v", err)
	}
	defer resp.Body.Close()

	var body RoomsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}
	if len(body.Rooms) != 2 || body.Rooms[0] != "General" {
		t.Fatalf("unexpected rooms: %v", body.Rooms)
	}
}
