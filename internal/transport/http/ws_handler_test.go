package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomchat/roomchat/internal/proto"
)

func dialAs(t *testing.T, ctx context.Context, ts *httptest.Server, username string) *websocket.Conn {
	t.Helper()

	_, body := postJSON(t, ts, "/api/register", map[string]string{
		"username": username,
		"password": "password123",
	})
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token for %s: %v", username, body)
	}

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", username, err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })

	helloPayload, _ := json.Marshal(proto.HelloData{Token: token, Protocol: proto.ProtocolVersion})
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeHello, Data: helloPayload}); err != nil {
		t.Fatalf("send hello: %v", err)
	}

	var connected proto.Outbound
	if err := wsjson.Read(ctx, conn, &connected); err != nil {
		t.Fatalf("read connected: %v", err)
	}
	if connected.Event != proto.EventConnected {
		t.Fatalf("expected connected event, got %+v", connected)
	}

	return conn
}

func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var raw struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &raw); err != nil {
			t.Fatalf("read event %s: %v", event, err)
		}
		if raw.Event == event {
			return raw.Data
		}
	}
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}

func TestWebSocketJoinHistoryAndMessage(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialAs(t, ctx, ts, "alice")
	connB := dialAs(t, ctx, ts, "bob")

	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{Room: "General", Seq: 1})
	sendInbound(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{Room: "General", Seq: 1})

	var hist proto.ChatHistoryData
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventChatHistory), &hist); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if hist.Room != "General" || hist.Seq != 1 {
		t.Fatalf("unexpected history: %+v", hist)
	}

	sendInbound(t, ctx, connA, proto.InboundTypeMsg, proto.MsgData{Msg: "hi there", Room: "General"})

	var msg proto.MessageData
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventMessage), &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.Username != "alice" || msg.Msg != "hi there" || msg.Room != "General" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestWebSocketPrivateMessage(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialAs(t, ctx, ts, "alice")
	connB := dialAs(t, ctx, ts, "bob")

	sendInbound(t, ctx, connA, proto.InboundTypeMsg, proto.MsgData{
		Msg:    "psst",
		Type:   proto.MsgKindPrivate,
		Target: "bob",
	})

	var pm proto.PrivateMessageData
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventPrivateMessage), &pm); err != nil {
		t.Fatalf("unmarshal private message: %v", err)
	}
	if pm.From != "alice" || pm.Msg != "psst" {
		t.Fatalf("unexpected private message: %+v", pm)
	}
}

func TestWebSocketOriginEnforcement(t *testing.T) {
	ts := startTestServerOrigins(t, []string{"chat.example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	// Non-browser clients send no Origin header and pass the check.
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial without origin: %v", err)
	}
	_ = conn.Close(websocket.StatusNormalClosure, "done")

	// A cross-origin browser handshake is refused.
	_, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: stdhttp.Header{"Origin": []string{"http://evil.example.com"}},
	})
	if err == nil {
		t.Fatal("expected cross-origin dial to fail")
	}
	if resp != nil && resp.StatusCode != stdhttp.StatusForbidden {
		t.Fatalf("handshake status = %d, want %d", resp.StatusCode, stdhttp.StatusForbidden)
	}
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	helloPayload, _ := json.Marshal(proto.HelloData{Token: "garbage"})
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeHello, Data: helloPayload}); err != nil {
		t.Fatalf("send hello: %v", err)
	}

	var out proto.Outbound
	if err := wsjson.Read(ctx, conn, &out); err == nil {
		t.Fatalf("expected closed connection, got %+v", out)
	}
}
