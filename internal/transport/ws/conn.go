package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/roomchat/roomchat/internal/client"
	"github.com/roomchat/roomchat/internal/proto"
)

// Handler receives the inbound half of the event channel. It is the
// session's reaction surface; all calls happen from the ReadLoop
// goroutine, one at a time.
type Handler interface {
	HandleConnected(ctx context.Context)
	HandleRoomMessage(room, sender, body string)
	HandlePrivateMessage(from, body string)
	HandleStatus(body string)
	HandlePresence(users []string)
	HandleHistory(room string, seq uint64, entries []client.HistoryEntry)
}

// Conn implements client.Transport over a WebSocket connection.
type Conn struct {
	conn *websocket.Conn
	log  *zerolog.Logger
}

// Dial connects to addr and authenticates with token. The server's
// connected event is delivered later through ReadLoop.
func Dial(ctx context.Context, addr, token string, logger *zerolog.Logger) (*Conn, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	c := &Conn{conn: conn, log: logger}
	if err := c.emit(ctx, proto.InboundTypeHello, proto.HelloData{
		Token:    token,
		Protocol: proto.ProtocolVersion,
	}); err != nil {
		conn.Close(websocket.StatusInternalError, "hello failed")
		return nil, fmt.Errorf("hello: %w", err)
	}

	return c, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "bye")
}

// JoinRoom emits a join intent.
func (c *Conn) JoinRoom(ctx context.Context, room string, seq uint64) error {
	return c.emit(ctx, proto.InboundTypeJoin, proto.JoinData{Room: room, Seq: seq})
}

// LeaveRoom emits a leave intent.
func (c *Conn) LeaveRoom(ctx context.Context, room string) error {
	return c.emit(ctx, proto.InboundTypeLeave, proto.LeaveData{Room: room})
}

// SendRoomMessage emits a room broadcast intent.
func (c *Conn) SendRoomMessage(ctx context.Context, room, body string) error {
	return c.emit(ctx, proto.InboundTypeMsg, proto.MsgData{Msg: body, Room: room})
}

// SendPrivateMessage emits a private send intent.
func (c *Conn) SendPrivateMessage(ctx context.Context, target, body string) error {
	return c.emit(ctx, proto.InboundTypeMsg, proto.MsgData{
		Msg:    body,
		Type:   proto.MsgKindPrivate,
		Target: target,
	})
}

func (c *Conn) emit(ctx context.Context, typ string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	return wsjson.Write(ctx, c.conn, proto.Inbound{Type: typ, Data: payload})
}

// envelope mirrors proto.Outbound with raw data for deferred decoding.
type envelope struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

// ReadLoop decodes inbound frames and dispatches them to h until ctx
// is cancelled or the connection closes. Returns nil on an orderly
// close.
func (c *Conn) ReadLoop(ctx context.Context, h Handler) error {
	for {
		var env envelope
		if err := wsjson.Read(ctx, c.conn, &env); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}

		if env.Type == proto.OutboundTypeError {
			if env.Error != nil {
				c.log.Warn().Str("code", env.Error.Code).Str("msg", env.Error.Msg).Msg("server error")
			}
			continue
		}

		c.dispatch(ctx, h, env)
	}
}

func (c *Conn) dispatch(ctx context.Context, h Handler, env envelope) {
	switch env.Event {
	case proto.EventConnected:
		h.HandleConnected(ctx)
	case proto.EventMessage:
		var data proto.MessageData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.log.Warn().Err(err).Msg("unmarshal message event")
			return
		}
		h.HandleRoomMessage(data.Room, data.Username, data.Msg)
	case proto.EventPrivateMessage:
		var data proto.PrivateMessageData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.log.Warn().Err(err).Msg("unmarshal private_message event")
			return
		}
		h.HandlePrivateMessage(data.From, data.Msg)
	case proto.EventStatus:
		var data proto.StatusData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.log.Warn().Err(err).Msg("unmarshal status event")
			return
		}
		h.HandleStatus(data.Msg)
	case proto.EventActiveUsers:
		var data proto.ActiveUsersData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.log.Warn().Err(err).Msg("unmarshal active_users event")
			return
		}
		h.HandlePresence(data.Users)
	case proto.EventChatHistory:
		var data proto.ChatHistoryData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.log.Warn().Err(err).Msg("unmarshal chat_history event")
			return
		}
		entries := make([]client.HistoryEntry, 0, len(data.Messages))
		for _, m := range data.Messages {
			entries = append(entries, client.HistoryEntry{Sender: m.Username, Body: m.Message})
		}
		h.HandleHistory(data.Room, data.Seq, entries)
	default:
		c.log.Debug().Str("event", env.Event).Msg("unknown event ignored")
	}
}
