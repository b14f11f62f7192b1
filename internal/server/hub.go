package server

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomchat/roomchat/internal/store"
)

// historyLimit caps the number of messages replayed on join.
const historyLimit = 100

// Hub owns all rooms, memberships, and presence. All state is touched
// only from the Run goroutine; connections interact with it through
// client command/event channels.
type Hub struct {
	rooms       []string
	defaultRoom string
	store       store.MessageStore
	log         *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	active     map[string]*Room
	membership map[*Client]string
	order      []*Client // registration order, drives the roster
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub for the given room namespace. A nil store
// disables history replay and persistence, which is how unit tests run.
func NewHub(rooms []string, defaultRoom string, st store.MessageStore, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		rooms:       rooms,
		defaultRoom: defaultRoom,
		store:       st,
		log:         logger,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		commands:    make(chan clientCommand, 64),
		active:      make(map[string]*Room),
		membership:  make(map[*Client]string),
	}
}

// RegisterClient adds a client to the hub and starts pumping its
// commands into the hub loop.
func (h *Hub) RegisterClient(ctx context.Context, c *Client) {
	h.register <- c
	go h.pump(ctx, c)
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.order = append(h.order, c)
			h.log.Info().Str("client_id", c.ID).Str("user", c.Name).Msg("client connected")
			h.broadcastPresence()
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case cc := <-h.commands:
			h.handleCommand(ctx, cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleCommand(ctx context.Context, c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(ctx, c, cmd.Room, cmd.Seq)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd.Room)
	case CommandSendRoomMessage:
		h.handleRoomMessage(ctx, c, cmd.Room, cmd.Body)
	case CommandSendPrivateMessage:
		h.handlePrivateMessage(ctx, c, cmd.Target, cmd.Body)
	default:
		h.sendError(c, ErrCodeBadRequest, "unknown command")
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, roomName string, seq uint64) {
	if !h.validRoom(roomName) {
		h.log.Warn().Str("room", roomName).Str("user", c.Name).Msg("invalid room join attempt")
		h.sendError(c, ErrCodeRoomNotFound, "room not found")
		return
	}

	if prev, ok := h.membership[c]; ok {
		h.removeFromRoom(c, prev, true)
	}

	room := h.room(roomName)
	room.AddClient(c)
	h.membership[c] = roomName

	h.sendHistory(ctx, c, roomName, seq)
	room.Broadcast(&Event{
		Kind: EventStatus,
		Room: roomName,
		User: c.Name,
		Body: c.Name + " has joined the room.",
	})

	h.log.Info().Str("user", c.Name).Str("room", roomName).Msg("user joined room")
}

func (h *Hub) handleLeave(c *Client, roomName string) {
	if h.membership[c] != roomName {
		h.sendError(c, ErrCodeNotInRoom, "not in room")
		return
	}
	h.removeFromRoom(c, roomName, true)
	delete(h.membership, c)
}

func (h *Hub) handleRoomMessage(ctx context.Context, c *Client, roomName, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	if !h.validRoom(roomName) {
		h.log.Warn().Str("room", roomName).Msg("message to invalid room")
		h.sendError(c, ErrCodeRoomNotFound, "room not found")
		return
	}
	if h.membership[c] != roomName {
		h.sendError(c, ErrCodeNotInRoom, "not in room")
		return
	}

	h.persist(ctx, c.Name, roomName, body)

	h.room(roomName).Broadcast(&Event{
		Kind: EventRoomMessage,
		Room: roomName,
		User: c.Name,
		Body: body,
	})
	h.log.Debug().Str("user", c.Name).Str("room", roomName).Msg("room message sent")
}

func (h *Hub) handlePrivateMessage(ctx context.Context, c *Client, target, body string) {
	body = strings.TrimSpace(body)
	if body == "" || target == "" {
		return
	}

	// Private traffic is persisted under the default room, same shelf
	// as everything else.
	h.persist(ctx, c.Name, h.defaultRoom, body)

	delivered := false
	for _, other := range h.order {
		if other.Name != target {
			continue
		}
		h.send(other, &Event{Kind: EventPrivateMessage, User: c.Name, Body: body})
		delivered = true
	}

	if !delivered {
		h.log.Warn().Str("from", c.Name).Str("target", target).Msg("private message failed, user not found")
		return
	}
	h.log.Info().Str("from", c.Name).Str("target", target).Msg("private message sent")
}

func (h *Hub) handleDisconnect(c *Client) {
	if roomName, ok := h.membership[c]; ok {
		h.removeFromRoom(c, roomName, true)
		delete(h.membership, c)
	}

	for i, other := range h.order {
		if other == c {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}

	h.log.Info().Str("client_id", c.ID).Str("user", c.Name).Msg("client disconnected")
	h.broadcastPresence()
}

func (h *Hub) sendHistory(ctx context.Context, c *Client, roomName string, seq uint64) {
	items := []HistoryItem{}
	if h.store != nil {
		msgs, err := h.store.RoomHistory(ctx, roomName, historyLimit)
		if err != nil {
			h.log.Error().Err(err).Str("room", roomName).Msg("load history")
		}
		for _, m := range msgs {
			items = append(items, HistoryItem{Username: m.Username, Body: m.Body})
		}
	}

	h.send(c, &Event{
		Kind:    EventHistory,
		Room:    roomName,
		Seq:     seq,
		History: items,
	})
}

func (h *Hub) broadcastPresence() {
	users := make([]string, 0, len(h.order))
	for _, c := range h.order {
		users = append(users, c.Name)
	}
	for _, c := range h.order {
		h.send(c, &Event{Kind: EventActiveUsers, Users: users})
	}
}

func (h *Hub) removeFromRoom(c *Client, roomName string, notify bool) {
	room, ok := h.active[roomName]
	if !ok {
		return
	}
	if !room.RemoveClient(c) {
		return
	}
	if notify {
		room.Broadcast(&Event{
			Kind: EventStatus,
			Room: roomName,
			User: c.Name,
			Body: c.Name + " has left the room.",
		})
	}
}

func (h *Hub) persist(ctx context.Context, username, room, body string) {
	if h.store == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := h.store.SaveMessage(saveCtx, username, room, body); err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("persist message")
	}
}

func (h *Hub) room(name string) *Room {
	room, ok := h.active[name]
	if !ok {
		room = NewRoom(name)
		h.active[name] = room
	}
	return room
}

func (h *Hub) validRoom(name string) bool {
	for _, r := range h.rooms {
		if r == name {
			return true
		}
	}
	return false
}

func (h *Hub) sendError(c *Client, code, msg string) {
	h.send(c, &Event{Kind: EventError, Error: domainError(code, msg)})
}

func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
