package client

import "context"

// Transport is the outbound half of the event channel to the remote
// service. Emission is fire-and-forget: the session logs failures but
// never blocks on, retries, or awaits acknowledgement of them.
type Transport interface {
	JoinRoom(ctx context.Context, room string, seq uint64) error
	LeaveRoom(ctx context.Context, room string) error
	SendRoomMessage(ctx context.Context, room, body string) error
	SendPrivateMessage(ctx context.Context, target, body string) error
}
