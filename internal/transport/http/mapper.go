package http

import (
	"encoding/json"
	"time"

	"github.com/roomchat/roomchat/internal/proto"
	"github.com/roomchat/roomchat/internal/server"
)

func inboundToCommand(inbound proto.Inbound) (*server.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: server.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &server.Command{
			Kind: server.CommandJoinRoom,
			Room: join.Room,
			Seq:  join.Seq,
		}, nil, nil
	case proto.InboundTypeLeave:
		var leave proto.LeaveData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, nil, err
		}
		if leave.Room == "" {
			return nil, &proto.Error{Code: server.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &server.Command{
			Kind: server.CommandLeaveRoom,
			Room: leave.Room,
		}, nil, nil
	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Type == proto.MsgKindPrivate {
			if msg.Target == "" {
				return nil, &proto.Error{Code: server.ErrCodeBadRequest, Msg: "target is required"}, nil
			}
			return &server.Command{
				Kind:   server.CommandSendPrivateMessage,
				Target: msg.Target,
				Body:   msg.Msg,
			}, nil, nil
		}
		if msg.Room == "" {
			return nil, &proto.Error{Code: server.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &server.Command{
			Kind: server.CommandSendRoomMessage,
			Room: msg.Room,
			Body: msg.Msg,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: server.ErrCodeBadRequest, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *server.Event) proto.Outbound {
	switch event.Kind {
	case server.EventRoomMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data: proto.MessageData{
				Username: event.User,
				Msg:      event.Body,
				Room:     event.Room,
				TS:       time.Now().Unix(),
			},
		}
	case server.EventPrivateMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPrivateMessage,
			Data: proto.PrivateMessageData{
				From: event.User,
				Msg:  event.Body,
				TS:   time.Now().Unix(),
			},
		}
	case server.EventStatus:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventStatus,
			Data:  proto.StatusData{Msg: event.Body},
		}
	case server.EventActiveUsers:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventActiveUsers,
			Data:  proto.ActiveUsersData{Users: event.Users},
		}
	case server.EventHistory:
		messages := make([]proto.HistoryMessage, 0, len(event.History))
		for _, item := range event.History {
			messages = append(messages, proto.HistoryMessage{
				Username: item.Username,
				Message:  item.Body,
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatHistory,
			Data: proto.ChatHistoryData{
				Room:     event.Room,
				Seq:      event.Seq,
				Messages: messages,
			},
		}
	case server.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
