package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"voxelforge.ai/internal/engine"
	"voxelforge.ai/internal/protocol"
)

// Service is the request handler the gateway implements.
type Service interface {
	HandleBuild(ctx context.Context, msg protocol.BuildMsg) (protocol.BuildResultMsg, error)
	HandleTerrain(ctx context.Context, msg protocol.TerrainMsg) (protocol.TerrainReportMsg, error)
	HandleCommand(ctx context.Context, msg protocol.CommandMsg) (protocol.CommandResultMsg, error)
	Limits() engine.Limits
}

type Server struct {
	svc Service
	log *log.Logger

	requestTimeout time.Duration
	nextSession    atomic.Uint64

	upgrader websocket.Upgrader
}

func NewServer(svc Service, logger *log.Logger) *Server {
	return &Server{
		svc:            svc,
		log:            logger,
		requestTimeout: 30 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID := s.handshake(conn)
		if sessionID == "" {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan []byte, 16)

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop. Requests run in arrival order.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				s.reply(ctx, out, errorMsg("", protocol.ErrProtoBadRequest, "", "malformed JSON"))
				continue
			}
			if base.ProtocolVersion != protocol.Version {
				s.reply(ctx, out, errorMsg("", protocol.ErrProtoBadRequest, "protocol_version",
					fmt.Sprintf("expected %s", protocol.Version)))
				continue
			}

			switch base.Type {
			case protocol.TypeBuild:
				var build protocol.BuildMsg
				if err := json.Unmarshal(msg, &build); err != nil {
					s.reply(ctx, out, errorMsg("", protocol.ErrProtoBadRequest, "", "malformed BUILD"))
					continue
				}
				rctx, done := context.WithTimeout(ctx, s.requestTimeout)
				res, err := s.svc.HandleBuild(rctx, build)
				done()
				if err != nil {
					s.logErr(sessionID, base.Type, err)
					s.reply(ctx, out, errorFrom(build.ID, err))
					continue
				}
				s.reply(ctx, out, res)

			case protocol.TypeTerrain:
				var terr protocol.TerrainMsg
				if err := json.Unmarshal(msg, &terr); err != nil {
					s.reply(ctx, out, errorMsg("", protocol.ErrProtoBadRequest, "", "malformed TERRAIN"))
					continue
				}
				rctx, done := context.WithTimeout(ctx, s.requestTimeout)
				res, err := s.svc.HandleTerrain(rctx, terr)
				done()
				if err != nil {
					s.logErr(sessionID, base.Type, err)
					s.reply(ctx, out, errorFrom(terr.ID, err))
					continue
				}
				s.reply(ctx, out, res)

			case protocol.TypeCommand:
				var cmd protocol.CommandMsg
				if err := json.Unmarshal(msg, &cmd); err != nil {
					s.reply(ctx, out, errorMsg("", protocol.ErrProtoBadRequest, "", "malformed COMMAND"))
					continue
				}
				rctx, done := context.WithTimeout(ctx, s.requestTimeout)
				res, err := s.svc.HandleCommand(rctx, cmd)
				done()
				if err != nil {
					s.logErr(sessionID, base.Type, err)
					s.reply(ctx, out, errorFrom(cmd.ID, err))
					continue
				}
				s.reply(ctx, out, res)

			default:
				s.reply(ctx, out, errorMsg("", protocol.ErrProtoBadRequest, "type",
					fmt.Sprintf("unexpected message type %q", base.Type)))
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) string {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return ""
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return ""
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return ""
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return ""
	}

	limits := s.svc.Limits()
	sessionID := fmt.Sprintf("S%d", s.nextSession.Add(1))
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		Limits: protocol.LimitsInfo{
			MaxRegionVolume:  limits.MaxRegionVolume,
			MaxStructureSpan: limits.MaxStructureSpan,
		},
	}
	if err := writeJSON(conn, welcome); err != nil {
		return ""
	}
	if s.log != nil {
		s.log.Printf("session %s connected (%s)", sessionID, hello.ClientName)
	}
	return sessionID
}

func (s *Server) reply(ctx context.Context, out chan []byte, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case out <- b:
	case <-ctx.Done():
	}
}

func (s *Server) logErr(sessionID, msgType string, err error) {
	if s.log != nil {
		s.log.Printf("session %s %s failed: %v", sessionID, msgType, err)
	}
}

func errorMsg(id, code, param, message string) protocol.ErrorMsg {
	return protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		ID:              id,
		Code:            code,
		Param:           param,
		Message:         message,
	}
}

func errorFrom(id string, err error) protocol.ErrorMsg {
	var e *engine.Error
	if errors.As(err, &e) {
		return errorMsg(id, e.Code, e.Param, e.Message)
	}
	return errorMsg(id, protocol.ErrInternal, "", err.Error())
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
