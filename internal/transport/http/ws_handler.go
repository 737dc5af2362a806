package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/engine"
)

// WSHandler plays single-player games over a websocket. Each connection owns at
// most one live session at a time; nothing is shared between connections.
type WSHandler struct {
	service  *app.GameService
	defaults domain.SessionConfig
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, defaults domain.SessionConfig) *WSHandler {
	return &WSHandler{
		service:  service,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// startPayload fields left out fall back to the handler defaults; an explicit
// zero is kept so that validation rejects it.
type startPayload struct {
	Difficulty      string `json:"difficulty"`
	Rounds          *int   `json:"rounds"`
	SecondsPerRound *int   `json:"secondsPerRound"`
}

type answerPayload struct {
	Round  int    `json:"round"`
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &wsConn{
		handler:      h,
		send:         make(chan outboundMessage[any], 16),
		closeSignals: make(chan struct{}),
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				cancel()
				// Keep draining so producers never block on a dead connection.
				for range c.send {
				}
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		c.handle(ctx, inbound)
	}

	c.abandon()
	close(c.closeSignals)
	c.forwarders.Wait()
	close(c.send)
	<-writerDone
}

// wsConn is the per-connection state. Only the read loop touches session.
type wsConn struct {
	handler      *WSHandler
	session      *engine.Session
	send         chan outboundMessage[any]
	closeSignals chan struct{}
	forwarders   sync.WaitGroup
}

func (c *wsConn) handle(ctx context.Context, inbound inboundMessage) {
	switch inbound.Type {
	case "start":
		var payload startPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				c.sendError("invalid start payload")
				return
			}
		}
		c.abandon()
		session, err := c.handler.service.StartGame(ctx, c.handler.sessionConfig(payload))
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.session = session
		c.forwarders.Add(1)
		go c.forward(session)
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.sendError("invalid answer payload")
			return
		}
		if c.session == nil {
			c.sendError(domain.ErrSessionNotFound.Error())
			return
		}
		if err := c.handler.service.SubmitAnswer(c.session.ID(), payload.Round, payload.Option); err != nil {
			c.sendError(err.Error())
		}
	case "quit":
		if c.session == nil {
			c.sendError(domain.ErrSessionNotFound.Error())
			return
		}
		c.abandon()
	default:
		c.sendError("unsupported message type")
	}
}

// forward relays one session's snapshots and its end signal to the writer.
func (c *wsConn) forward(session *engine.Session) {
	defer c.forwarders.Done()
	for snap := range session.Snapshots() {
		if !c.push(outboundMessage[any]{Type: "round", Payload: snap}) {
			return
		}
	}
	if result, ok := <-session.Done(); ok {
		c.push(outboundMessage[any]{Type: "ended", Payload: result})
	}
}

func (c *wsConn) push(msg outboundMessage[any]) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.closeSignals:
		return false
	}
}

func (c *wsConn) sendError(message string) {
	c.push(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}})
}

func (c *wsConn) abandon() {
	if c.session == nil {
		return
	}
	// A session that already finished has been unregistered; that is fine.
	_ = c.handler.service.Abandon(c.session.ID())
	c.session = nil
}

func (h *WSHandler) sessionConfig(p startPayload) domain.SessionConfig {
	cfg := h.defaults
	if p.Difficulty != "" {
		cfg.Difficulty = domain.ParseDifficulty(p.Difficulty)
	}
	if p.Rounds != nil {
		cfg.RoundCount = *p.Rounds
	}
	if p.SecondsPerRound != nil {
		cfg.SecondsPerRound = *p.SecondsPerRound
	}
	return cfg
}
