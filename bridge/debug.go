package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gckit/go-csgo/csgo"
)

// Severity of a bridge debug message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityTrace   Severity = "trace"
)

// DebugMessage is a diagnostic message emitted by the bridge, usually the
// raw Steam traffic around the GC session.
type DebugMessage struct {
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type DebugCallback func(msg DebugMessage)

// DebugStream receives diagnostic messages from the /api/debug endpoint
// of a bridge.
type DebugStream struct {
	cfg       Config
	url       string
	tls       bool
	ws        *websocket.Conn
	callbacks map[csgo.CallbackId]DebugCallback

	enableTrace   bool
	enableInfo    bool
	enableWarning bool
	enableError   bool
}

func NewDebugStream(cfg Config) *DebugStream {
	url := trimURL(cfg.URL)
	return &DebugStream{
		cfg:           cfg,
		url:           url,
		tls:           !cfg.Insecure && isTLS(url),
		callbacks:     make(map[csgo.CallbackId]DebugCallback),
		enableTrace:   false,
		enableInfo:    true,
		enableWarning: true,
		enableError:   true,
	}
}

// SetSeverities enables/disables specific message severities.
// SetSeverities panics if it is called after Listen.
// When SetSeverities is never called all severities except trace are
// enabled.
func (s *DebugStream) SetSeverities(enableTrace, enableInfo, enableWarning, enableError bool) {
	if s.ws != nil {
		panic("cannot call SetSeverities after a connection has already been established")
	}
	s.enableTrace = enableTrace
	s.enableInfo = enableInfo
	s.enableWarning = enableWarning
	s.enableError = enableError
}

// OnMessage registers a callback that is triggered for every debug
// message. Register callbacks before calling Listen.
func (s *DebugStream) OnMessage(callback DebugCallback) csgo.CallbackId {
	id := csgo.CallbackId(uuid.New())
	s.callbacks[id] = callback
	return id
}

// RemoveCallback deletes the callback with the specified id.
func (s *DebugStream) RemoveCallback(id csgo.CallbackId) {
	delete(s.callbacks, id)
}

// ForwardToLogger registers a callback that forwards debug messages to
// the given logger at the matching level, trace maps to debug.
func (s *DebugStream) ForwardToLogger(log *zap.Logger) csgo.CallbackId {
	return s.OnMessage(func(msg DebugMessage) {
		fields := []zap.Field{zap.String("source", "bridge")}
		if len(msg.Data) > 0 {
			fields = append(fields, zap.Any("data", msg.Data))
		}
		switch msg.Severity {
		case SeverityError:
			log.Error(msg.Message, fields...)
		case SeverityWarning:
			log.Warn(msg.Message, fields...)
		case SeverityInfo:
			log.Info(msg.Message, fields...)
		default:
			log.Debug(msg.Message, fields...)
		}
	})
}

// Listen connects to the /api/debug endpoint of the bridge and triggers
// the registered callbacks until the context ends or the connection
// breaks. A close initiated by either side returns nil.
func (s *DebugStream) Listen(ctx context.Context) error {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx,
		baseURL("ws", s.tls, "%s/api/debug?trace=%t&info=%t&warning=%t&error=%t",
			s.url, s.enableTrace, s.enableInfo, s.enableWarning, s.enableError),
		s.header())
	if err != nil {
		return err
	}
	s.ws = ws

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	err = s.listen(ctx)
	if err == ErrClosed {
		return nil
	}
	return err
}

func (s *DebugStream) listen(ctx context.Context) error {
	for {
		msgType, msg, err := s.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
				return ErrClosed
			}
			if ctx.Err() != nil {
				return ErrClosed
			}
			return err
		}
		if msgType != websocket.TextMessage {
			return ErrInvalidMessageType
		}

		var message DebugMessage
		if err := json.Unmarshal(msg, &message); err != nil {
			return ErrDecodeFailed
		}
		for _, cb := range s.callbacks {
			cb(message)
		}
	}
}

func (s *DebugStream) header() http.Header {
	if s.cfg.Token == "" {
		return nil
	}
	header := make(http.Header)
	header.Set("Authorization", "Bearer "+s.cfg.Token)
	return header
}

// Close closes the underlying websocket connection.
func (s *DebugStream) Close() error {
	s.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(5*time.Second))
	return s.ws.Close()
}
