package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/live"
	"github.com/borex256/century-music-empire/pkg/gateway/config"
	"github.com/borex256/century-music-empire/pkg/gateway/mw"
	"github.com/borex256/century-music-empire/pkg/gateway/ratelimit"
)

// LiveHandler bridges /v1/live websocket connections to an AI terminal
// session. Each connection owns one session controller: client
// audio_frame messages feed the capture pipeline, and model audio plus
// state transitions stream back as JSON frames.
type LiveHandler struct {
	Config  config.Config
	Dialer  live.Dialer
	Logger  *slog.Logger
	Limiter *ratelimit.Limiter
}

type liveClientFrame struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

type liveServerFrame struct {
	Type     string `json:"type"`
	State    string `json:"state,omitempty"`
	Data     string `json:"data,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (h LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID, _ := mw.RequestIDFrom(r.Context())

	if r.Method != http.MethodGet {
		writeCoreErrorJSON(w, reqID, &core.Error{
			Type:    core.ErrInvalidRequest,
			Message: "method not allowed",
			Code:    "method_not_allowed",
		}, http.StatusMethodNotAllowed)
		return
	}
	if h.Dialer == nil {
		writeCoreErrorJSON(w, reqID, &core.Error{
			Type:    core.ErrSession,
			Message: "live terminal is not configured",
			Code:    "live_disabled",
		}, http.StatusServiceUnavailable)
		return
	}
	if !h.originAllowed(r) {
		writeCoreErrorJSON(w, reqID, &core.Error{
			Type:    core.ErrAuthentication,
			Message: "origin is not allowed",
			Param:   "Origin",
		}, http.StatusForbidden)
		return
	}

	var permit *ratelimit.Permit
	if h.Limiter != nil {
		dec := h.Limiter.Acquire(mw.ClientKey(r, h.Config), ratelimit.KindSession, time.Now())
		if !dec.Allowed {
			writeCoreErrorJSON(w, reqID, &core.Error{
				Type:    core.ErrRateLimit,
				Message: "too many live sessions",
			}, http.StatusTooManyRequests)
			return
		}
		permit = dec.Permit
	}
	defer permit.Release()

	upgrader := websocket.Upgrader{
		HandshakeTimeout: h.Config.LiveHandshakeTimeout,
		CheckOrigin:      func(*http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if h.Config.LiveMaxJSONMessageBytes > 0 {
		conn.SetReadLimit(h.Config.LiveMaxJSONMessageBytes)
	}

	h.run(r.Context(), conn, reqID)
}

func (h LiveHandler) run(ctx context.Context, conn *websocket.Conn, reqID string) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, h.Config.LiveMaxSessionDuration)
	defer cancel()

	writer := &wsWriter{conn: conn, timeout: h.Config.LiveWSWriteTimeout}
	source := newWSFrameSource()
	output := &wsOutput{writer: writer}

	ctrl, err := live.NewController(live.ControllerConfig{
		Dialer: h.Dialer,
		Source: source,
		Output: output,
		Logger: logger,
	})
	if err != nil {
		_ = writer.writeJSON(liveServerFrame{Type: "error", Code: "session", Message: "failed to initialize session"})
		return
	}

	// The session clock is the connection context; when it ends the
	// socket closes and the read loop unwinds.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	// Keepalive. WriteControl is safe alongside other writers.
	go func() {
		ticker := time.NewTicker(h.Config.LiveWSPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deadline := time.Now().Add(h.Config.LiveWSWriteTimeout)
				_ = conn.WriteControl(websocket.PingMessage, nil, deadline)
			}
		}
	}()

	pumpCtx, stopPump := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.pumpEvents(pumpCtx, ctrl, writer, conn)
	}()

	if err := ctrl.Start(ctx); err != nil {
		logger.Error("live session start failed", "request_id", reqID, "error", err)
	} else {
		h.readLoop(conn, source, writer, logger, reqID)
	}

	ctrl.Stop()
	stopPump()
	wg.Wait()
	logger.Info("live session ended",
		"request_id", reqID,
		"state", ctrl.State().String(),
		"frames_sent", ctrl.CaptureStats().FramesSent,
	)
}

// readLoop consumes client frames until the socket drops, the client
// sends stop, or a protocol violation forces closure.
func (h LiveHandler) readLoop(conn *websocket.Conn, source *wsFrameSource, writer *wsWriter, logger *slog.Logger, reqID string) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			h.closeWithError(conn, writer, "bad_request", "frames must be JSON text messages")
			return
		}

		var frame liveClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.closeWithError(conn, writer, "bad_request", "invalid JSON frame")
			return
		}

		switch strings.TrimSpace(frame.Type) {
		case "audio_frame":
			pcm, err := base64.StdEncoding.DecodeString(frame.Data)
			if err != nil {
				h.closeWithError(conn, writer, "bad_request", "audio_frame data must be base64")
				return
			}
			if len(pcm) > h.Config.LiveMaxAudioFrameBytes {
				h.closeWithError(conn, writer, "frame_too_large", "audio frame exceeds the size limit")
				return
			}
			source.push(live.DecodePCM(pcm, live.CaptureConfig()).Samples)
		case "stop":
			return
		default:
			logger.Warn("ignoring unknown live frame", "request_id", reqID, "frame_type", frame.Type)
		}
	}
}

// pumpEvents forwards controller state transitions to the client. A
// terminal transition closes the socket after the frame is written.
func (h LiveHandler) pumpEvents(ctx context.Context, ctrl *live.Controller, writer *wsWriter, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ctrl.Events():
			change, ok := event.(live.StateChangeEvent)
			if !ok {
				continue
			}
			frame := liveServerFrame{Type: "state", State: change.To.String()}
			if change.Err != nil {
				frame.Message = change.Err.Error()
			}
			_ = writer.writeJSON(frame)
			if change.To.Terminal() {
				deadline := time.Now().Add(h.Config.LiveWSWriteTimeout)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, change.To.String()), deadline)
				conn.Close()
				return
			}
		}
	}
}

func (h LiveHandler) closeWithError(conn *websocket.Conn, writer *wsWriter, code, message string) {
	_ = writer.writeJSON(liveServerFrame{Type: "error", Code: code, Message: message})
	deadline := time.Now().Add(h.Config.LiveWSWriteTimeout)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, message), deadline)
}

func (h LiveHandler) originAllowed(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	if len(h.Config.CORSAllowedOrigins) == 0 {
		return false
	}
	_, ok := h.Config.CORSAllowedOrigins[origin]
	return ok
}

// wsWriter serializes JSON writes to one connection.
type wsWriter struct {
	conn    *websocket.Conn
	timeout time.Duration

	mu sync.Mutex
}

func (w *wsWriter) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.timeout))
	}
	return w.conn.WriteJSON(v)
}

// wsFrameSource adapts inbound websocket audio to the capture pipeline.
// Frames arriving while the pipeline is busy are dropped rather than
// buffered without bound.
type wsFrameSource struct {
	frames chan []float32
	closed chan struct{}
	once   sync.Once
}

func newWSFrameSource() *wsFrameSource {
	return &wsFrameSource{
		frames: make(chan []float32, 32),
		closed: make(chan struct{}),
	}
}

func (s *wsFrameSource) push(samples []float32) {
	if len(samples) == 0 {
		return
	}
	select {
	case s.frames <- samples:
	case <-s.closed:
	default:
	}
}

func (s *wsFrameSource) ReadFrame(ctx context.Context) ([]float32, error) {
	select {
	case samples := <-s.frames:
		return samples, nil
	case <-s.closed:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *wsFrameSource) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

// wsOutput streams scheduled model audio back over the socket.
type wsOutput struct {
	writer *wsWriter
}

func (o *wsOutput) PlayAt(buf live.PlaybackBuffer, start float64) error {
	chunk := live.EncodeFrame(buf.Samples, buf.Config)
	return o.writer.writeJSON(liveServerFrame{
		Type:     "audio",
		Data:     chunk.Data,
		MIMEType: chunk.MIMEType,
	})
}
