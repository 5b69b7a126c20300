package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"google.golang.org/genai"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/live"
)

// Dial opens one live voice session. The returned handle emits an open
// event once setup finishes, then audio events as the model speaks.
// One connection per session; there is no reconnect.
func (c *Client) Dial(ctx context.Context) (live.Handle, error) {
	session, err := c.api.Live.Connect(ctx, c.cfg.LiveModel, &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction:  genai.NewContentFromText(c.cfg.SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return nil, core.NewProviderError("gemini", err)
	}

	h := &liveHandle{
		session: session,
		log:     c.cfg.Logger,
		events:  make(chan live.HandleEvent, 32),
	}
	h.open.Store(true)
	go h.receive()
	return h, nil
}

type liveHandle struct {
	session *genai.Session
	log     *slog.Logger

	open      atomic.Bool
	events    chan live.HandleEvent
	closeOnce sync.Once
}

// Send forwards one capture chunk as realtime input. Chunks sent after
// the session has closed are dropped silently.
func (h *liveHandle) Send(chunk live.EncodedChunk) error {
	if !h.open.Load() {
		return nil
	}
	pcm, err := chunk.PCM()
	if err != nil {
		return core.NewInvalidRequestError("capture chunk is not valid base64")
	}
	sendErr := h.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{Data: pcm, MIMEType: chunk.MIMEType},
	})
	if sendErr != nil {
		return core.NewProviderError("gemini", sendErr)
	}
	return nil
}

func (h *liveHandle) Events() <-chan live.HandleEvent {
	return h.events
}

// Close tears down the connection. Safe to call repeatedly; the receive
// loop drains out on the closed transport.
func (h *liveHandle) Close() error {
	h.closeOnce.Do(func() {
		h.open.Store(false)
		if err := h.session.Close(); err != nil {
			h.log.Debug("gemini live session close", "error", err)
		}
	})
	return nil
}

// receive is the single reader of the session. It translates server
// messages into handle events and closes the channel on exit.
func (h *liveHandle) receive() {
	defer close(h.events)
	defer h.open.Store(false)

	h.events <- live.OpenEvent{}

	for {
		msg, err := h.session.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) || !h.open.Load() {
				h.events <- live.CloseEvent{}
				return
			}
			h.events <- live.ErrorEvent{Err: core.NewProviderError("gemini", err)}
			return
		}
		for _, chunk := range audioChunks(msg) {
			h.events <- chunk
		}
	}
}

// audioChunks extracts inline audio from one server message. Messages
// without audio (setup acks, turn boundaries) yield nothing.
func audioChunks(msg *genai.LiveServerMessage) []live.AudioEvent {
	if msg == nil || msg.ServerContent == nil || msg.ServerContent.ModelTurn == nil {
		return nil
	}
	var out []live.AudioEvent
	for _, part := range msg.ServerContent.ModelTurn.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		chunk := live.EncodeBytes(part.InlineData.Data, part.InlineData.MIMEType)
		out = append(out, live.AudioEvent{Chunk: chunk})
	}
	return out
}
