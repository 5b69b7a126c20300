package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
	"github.com/borex256/century-music-empire/pkg/gateway/mw"
)

// ARClient evaluates submitted demo lyrics. Implemented by the Gemini
// provider; tests use a stub.
type ARClient interface {
	DemoFeedback(ctx context.Context, lyrics string) (*types.DemoFeedback, error)
}

// DemoHandler serves demo submissions. One evaluation runs at a time;
// a submission while another is pending is rejected rather than queued.
type DemoHandler struct {
	AR           ARClient
	MaxBodyBytes int64
	Timeout      time.Duration

	mu sync.Mutex
}

type demoRequest struct {
	Lyrics string `json:"lyrics"`
}

func (h *DemoHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.AR == nil {
		reqID, _ := mw.RequestIDFrom(r.Context())
		writeCoreErrorJSON(w, reqID, &core.Error{
			Type:    core.ErrSession,
			Message: "demo evaluation is not configured",
			Code:    "demo_disabled",
		}, http.StatusServiceUnavailable)
		return
	}

	var req demoRequest
	if err := decodeJSON(r, h.MaxBodyBytes, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if !h.mu.TryLock() {
		writeError(w, r, core.NewSessionError("an evaluation is already in progress"))
		return
	}
	defer h.mu.Unlock()

	ctx, cancel := boundedContext(r, h.Timeout)
	defer cancel()

	feedback, err := h.AR.DemoFeedback(ctx, req.Lyrics)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}
