package web

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/app"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *zap.Logger
	cookie    string
	heartbeat time.Duration
}

func (h *handlers) renderGame(gs app.GameState, animate bool) []byte {
	b, err := renderTemplate(h.tpl.game, gameData{Game: gs.View, Animate: animate})
	if err != nil {
		h.log.Error("render game fragment", zap.String("session", gs.ID), zap.Error(err))
	}
	return b
}

// session returns the caller's session, starting one (and setting the cookie)
// when the request has no cookie or refers to an expired session.
func (h *handlers) session(w http.ResponseWriter, r *http.Request) *app.GameState {
	var id string
	if c, err := r.Cookie(h.cookie); err == nil {
		id = c.Value
	}
	gs, created := h.svc.Open(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookie,
			Value:    gs.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return gs
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	gs := h.session(w, r)
	body, err := renderTemplate(h.tpl.page, gameData{Game: gs.View})
	if err != nil {
		h.log.Error("render page", zap.String("session", gs.ID), zap.Error(err))
		http.Error(w, "failed to render", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// formInt parses a form field; anything unparsable maps to -1, which every
// engine operation ignores.
func formInt(r *http.Request, key string) int {
	_ = r.ParseForm()
	v, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		return -1
	}
	return v
}

func (h *handlers) move(w http.ResponseWriter, r *http.Request) {
	idx := formInt(r, "i")
	h.apply(w, r, true, func(id string) (*app.GameState, error) {
		return h.svc.Move(id, idx)
	})
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, false, h.svc.Reset)
}

// apply runs op against the caller's session and answers htmx requests with
// the game fragment. Plain form posts are redirected back to the page.
func (h *handlers) apply(w http.ResponseWriter, r *http.Request, animate bool, op func(id string) (*app.GameState, error)) {
	cur := h.session(w, r)
	gs, err := op(cur.ID)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log.Error("apply game operation", zap.String("session", cur.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	changed := gs.View.Step != cur.View.Step
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderGame(*gs, animate && changed))
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// non-EventSource requests only get the headers
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	gs := h.session(w, r)
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, gs.ID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	sc := bufio.NewScanner(bytes.NewReader(payload))
	for sc.Scan() {
		_, _ = fmt.Fprintf(w, "data: %s\n", sc.Text())
	}
	_, _ = io.WriteString(w, "\n")
}
