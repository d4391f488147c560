package server

import (
	"context"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/observability"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/render"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

// Origin checks are handled by the CORS middleware on the HTTP side; the
// visualization is built to be embedded in wiki pages on other hosts.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientEvent is the incoming websocket message format. One struct covers
// every event type; unused fields stay zero.
type clientEvent struct {
	Type   string  `json:"type"`
	ID     string  `json:"id,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Query  string  `json:"query,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// serverMessage is the outgoing websocket message format.
type serverMessage struct {
	Type    string              `json:"type"` // frame, search, error
	SVG     string              `json:"svg,omitempty"`
	Settled bool                `json:"settled,omitempty"`
	Pinned  string              `json:"pinned,omitempty"`
	Fade    bool                `json:"fade,omitempty"`
	Results []view.SearchResult `json:"results,omitempty"`
	Message string              `json:"message,omitempty"`
}

// session is one websocket connection with its own graph view. The run
// goroutine owns all mutable view state; the read pump only decodes events
// and never touches the view.
type session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	view   *view.GraphView
	logger *charmlog.Logger

	events chan clientEvent
	done   chan struct{}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	sess, err := s.newSession(conn)
	if err != nil {
		s.logger.Error("session setup failed", "err", err)
		conn.Close()
		return
	}
	sess.logger.Info("session opened")
	sess.run(r.Context())
	sess.logger.Info("session closed")
}

func (s *Server) newSession(conn *websocket.Conn) (*session, error) {
	id := uuid.NewString()
	logger := s.logger.With("session", id)

	// Each session gets its own copy of the node state so concurrent
	// visitors never see each other's layout.
	gv := view.New(s.dataset.Clone(), s.colors, s.tuning, s.cfg.Width, s.cfg.Height,
		view.WithLogger(logger))

	mode, err := view.ParseMode(s.cfg.Mode)
	if err != nil {
		return nil, err
	}
	if err := gv.SetMode(mode); err != nil {
		return nil, err
	}

	return &session{
		id:     id,
		server: s,
		conn:   conn,
		view:   gv,
		logger: logger,
		events: make(chan clientEvent, 64),
		done:   make(chan struct{}),
	}, nil
}

// run drives the session: one ticker at the configured frame rate advances
// the simulation and camera, client events mutate view state between ticks,
// and search queries are debounced so a burst of keystrokes costs one scan.
func (sess *session) run(ctx context.Context) {
	defer close(sess.done)
	defer sess.conn.Close()

	opened := time.Now()
	observability.Session().OnConnect(ctx, sess.id)
	defer func() {
		observability.Session().OnDisconnect(ctx, sess.id, time.Since(opened))
	}()

	go sess.readPump()

	interval := time.Second / time.Duration(sess.server.cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	debounce := time.Duration(sess.server.cfg.SearchDebounceMS) * time.Millisecond
	var (
		pendingQuery  string
		queryDue      time.Time
		searchPending bool
		idle          bool
	)

	sess.sendFrame(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-sess.events:
			if !ok {
				return
			}
			if ev.Type == "search" {
				pendingQuery = ev.Query
				queryDue = time.Now().Add(debounce)
				searchPending = true
				continue
			}
			err := sess.apply(ev)
			observability.Session().OnEvent(ctx, sess.id, ev.Type, err)
			if err != nil {
				sess.logger.Warn("event rejected", "type", ev.Type, "err", err)
				sess.send(serverMessage{Type: "error", Message: errors.UserMessage(err)})
			}
			idle = false

		case now := <-ticker.C:
			if searchPending && now.After(queryDue) {
				searchPending = false
				sess.send(serverMessage{
					Type:    "search",
					Results: sess.view.Search(pendingQuery),
				})
			}
			if sess.view.Step() {
				sess.sendFrame(ctx)
				idle = false
			} else if !idle {
				// One last frame carries the settled flag.
				sess.sendFrame(ctx)
				idle = true
			}
		}
	}
}

// readPump decodes incoming messages onto the event channel until the
// connection drops.
func (sess *session) readPump() {
	defer close(sess.events)
	for {
		var ev clientEvent
		if err := sess.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Debug("websocket read", "err", err)
			}
			return
		}
		select {
		case sess.events <- ev:
		case <-sess.done:
			return
		}
	}
}

// apply routes one client event into the view.
func (sess *session) apply(ev clientEvent) error {
	v := sess.view
	switch ev.Type {
	case "hover":
		v.Hover(ev.ID)
	case "unhover":
		v.Unhover()
	case "click":
		return v.Pin(ev.ID)
	case "clear":
		v.ClearPin()
	case "select":
		return v.Select(ev.ID)
	case "mode":
		mode, err := view.ParseMode(ev.Mode)
		if err != nil {
			return err
		}
		return v.SetMode(mode)
	case "drag_start":
		return v.DragStart(ev.ID, ev.X, ev.Y)
	case "drag":
		v.Drag(ev.X, ev.Y)
	case "drag_end":
		v.DragEnd()
	case "wheel":
		v.Wheel(ev.Factor, ev.X, ev.Y)
	case "pan_start":
		v.PanStart()
	case "pan":
		v.Pan(ev.DX, ev.DY)
	case "resize":
		v.Resize(ev.Width, ev.Height)
	default:
		return errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", ev.Type)
	}
	return nil
}

func (sess *session) sendFrame(ctx context.Context) {
	f := sess.view.Frame()
	svg := render.RenderSVG(f, render.WithBackground("#101014"))
	observability.Session().OnFrame(ctx, sess.id, len(svg))
	sess.send(serverMessage{
		Type:    "frame",
		SVG:     string(svg),
		Settled: f.Settled,
		Pinned:  f.PinnedID,
		Fade:    f.TooltipFade,
	})
}

func (sess *session) send(msg serverMessage) {
	if err := sess.conn.WriteJSON(msg); err != nil {
		sess.logger.Debug("websocket write", "err", err)
	}
}
