package listener

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pathctx/pkg/completion"
	"pathctx/pkg/conf"
	"pathctx/pkg/slog"
)

const maxMessageSize = 1 << 20

// Server answers completion requests over websocket connections
type Server struct {
	source   *completion.Source
	config   conf.Config
	logger   *slog.Logger
	upgrader *websocket.Upgrader
}

// NewServer creates a Server, cfg is the base every request blob is merged on
func NewServer(source *completion.Source, cfg conf.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.NewNopLogger()
	}
	return &Server{
		source:   source,
		config:   cfg,
		logger:   logger,
		upgrader: newUpgrader(),
	}
}

// Handler returns the router serving the websocket endpoint
func (s *Server) Handler(rc *RouterConfig) http.Handler {
	return NewRouter(rc, s)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.ErrorWith("Failed to upgrade connection",
			slog.F("remote_addr", r.RemoteAddr),
			slog.F("err", err))
		return
	}
	sess := newSession(s, conn)
	s.logger.InfoWith("Connection established",
		slog.F("session", sess.id),
		slog.F("remote_addr", r.RemoteAddr))
	sess.serve()
	s.logger.InfoWith("Connection closed", slog.F("session", sess.id))
}

// inflight is the latest complete request of a buffer. seq is assigned by
// the session, client ids may repeat.
type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// session is a single websocket connection. Requests run concurrently,
// writes go through writeMu.
type session struct {
	id     string
	server *Server
	conn   *websocket.Conn

	ctx    context.Context
	cancel context.CancelFunc

	writeMu sync.Mutex

	mu       sync.Mutex
	seq      uint64
	inflight map[string]*inflight

	wg sync.WaitGroup
}

func newSession(s *Server, conn *websocket.Conn) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:       uuid.NewString(),
		server:   s,
		conn:     conn,
		ctx:      ctx,
		cancel:   cancel,
		inflight: make(map[string]*inflight),
	}
}

func (sess *session) serve() {
	defer func() {
		sess.cancel()
		sess.wg.Wait()
		_ = sess.conn.Close()
	}()
	sess.conn.SetReadLimit(maxMessageSize)

	for {
		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.server.logger.DebugWith("Read failed",
					slog.F("session", sess.id),
					slog.F("err", err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		sess.dispatch(data)
	}
}

// dispatch registers complete requests before handing them to a goroutine
// so a later message on the same buffer always supersedes an earlier one
func (sess *session) dispatch(data []byte) {
	m, err := parseMessage(data)
	if err != nil {
		sess.write(Response{ID: m.ID, Error: err.Error()})
		return
	}
	sess.server.logger.DebugWith("Request received",
		slog.F("session", sess.id),
		slog.F("id", m.ID),
		slog.F("method", m.Method),
		slog.F("buffer", m.Buffer))

	if m.Method == MethodCapabilities {
		sess.write(Response{
			ID: m.ID,
			Capabilities: &Capabilities{
				ProtoVersion:      conf.ProtoVersion,
				TriggerCharacters: sess.server.source.TriggerCharacters(),
				KeywordPattern:    completion.KeywordPattern,
			},
		})
		return
	}

	cfg, err := conf.WithBlob(sess.server.config, m.ConfigBlob)
	if err != nil {
		sess.write(Response{ID: m.ID, Error: err.Error()})
		return
	}

	switch m.Method {
	case MethodComplete:
		ctx, seq := sess.begin(m.Buffer)
		sess.wg.Add(1)
		go sess.complete(ctx, seq, m, cfg)
	case MethodResolve:
		sess.wg.Add(1)
		go sess.resolve(m, cfg)
	}
}

func (sess *session) complete(ctx context.Context, seq uint64, m message, cfg conf.Config) {
	defer sess.wg.Done()

	candidates, err := sess.server.source.Complete(ctx, completion.Request{
		ID:        m.ID,
		BufferID:  m.Buffer,
		Context:   m.Context,
		Mode:      m.Mode,
		BufferDir: m.BufferDir,
		Config:    cfg,
	})
	stale := sess.finish(m.Buffer, seq)
	if stale || errors.Is(err, context.Canceled) {
		sess.server.logger.DebugWith("Request aborted",
			slog.F("session", sess.id),
			slog.F("id", m.ID))
		sess.write(Response{ID: m.ID, Aborted: true})
		return
	}
	if err != nil {
		sess.write(Response{ID: m.ID, Error: err.Error()})
		return
	}
	sess.write(Response{ID: m.ID, Items: ToItems(candidates)})
}

func (sess *session) resolve(m message, cfg conf.Config) {
	defer sess.wg.Done()

	if !m.Item.Exists() {
		sess.write(Response{ID: m.ID, Error: "missing item"})
		return
	}
	resolved := sess.server.source.ResolveItem(candidateFromItem(m.Item), cfg.PreviewMaxLines)
	item := ToItem(resolved)
	item.Data.Size = m.Item.Get("data.size").Int()
	item.Data.MTime = m.Item.Get("data.mtime").Int()
	sess.write(Response{ID: m.ID, Item: &item})
}

// begin registers a new latest request for buffer, cancelling the previous
// one, and returns its sequence number
func (sess *session) begin(buffer string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(sess.ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if prev, ok := sess.inflight[buffer]; ok {
		prev.cancel()
	}
	sess.seq++
	sess.inflight[buffer] = &inflight{seq: sess.seq, cancel: cancel}
	return ctx, sess.seq
}

// finish reports whether the request numbered seq was superseded while it ran
func (sess *session) finish(buffer string, seq uint64) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cur, ok := sess.inflight[buffer]
	if !ok || cur.seq != seq {
		return true
	}
	cur.cancel()
	delete(sess.inflight, buffer)
	return false
}

func (sess *session) write(resp Response) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteJSON(resp); err != nil {
		sess.server.logger.DebugWith("Write failed",
			slog.F("session", sess.id),
			slog.F("id", resp.ID),
			slog.F("err", err))
	}
}
