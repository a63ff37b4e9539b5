// Cartas web game
//
// One player drags eight cards into eight slots, trying to match the solved
// order before the countdown runs out.
//
// Features:
// - Isolated sessions per game ID: /cartas/:gameid and /cartas/:gameid/ws
// - The game runs server-side in a single loop per session; the browser
//   forwards pointer and button events and draws the view snapshots it gets
//   back
// - Drag proxy, tilt and drop highlighting are computed on a per-frame tick
//   that only runs while a card is held
// - Sessions are reaped after a configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - QR code of the session URL, to pick the round up on a phone

package main

import (
	"crypto/rand"
	_ "embed"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/cartas/cards"
	"github.com/Seednode/cartas/game"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients
type ClientMessage struct {
	Type   string  `json:"type"`             // "start", "check", "restart", "play_again", "show_guide", "hide_guide", "show_zoom", "hide_zoom", "press", "move", "release"
	Slot   int     `json:"slot,omitempty"`   // press
	X      float64 `json:"x,omitempty"`      // press / move, board coordinates
	Y      float64 `json:"y,omitempty"`      // press / move, board coordinates
	Button int     `json:"button,omitempty"` // press, PointerEvent.button
}

// MusicState tells the client what its audio element should be doing.
// Rewinds counts resets to the start, so the client can tell a new one
// from one it already applied.
type MusicState struct {
	Playing bool `json:"playing"`
	Rewinds int  `json:"rewinds"`
}

// ViewMessage carries a full snapshot after every processed event.
type ViewMessage struct {
	Type  string     `json:"type"` // "view"
	View  game.View  `json:"view"`
	Music MusicState `json:"music"`
}

// NoticeMessage is inline feedback: incomplete board, wrong order, help
// unlocked, solved, time up.
type NoticeMessage struct {
	Type string `json:"type"` // "notice"
	game.Event
}

// remoteAudio records what the browser's audio element should do. Playback
// itself, and any autoplay refusal, happens client-side.
type remoteAudio struct {
	state MusicState
}

func (a *remoteAudio) Play() error {
	a.state.Playing = true
	return nil
}

func (a *remoteAudio) Pause() {
	a.state.Playing = false
}

func (a *remoteAudio) Rewind() {
	a.state.Rewinds++
}

type Client struct {
	conn *websocket.Conn
	send chan any
}

type Hub struct {
	id string

	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	commands chan ClientMessage

	sched   *loopScheduler
	session *game.Session
	audio   *remoteAudio

	done      chan struct{}
	closeOnce sync.Once

	mu         sync.RWMutex
	createdAt  time.Time
	lastActive time.Time
}

func newHub(cfg *Config, gameID string, deck game.Deck) (*Hub, error) {
	now := time.Now()

	h := &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan ClientMessage, 64),
		audio:      &remoteAudio{},
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}

	h.sched = newLoopScheduler(h.done)

	session, err := game.NewSession(deck, game.WebLayout(),
		game.WithRules(cfg.rules()),
		game.WithScheduler(h.sched),
		game.WithAudio(h.audio),
		game.WithNotify(h.broadcastNotice),
	)
	if err != nil {
		return nil, err
	}
	h.session = session

	return h, nil
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.touch()
			h.clients[c] = true

			select {
			case c.send <- h.viewMessage():
			default:
			}

		case c := <-h.unreg:
			h.touch()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case msg := <-h.commands:
			h.touch()

			if h.handle(cfg, msg) {
				h.broadcastView()
			}

		case task := <-h.sched.tasks:
			task()
			h.broadcastView()

		case <-h.done:
			h.session.Close()

			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
				_ = c.conn.Close()
			}

			return
		}
	}
}

func (h *Hub) touch() {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()
}

func (h *Hub) idleSince() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastActive
}

// handle applies one client command to the session. It reports whether the
// view changed enough to be worth sending.
func (h *Hub) handle(cfg *Config, msg ClientMessage) bool {
	s := h.session

	switch msg.Type {
	case "start":
		if s.Start() {
			logf(cfg, "GAMES: Round started in %s", h.id)
		}
	case "restart":
		s.Restart()
		logf(cfg, "GAMES: Round restarted in %s", h.id)
	case "play_again":
		s.PlayAgain()
	case "check":
		outcome := s.Check()
		if outcome != game.OutcomeNone {
			logf(cfg, "GAMES: Check in %s: %s after %d attempts", h.id, outcome, s.Attempts())
		}
	case "show_guide":
		s.ShowGuide()
	case "hide_guide":
		s.HideGuide()
	case "show_zoom":
		s.ShowZoom()
	case "hide_zoom":
		s.HideZoom()
	case "press":
		return s.Press(msg.Slot, game.Point{X: msg.X, Y: msg.Y}, game.Button(msg.Button))
	case "move":
		// the next frame tick picks the position up
		s.Move(game.Point{X: msg.X, Y: msg.Y})
		return false
	case "release":
		_, ok := s.Release()
		return ok
	default:
		// ignore unknown types
		return false
	}

	return true
}

func (h *Hub) viewMessage() ViewMessage {
	return ViewMessage{
		Type:  "view",
		View:  h.session.View(),
		Music: h.audio.state,
	}
}

// broadcastView sends the latest snapshot. A client that is behind just
// misses this one; the next snapshot supersedes it.
func (h *Hub) broadcastView() {
	msg := h.viewMessage()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
		}
	}
}

// broadcastNotice runs on the hub loop, from inside the session.
func (h *Hub) broadcastNotice(e game.Event) {
	msg := NoticeMessage{Type: "notice", Event: e}

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// closeAll ends the hub loop, which disconnects every client.
func (h *Hub) closeAll() {
	h.closeOnce.Do(func() { close(h.done) })
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	deck        game.Deck
	idleTimeout time.Duration
	done        <-chan struct{}
}

func newGameManager(deck game.Deck, idleTimeout time.Duration, done <-chan struct{}) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		deck:        deck,
		idleTimeout: idleTimeout,
		done:        done,
	}
	go gm.reaperLoop()
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) (*Hub, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub, nil
	}

	hub, err := newHub(cfg, gameID, gm.deck)
	if err != nil {
		return nil, err
	}

	gm.hubs[gameID] = hub
	go hub.run(cfg)

	logf(cfg, "GAMES: Opened session %s", gameID)

	return hub, nil
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than
// idleTimeout, and closes all of them once the server shuts down.
func (gm *GameManager) reaperLoop() {
	var tick <-chan time.Time
	if gm.idleTimeout > 0 {
		ticker := time.NewTicker(gm.idleTimeout / 2)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			cutoff := time.Now().Add(-gm.idleTimeout)

			gm.mu.Lock()
			for id, hub := range gm.hubs {
				if hub.idleSince().Before(cutoff) {
					delete(gm.hubs, id)
					hub.closeAll()
				}
			}
			gm.mu.Unlock()

		case <-gm.done:
			gm.mu.Lock()
			for id, hub := range gm.hubs {
				delete(gm.hubs, id)
				hub.closeAll()
			}
			gm.mu.Unlock()

			return
		}
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		hub, err := gm.getHub(cfg, gameID)
		if err != nil {
			http.Error(w, "unable to create game", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		// clear the server's read/write timeouts, which outlive the hijack
		_ = conn.NetConn().SetDeadline(time.Time{})

		client := &Client{
			conn: conn,
			send: make(chan any, 32),
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		select {
		case h.commands <- msg:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Client page ----

//go:embed assets/cartas/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Prefix string
	Path   string
	GameID string
	Width  float64
	Height float64
}

func getIndexHandler(cfg *Config, path string, errs chan<- error) httprouter.Handle {
	board := game.WebLayout().Bounds()

	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		err := indexTemplate.Execute(w, indexData{
			Prefix: cfg.prefix,
			Path:   cfg.prefix + path,
			GameID: ps.ByName("gameid"),
			Width:  board.W,
			Height: board.H,
		})
		if err != nil {
			errs <- err
		}
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerCardGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
//   - /assets/cartas/*file   → client script, styles, card art, theme
func registerCardGame(cfg *Config, path string, deck game.Deck, store *cards.Store, mux *httprouter.Router, errs chan<- error, done <-chan struct{}) error {
	if _, err := game.NewSession(deck, game.WebLayout(), game.WithRules(cfg.rules())); err != nil {
		return err
	}

	gm := newGameManager(deck, cfg.sessionTimeout, done)

	// Root path → redirect to new random game
	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	// Per-game client view (HTML)
	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg, path, errs))

	// Shared assets (no gameid in route)
	mux.GET(cfg.prefix+"/assets/cartas/*file", serveAssets(cfg, store, errs))

	// Per-game websocket
	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	// Per-game QR code
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)

	return nil
}
