/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Reputations over websockets
//
// Players join a lobby, then take turns being the subject: the subject ranks
// the round's trait cards, the other players guess that ranking, and the
// guess is scored by how close each card landed.
//
// Features:
// - WebSockets per game ID: /reputations/:gameid and /reputations/:gameid/ws
// - First connection to a game becomes host
// - Host can configure mode/rounds/cards, lock/unlock the lobby, kick players,
//   start the game, advance rounds and reset back to the lobby
// - Players identified by cookie (playerID)
// - Duplicate usernames prevented across players
// - Only the subject may submit the first ranking; any other player may
//   submit the informants' ranking
// - Rejected submissions are reported only to the offending client
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/reputations/games/reputations"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Player maps a cookie to a display name
type Player struct {
	PlayerID string
	Username string
}

// Messages coming from clients
type ClientMessage struct {
	Type           string   `json:"type"`                      // see readPump
	Username       string   `json:"username,omitempty"`        // join
	Lock           *bool    `json:"lock,omitempty"`            // lock_lobby
	TargetUsername string   `json:"target_username,omitempty"` // kick
	Ranking        []string `json:"ranking,omitempty"`         // submit_ranking
	Mode           string   `json:"mode,omitempty"`            // configure
	Rounds         int      `json:"rounds,omitempty"`          // configure
	CardsPerRound  int      `json:"cards_per_round,omitempty"` // configure
}

// SessionInfoMessage is sent immediately on connect so the client knows
// whether the lobby is locked and what role this cookie has.
type SessionInfoMessage struct {
	Type        string `json:"type"` // "session_info"
	GameID      string `json:"game_id"`
	LobbyLocked bool   `json:"lobby_locked"`
	IsExisting  bool   `json:"is_existing"`
	IsHost      bool   `json:"is_host"`
	Username    string `json:"username,omitempty"`
}

// LobbyStateMessage informs clients about lock/unlock changes.
type LobbyStateMessage struct {
	Type   string `json:"type"` // "lobby_state"
	Locked bool   `json:"locked"`
}

// GameStateMessage carries everything a client needs to render the board.
type GameStateMessage struct {
	Type      string           `json:"type"` // "game_state"
	Game      reputations.View `json:"game"`
	Host      string           `json:"host,omitempty"`
	Connected []string         `json:"connected"`
	Locked    bool             `json:"lobby_locked"`
}

// RoundCard is a scored card with its display text.
type RoundCard struct {
	ID                reputations.CardID `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Match             reputations.Match  `json:"match"`
	SubjectPosition   int                `json:"subject_position"`
	InformantPosition int                `json:"informant_position"`
}

// RoundResultMessage is broadcast when a round resolves.
type RoundResultMessage struct {
	Type      string      `json:"type"` // "round_result"
	Round     int         `json:"round"`
	Subject   string      `json:"subject"`
	Informant string      `json:"informant"`
	Points    int         `json:"points"`
	MaxPoints int         `json:"max_points"`
	Cards     []RoundCard `json:"cards"`
	Details   []string    `json:"details"`
}

// ErrorMessage is sent only to the client whose request failed.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Sent to a single client when there's a username collision
type CollisionMessage struct {
	Type    string `json:"type"`  // "collision"
	Field   string `json:"field"` // "username"
	Message string `json:"message"`
}

// SimpleMessage is for generic notifications ("kicked", "lobby_locked", etc.)
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type joinRequest struct {
	client *Client
	msg    ClientMessage
}

type hostCommand struct {
	client *Client
	msg    ClientMessage
}

type rankingRequest struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	clients map[*Client]bool
	players []Player

	register chan *Client
	unreg    chan *Client
	joins    chan joinRequest
	hosts    chan hostCommand
	rankings chan rankingRequest

	mu sync.RWMutex

	createdAt    time.Time
	lastActive   time.Time
	lobbyLocked  bool
	hostPlayerID string

	session *reputations.Session

	done      chan struct{}
	closeOnce sync.Once
}

func newHub(cfg *Config, gameID string, deck reputations.Deck) (*Hub, error) {
	session, err := reputations.NewSession(deck, cfg.gameOptions())
	if err != nil {
		return nil, err
	}
	session.SetRule(cfg.rule)

	now := time.Now()
	return &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		joins:      make(chan joinRequest),
		hosts:      make(chan hostCommand),
		rankings:   make(chan rankingRequest),
		createdAt:  now,
		lastActive: now,
		session:    session,
		done:       make(chan struct{}),
	}, nil
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)

		case c := <-h.unreg:
			if playerID := h.handleUnregister(c); playerID != "" {
				go h.scheduleRemoval(cfg, playerID, cfg.playerTimeout)
			}

		case jr := <-h.joins:
			h.handleJoin(cfg, jr)

		case cmd := <-h.hosts:
			h.handleHostCommand(cfg, cmd)

		case rr := <-h.rankings:
			h.handleRanking(cfg, rr)

		case <-h.done:
			return
		}
	}
}

// deliver hands v to the hub's loop, giving up once the hub is closed.
func deliver[T any](h *Hub, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-h.done:
		return false
	}
}

// handleUnregister drops a disconnected client and returns its player ID.
func (h *Hub) handleUnregister(c *Client) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.broadcastGameStateLocked()

	return c.playerID
}

func (h *Hub) handleRegister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	// First connection becomes host
	if h.hostPlayerID == "" {
		h.hostPlayerID = c.playerID
	}

	existing := h.playerLocked(c.playerID)

	h.clients[c] = true

	info := SessionInfoMessage{
		Type:        "session_info",
		GameID:      h.id,
		LobbyLocked: h.lobbyLocked,
		IsExisting:  existing != nil,
		IsHost:      h.hostPlayerID == c.playerID,
	}
	if existing != nil {
		info.Username = existing.Username
	}

	h.sendLocked(c, info)
	h.broadcastGameStateLocked()
}

func (h *Hub) playerLocked(playerID string) *Player {
	for i := range h.players {
		if h.players[i].PlayerID == playerID {
			return &h.players[i]
		}
	}
	return nil
}

// sendLocked queues msg for c, dropping the client if its buffer is full.
func (h *Hub) sendLocked(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

func (h *Hub) sendErrorLocked(c *Client, err error) {
	h.sendLocked(c, ErrorMessage{
		Type:    "error",
		Code:    errorCode(err),
		Message: err.Error(),
	})
}

// broadcastGameStateLocked sends the current game state to all clients.
func (h *Hub) broadcastGameStateLocked() {
	msg := GameStateMessage{
		Type:   "game_state",
		Game:   h.session.Snapshot(),
		Locked: h.lobbyLocked,
	}

	if host := h.playerLocked(h.hostPlayerID); host != nil {
		msg.Host = host.Username
	}

	for client := range h.clients {
		if p := h.playerLocked(client.playerID); p != nil && !slices.Contains(msg.Connected, p.Username) {
			msg.Connected = append(msg.Connected, p.Username)
		}
	}
	slices.Sort(msg.Connected)

	h.broadcastLocked(msg)
}

func (h *Hub) broadcastRoundResultLocked(rec reputations.RoundRecord) {
	byID := make(map[reputations.CardID]reputations.Card, len(rec.Cards))
	for _, c := range rec.Cards {
		byID[c.ID] = c
	}

	cards := make([]RoundCard, 0, len(rec.Result.Cards))
	for _, r := range rec.Result.Cards {
		card := byID[r.Card]
		cards = append(cards, RoundCard{
			ID:                r.Card,
			Name:              card.Name,
			Description:       card.Description,
			Match:             r.Match,
			SubjectPosition:   r.SubjectPosition,
			InformantPosition: r.InformantPosition,
		})
	}

	h.broadcastLocked(RoundResultMessage{
		Type:      "round_result",
		Round:     rec.Number,
		Subject:   rec.Subject,
		Informant: rec.Informant,
		Points:    rec.Result.Points,
		MaxPoints: rec.Result.MaxPoints,
		Cards:     cards,
		Details:   rec.Result.Details(),
	})
}

// scheduleRemoval waits for d, and if no client with this playerID
// is currently connected, removes that player's entry. Once a game has
// started the entry is kept, so the player can reconnect into their seat.
func (h *Hub) scheduleRemoval(cfg *Config, playerID string, d time.Duration) {
	time.Sleep(d)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.connectedLocked(playerID) {
		return
	}

	if h.removePlayerLocked(func(p Player) bool { return p.PlayerID == playerID }) == "" {
		return
	}

	logf(cfg, "GAMES: Removed idle player %s from %s", playerID, h.id)

	h.lastActive = time.Now()
	h.broadcastGameStateLocked()
}

// removePlayerLocked drops the first player matching fn from the hub and the
// session roster. It returns the removed player's ID, or "" if nobody matched
// or the game is running, since the session's rotation still holds them.
func (h *Hub) removePlayerLocked(fn func(Player) bool) string {
	if h.session.Phase() != reputations.PhaseSetup {
		return ""
	}

	i := slices.IndexFunc(h.players, fn)
	if i < 0 {
		return ""
	}

	p := h.players[i]
	h.players = slices.Delete(h.players, i, i+1)
	_ = h.session.RemovePlayer(p.Username)

	return p.PlayerID
}

func (h *Hub) connectedLocked(playerID string) bool {
	for client := range h.clients {
		if client.playerID == playerID {
			return true
		}
	}
	return false
}

// handleJoin processes "join" messages.
func (h *Hub) handleJoin(cfg *Config, jr joinRequest) {
	msg := jr.msg
	c := jr.client

	name := strings.TrimSpace(msg.Username)
	if name == "" || c.playerID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	existing := h.playerLocked(c.playerID)

	if h.lobbyLocked && existing == nil {
		h.sendLocked(c, SimpleMessage{
			Type:    "lobby_locked",
			Message: "The lobby is locked; no new players may join.",
		})
		return
	}

	if existing != nil && existing.Username == name {
		h.broadcastGameStateLocked()
		return
	}

	if h.session.Phase() != reputations.PhaseSetup {
		h.sendLocked(c, SimpleMessage{
			Type:    "game_in_progress",
			Message: "A game is already in progress. You can join once the host resets the lobby.",
		})
		return
	}

	for _, p := range h.players {
		if p.PlayerID != c.playerID && strings.EqualFold(p.Username, name) {
			h.sendLocked(c, CollisionMessage{
				Type:    "collision",
				Field:   "username",
				Message: "That username is already taken. Please choose a different username.",
			})
			return
		}
	}

	if existing != nil {
		_ = h.session.RemovePlayer(existing.Username)
	}

	if err := h.session.AddPlayer(name); err != nil {
		if existing != nil {
			_ = h.session.AddPlayer(existing.Username)
		}
		h.sendErrorLocked(c, err)
		return
	}

	if existing != nil {
		logf(cfg, "GAMES: Player %q renamed to %q in %s", existing.Username, name, h.id)
		existing.Username = name
	} else {
		h.players = append(h.players, Player{
			PlayerID: c.playerID,
			Username: name,
		})
		logf(cfg, "GAMES: Player %q joined %s", name, h.id)
	}

	h.sendLocked(c, SessionInfoMessage{
		Type:        "session_info",
		GameID:      h.id,
		LobbyLocked: h.lobbyLocked,
		IsExisting:  true,
		IsHost:      h.hostPlayerID == c.playerID,
		Username:    name,
	})
	h.broadcastGameStateLocked()
}

// handleRanking processes a subject or informant ranking.
func (h *Hub) handleRanking(cfg *Config, rr rankingRequest) {
	c := rr.client

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	player := h.playerLocked(c.playerID)
	if player == nil {
		h.sendErrorLocked(c, reputations.ErrInvalidPlayer)
		return
	}

	ranking := make(reputations.Ranking, len(rr.msg.Ranking))
	for i, id := range rr.msg.Ranking {
		ranking[i] = reputations.CardID(id)
	}

	res, err := h.session.SubmitRankingAs(player.Username, ranking)
	if err != nil {
		logf(cfg, "GAMES: Rejected ranking from %q in %s: %v", player.Username, h.id, err)
		h.sendErrorLocked(c, err)
		return
	}

	if res.Result != nil {
		history := h.session.History()
		rec := history[len(history)-1]

		logf(cfg, "GAMES: %q informed on %q for %d/%d points in round %d of %s",
			rec.Informant, rec.Subject, rec.Result.Points, rec.Result.MaxPoints, rec.Number, h.id)

		h.broadcastRoundResultLocked(rec)
	} else {
		logf(cfg, "GAMES: Subject %q ranked round %d of %s", player.Username, h.session.Round(), h.id)
	}

	h.broadcastGameStateLocked()
}

// handleHostCommand processes host commands: configure, lock/unlock lobby,
// kick users, start the game, advance rounds, reset.
func (h *Hub) handleHostCommand(cfg *Config, cmd hostCommand) {
	c := cmd.client
	msg := cmd.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if h.hostPlayerID == "" || c.playerID != h.hostPlayerID {
		h.sendLocked(c, ErrorMessage{
			Type:    "error",
			Code:    "not_host",
			Message: "Only the host can do that.",
		})
		return
	}

	switch msg.Type {
	case "lock_lobby":
		h.lobbyLocked = msg.Lock != nil && *msg.Lock

		h.broadcastLocked(LobbyStateMessage{
			Type:   "lobby_state",
			Locked: h.lobbyLocked,
		})

	case "kick":
		target := strings.TrimSpace(msg.TargetUsername)
		if target == "" {
			return
		}

		if h.session.Phase() != reputations.PhaseSetup {
			h.sendErrorLocked(c, fmt.Errorf("%w: players can only be kicked from the lobby", reputations.ErrPhaseViolation))
			return
		}

		kicked := h.removePlayerLocked(func(p Player) bool {
			return strings.EqualFold(p.Username, target)
		})
		if kicked == "" {
			return
		}

		for client := range h.clients {
			if client.playerID == kicked {
				h.sendLocked(client, SimpleMessage{
					Type:    "kicked",
					Message: "You have been removed by the host.",
				})
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					close(client.send)
				}
			}
		}

		logf(cfg, "GAMES: Player %q kicked from %s", target, h.id)

	case "configure":
		if err := h.configureLocked(cfg, msg); err != nil {
			h.sendErrorLocked(c, err)
			return
		}

	case "start_game":
		if h.session.Phase() != reputations.PhaseSetup {
			h.sendErrorLocked(c, reputations.ErrPhaseViolation)
			return
		}

		view, err := h.session.StartRound()
		if err != nil {
			h.sendErrorLocked(c, err)
			return
		}

		logf(cfg, "GAMES: Started %s with %d players, subject %q", h.id, len(h.session.Players()), view.Subject)

	case "next_round":
		if h.session.Phase() != reputations.PhaseRoundResolved {
			h.sendErrorLocked(c, reputations.ErrPhaseViolation)
			return
		}

		view, err := h.session.StartRound()
		if err != nil {
			h.sendErrorLocked(c, err)
			return
		}

		if view.Phase == reputations.PhaseGameOver {
			scores := h.session.Scores()
			logf(cfg, "GAMES: Finished %s (team %d, game %d)", h.id, scores.Team, scores.Game)
		}

	case "reset":
		h.players = slices.DeleteFunc(h.players, func(p Player) bool {
			return !h.connectedLocked(p.PlayerID)
		})

		h.session.Reset()
		for _, p := range h.players {
			_ = h.session.AddPlayer(p.Username)
		}

		logf(cfg, "GAMES: Reset %s", h.id)

	default:
		return
	}

	h.broadcastGameStateLocked()
}

func (h *Hub) configureLocked(cfg *Config, msg ClientMessage) error {
	opts := h.session.Options()

	if msg.Mode != "" {
		mode, err := reputations.ParseMode(msg.Mode)
		if err != nil {
			return err
		}
		opts.Mode = mode
	}
	if msg.Rounds != 0 {
		opts.TotalRounds = msg.Rounds
	}
	if msg.CardsPerRound != 0 {
		opts.CardsPerRound = msg.CardsPerRound
	}

	if cfg.catalog != nil && opts.CardsPerRound > cfg.catalog.Len() {
		return fmt.Errorf("%w: only %d cards available", reputations.ErrInvalidConfig, cfg.catalog.Len())
	}

	return h.session.Configure(opts)
}

// closeAll disconnects all clients of this hub and stops its loop (used by
// reaper).
func (h *Hub) closeAll() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "reputations_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id, err := uuid.NewRandom()
	if err != nil {
		log.Println("uuid error:", err)
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id.String()
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	deck        reputations.Deck
}

func newGameManager(idleTimeout time.Duration, deck reputations.Deck) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
		deck:        deck,
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
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

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
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

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		hub, err := gm.getHub(cfg, gameID)
		if err != nil {
			errorf("creating game %s: %v", gameID, err)
			http.Error(w, "unable to create game", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
		}

		if !deliver(hub, hub.register, client) {
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		deliver(h, h.unreg, c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		var ok bool
		switch msg.Type {
		case "join":
			ok = deliver(h, h.joins, joinRequest{
				client: c,
				msg:    msg,
			})
		case "configure", "lock_lobby", "kick", "start_game", "next_round", "reset":
			ok = deliver(h, h.hosts, hostCommand{
				client: c,
				msg:    msg,
			})
		case "submit_ranking":
			ok = deliver(h, h.rankings, rankingRequest{
				client: c,
				msg:    msg,
			})
		default:
			// ignore unknown types
			ok = true
		}
		if !ok {
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

func getIndexHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := assets.ReadFile("assets/reputations/index.html")
		if err != nil {
			errs <- err
			http.Error(w, "missing client", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(data)
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

// registerReputationsGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerReputationsGame(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) {
	gm := newGameManager(cfg.sessionTimeout, reputations.NewDeck(cfg.catalog, nil))

	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg, errs))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)
}
