package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
	"chess3d/internal/server/game"
)

const (
	maxJSONBodyBytes int64 = 1 << 20
	maxAiTime              = 30 * time.Second
)

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager

	// Engine 一次只跑一个 Search
	engineMu sync.Mutex
	engine   *engine.Engine

	// AI 默认搜索深度
	DefaultDepth int
}

func NewHandler(games *game.Manager, depth int) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	if depth <= 0 {
		depth = 2
	}
	return &Handler{
		games:        games,
		engine:       engine.NewEngine(),
		DefaultDepth: depth,
	}
}

func (h *Handler) Games() *game.Manager {
	return h.games
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/select":
		fn = h.handleSelect
	case "/api/play":
		fn = h.handlePlay
	case "/api/state":
		fn = h.handleState
	case "/api/reset":
		fn = h.handleReset
	case "/api/ai_move":
		fn = h.handleAiMove
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	withJSON(fn)(w, r)
}

func withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	writeJSON(w, ErrorResponse{Error: msg})
}

// 规则层的错误映射到状态码
func gameErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, chess3d.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, chess3d.ErrOffBoard), errors.Is(err, chess3d.ErrInvalidTarget):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeGameError(w http.ResponseWriter, err error) {
	writeGameErrorState(w, err, nil)
}

// 带上出错后的局面，前端不用再请求一次 /api/state
func writeGameErrorState(w http.ResponseWriter, err error, state *StateResponse) {
	status := gameErrorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("game error: %v", err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	writeJSON(w, ErrorResponse{Error: err.Error(), State: state})
}

// decode 失败时已经写好了响应
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

func (h *Handler) lookup(w http.ResponseWriter, id string) (*game.GameState, bool) {
	gs, err := h.games.Get(id)
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	return gs, true
}

func snapshot(gs *game.GameState) StateResponse {
	var resp StateResponse
	gs.View(func(g *chess3d.Game) { resp = stateOf(gs.ID, g) })
	return resp
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	gs := h.games.NewGame()
	log.Printf("new game %s", gs.ID)
	writeJSON(w, snapshot(gs))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	gs, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, snapshot(gs))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	gs, err := h.games.Reset(req.GameID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, snapshot(gs))
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decode(w, r, &req) {
		return
	}
	gs, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	sq, err := req.Cell.square()
	if err != nil {
		writeGameError(w, err)
		return
	}

	var resp SelectResponse
	err = gs.Do(func(g *chess3d.Game) error {
		act, err := g.Select(sq)
		resp.Action = act.String()
		resp.State = stateOf(gs.ID, g)
		return err
	})
	if err != nil {
		writeGameErrorState(w, err, &resp.State)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	gs, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	from, err := req.From.square()
	if err != nil {
		writeGameError(w, err)
		return
	}
	to, err := req.To.square()
	if err != nil {
		writeGameError(w, err)
		return
	}

	var resp StateResponse
	err = gs.Do(func(g *chess3d.Game) error {
		err := g.Play(from, to)
		resp = stateOf(gs.ID, g)
		return err
	})
	if err != nil {
		writeGameErrorState(w, err, &resp)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decode(w, r, &req) {
		return
	}
	gs, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}

	// ===== 1. 拿当前局面的副本，搜索时不占对局锁 =====
	var (
		pos  chess3d.Position
		over bool
	)
	gs.View(func(g *chess3d.Game) {
		pos = g.Position()
		over = g.Over()
	})
	if over {
		writeGameError(w, chess3d.ErrGameOver)
		return
	}

	// ===== 2. 搜索参数 =====
	cfg := engine.SearchConfig{MaxDepth: req.MaxDepth}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = h.DefaultDepth
	}
	if req.TimeMs > 0 {
		cfg.TimeLimit = min(time.Duration(req.TimeMs)*time.Millisecond, maxAiTime)
	} else {
		cfg.TimeLimit = maxAiTime
	}

	// ===== 3. 搜索 =====
	res := h.search(r.Context(), &pos, cfg)

	resp := AiMoveResponse{
		Score:  res.Score,
		Depth:  res.Depth,
		Nodes:  res.Nodes,
		TimeMs: res.TimeUsed.Milliseconds(),
		Status: "ok",
	}
	if !res.Found {
		resp.Status = "no_moves"
		resp.State = snapshot(gs)
		writeJSON(w, resp)
		return
	}
	best := moveToDTO(res.BestMove)
	resp.BestMove = &best

	if !req.Apply {
		resp.State = snapshot(gs)
		writeJSON(w, resp)
		return
	}

	// ===== 4. 落子：搜索期间局面被别的请求改了就放弃 =====
	err := gs.Do(func(g *chess3d.Game) error {
		if g.Hash() != pos.Hash || g.Turn() != pos.SideToMove {
			return errPositionChanged
		}
		if err := g.Play(res.BestMove.From, res.BestMove.To); err != nil {
			return err
		}
		resp.State = stateOf(gs.ID, g)
		return nil
	})
	if errors.Is(err, errPositionChanged) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeGameError(w, err)
		return
	}
	resp.Status = "applied"
	writeJSON(w, resp)
}

var errPositionChanged = errors.New("position changed during search")

func (h *Handler) search(ctx context.Context, pos *chess3d.Position, cfg engine.SearchConfig) engine.SearchResult {
	h.engineMu.Lock()
	defer h.engineMu.Unlock()
	return h.engine.Search(ctx, pos, cfg)
}
