package httpserver

import (
	"fmt"

	"chess3d/internal/chess3d"
)

// 前端用的格子坐标
type CellDTO struct {
	Level int `json:"level"`
	Rank  int `json:"rank"`
	File  int `json:"file"`
}

func (c CellDTO) square() (chess3d.Square, error) {
	sq, ok := chess3d.Lookup(c.Level, c.Rank, c.File)
	if !ok {
		return chess3d.NoSquare, fmt.Errorf("%w: (%d,%d,%d)", chess3d.ErrOffBoard, c.Level, c.Rank, c.File)
	}
	return sq, nil
}

func cellToDTO(sq chess3d.Square) CellDTO {
	return CellDTO{Level: sq.Level(), Rank: sq.Rank(), File: sq.File()}
}

type MoveDTO struct {
	From    CellDTO `json:"from"`
	To      CellDTO `json:"to"`
	Capture bool    `json:"capture"`
}

func moveToDTO(m chess3d.Move) MoveDTO {
	return MoveDTO{From: cellToDTO(m.From), To: cellToDTO(m.To), Capture: m.Capture}
}

func movesToDTO(ms []chess3d.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 被将的王
type CheckDTO struct {
	King      string    `json:"king"` // 例如 "K_L0R3F3"
	Color     string    `json:"color"`
	At        CellDTO   `json:"at"`
	InCheck   bool      `json:"in_check"`
	Attackers []CellDTO `json:"attackers,omitempty"`
}

// 上一步，前端高亮用
type LastMoveDTO struct {
	MoveDTO
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
	Promoted bool   `json:"promoted"`
}

// NewGame / State / Reset / Play 共用的请求
type GameRequest struct {
	GameID string `json:"game_id"`
}

type SelectRequest struct {
	GameID string  `json:"game_id"`
	Cell   CellDTO `json:"cell"`
}

// Play 请求：一次请求里做两次选择
type PlayRequest struct {
	GameID string  `json:"game_id"`
	From   CellDTO `json:"from"`
	To     CellDTO `json:"to"`
}

// AiMoveRequest 请求让 AI 为当前局面想一步，Apply 为 true 时直接落子
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	MaxDepth int    `json:"max_depth"`
	TimeMs   int64  `json:"time_ms"`
	Apply    bool   `json:"apply"`
}

type StateResponse struct {
	GameID       string       `json:"game_id"`
	Position     string       `json:"position"`
	Turn         string       `json:"turn"`
	Phase        string       `json:"phase"`
	Selected     *CellDTO     `json:"selected"`
	Destinations []MoveDTO    `json:"destinations"`
	Checks       []CheckDTO   `json:"checks"`
	GameOver     bool         `json:"game_over"`
	Winner       string       `json:"winner,omitempty"`
	Message      string       `json:"message"`
	LastMove     *LastMoveDTO `json:"last_move"`
	Hash         string       `json:"hash"` // 十六进制，JS 的 number 装不下 uint64
	WhiteKings   int          `json:"white_kings"`
	BlackKings   int          `json:"black_kings"`
}

type SelectResponse struct {
	Action string        `json:"action"`
	State  StateResponse `json:"state"`
}

type AiMoveResponse struct {
	BestMove *MoveDTO      `json:"best_move"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	TimeMs   int64         `json:"time_ms"`
	Status   string        `json:"status"` // "ok" / "applied" / "no_moves"
	State    StateResponse `json:"state"`
}

type ErrorResponse struct {
	Error string         `json:"error"`
	State *StateResponse `json:"state,omitempty"`
}

func stateOf(id string, g *chess3d.Game) StateResponse {
	resp := StateResponse{
		GameID:       id,
		Position:     g.Encode(),
		Turn:         g.Turn().String(),
		Phase:        g.Phase().String(),
		Destinations: movesToDTO(g.Destinations()),
		GameOver:     g.Over(),
		Message:      g.Message(),
		Hash:         fmt.Sprintf("%016x", g.Hash()),
		WhiteKings:   len(g.Kings(chess3d.White)),
		BlackKings:   len(g.Kings(chess3d.Black)),
	}
	if sq, ok := g.Selected(); ok {
		c := cellToDTO(sq)
		resp.Selected = &c
	}
	if g.Over() {
		resp.Winner = g.Winner().String()
	}
	for _, st := range g.Checks() {
		chk := CheckDTO{
			King:    kingTag(st),
			Color:   st.Color.String(),
			At:      cellToDTO(st.At),
			InCheck: st.InCheck,
		}
		for _, a := range st.Attackers {
			chk.Attackers = append(chk.Attackers, cellToDTO(a))
		}
		resp.Checks = append(resp.Checks, chk)
	}
	if last, ok := g.LastMove(); ok {
		resp.LastMove = &LastMoveDTO{
			MoveDTO:  moveToDTO(last.Move),
			Piece:    last.Mover.Tag(),
			Captured: last.Captured.Tag(),
			Promoted: last.Promoted,
		}
	}
	return resp
}

func kingTag(st chess3d.CheckStatus) string {
	return chess3d.Piece{Kind: chess3d.King, Color: st.Color, ID: st.King}.Tag()
}
