package chess3d

import "errors"

var (
	ErrOffBoard        = errors.New("cell off board")
	ErrInvalidTarget   = errors.New("invalid move target: select a highlighted cell or re-select the piece")
	ErrGameOver        = errors.New("game over")
	ErrInvalidEncoding = errors.New("invalid position encoding")
	ErrKingRegistry    = errors.New("king registry out of sync")
)
