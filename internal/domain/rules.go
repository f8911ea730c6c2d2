package domain

// Window is four consecutive cells along a row, column or diagonal.
type Window [ToWin]Piece

// Count returns how many cells of the window hold piece.
func (w Window) Count(piece Piece) int {
	n := 0
	for _, p := range w {
		if p == piece {
			n++
		}
	}
	return n
}

// EachWindow calls fn for every window on the board: horizontal, vertical,
// rising diagonals and falling diagonals, in that order. Windows overlap.
// Iteration stops early when fn returns false.
func EachWindow(board Board, fn func(Window) bool) {
	// horizontal
	for row := 0; row < Rows; row++ {
		for col := 0; col <= Columns-ToWin; col++ {
			w := Window{board[row][col], board[row][col+1], board[row][col+2], board[row][col+3]}
			if !fn(w) {
				return
			}
		}
	}

	// vertical
	for col := 0; col < Columns; col++ {
		for row := 0; row <= Rows-ToWin; row++ {
			w := Window{board[row][col], board[row+1][col], board[row+2][col], board[row+3][col]}
			if !fn(w) {
				return
			}
		}
	}

	// diagonal / going up and to the right
	for row := 0; row <= Rows-ToWin; row++ {
		for col := 0; col <= Columns-ToWin; col++ {
			w := Window{board[row][col], board[row+1][col+1], board[row+2][col+2], board[row+3][col+3]}
			if !fn(w) {
				return
			}
		}
	}

	// diagonal \ going down and to the right
	for row := ToWin - 1; row < Rows; row++ {
		for col := 0; col <= Columns-ToWin; col++ {
			w := Window{board[row][col], board[row-1][col+1], board[row-2][col+2], board[row-3][col+3]}
			if !fn(w) {
				return
			}
		}
	}
}

// IsWin reports whether piece has four in a row anywhere on the board.
func IsWin(board Board, piece Piece) bool {
	if piece == Empty {
		return false
	}

	won := false
	EachWindow(board, func(w Window) bool {
		if w.Count(piece) == ToWin {
			won = true
			return false
		}
		return true
	})
	return won
}

// Winner returns the side that has four in a row, or Empty.
func Winner(board Board) Piece {
	if IsWin(board, AiDisc) {
		return AiDisc
	}
	if IsWin(board, PlayerDisc) {
		return PlayerDisc
	}
	return Empty
}

// IsTerminal is true once either side has won or no column is playable.
func IsTerminal(board Board) bool {
	return IsWin(board, PlayerDisc) || IsWin(board, AiDisc) || len(LegalMoves(board)) == 0
}
