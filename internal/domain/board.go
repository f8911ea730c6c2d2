package domain

import (
	"fmt"
	"strings"
)

// Board is a 6x7 grid. Row 0 is the bottom row, so a disc dropped into an
// empty column lands at row 0. Board is a value: assigning it copies the grid.
type Board [Rows][Columns]Piece

func NewBoard() Board {
	return Board{}
}

func IsValidMove(board Board, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// the top row is the last one to fill up
	return board[Rows-1][column] == Empty
}

// NextOpenRow returns the lowest empty row in column, or -1 when the column
// is full or out of range.
func (b *Board) NextOpenRow(column int) int {
	if column < 0 || column >= Columns {
		return -1
	}
	for row := 0; row < Rows; row++ {
		if b[row][column] == Empty {
			return row
		}
	}
	return -1
}

// Drop places piece in the lowest empty row of column and returns that row.
func (b *Board) Drop(column int, piece Piece) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}

	row := b.NextOpenRow(column)
	if row < 0 {
		return -1, ErrColumnFull
	}

	b[row][column] = piece
	return row, nil
}

// LegalMoves lists the playable columns in ascending order. An empty result
// means the board is full.
func LegalMoves(board Board) []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if IsValidMove(board, col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

func IsBoardFull(board Board) bool {
	for c := 0; c < Columns; c++ {
		if board[Rows-1][c] == Empty {
			return false
		}
	}

	return true
}

// Count returns how many discs of piece are on the board.
func (b *Board) Count(piece Piece) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == piece {
				n++
			}
		}
	}
	return n
}

// Validate checks a board that came from outside the engine: every cell must
// hold a known piece and no disc may float above an empty cell.
func (b *Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := 0; row < Rows; row++ {
			p := b[row][col]
			if !p.Valid() {
				return fmt.Errorf("%w: unknown piece %d at row %d column %d", ErrInvalidBoard, p, row, col)
			}
			if p == Empty {
				seenEmpty = true
				continue
			}
			if seenEmpty {
				return fmt.Errorf("%w: floating disc at row %d column %d", ErrInvalidBoard, row, col)
			}
		}
	}
	return nil
}

var pieceRunes = map[Piece]byte{
	Empty:      '.',
	PlayerDisc: 'X',
	AiDisc:     'O',
}

// String renders the board top row first, one line per row.
func (b Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(pieceRunes[b[row][col]])
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard is the inverse of String. Rows are given top row first using
// '.' for empty, 'X' for the human and 'O' for the computer. Fewer than six
// rows may be given; missing rows at the top are empty.
func ParseBoard(rows ...string) (Board, error) {
	var board Board
	if len(rows) > Rows {
		return board, fmt.Errorf("%w: %d rows", ErrInvalidBoard, len(rows))
	}

	for i, line := range rows {
		if len(line) != Columns {
			return board, fmt.Errorf("%w: row %q must have %d cells", ErrInvalidBoard, line, Columns)
		}
		row := len(rows) - 1 - i
		for col := 0; col < Columns; col++ {
			switch line[col] {
			case '.':
				board[row][col] = Empty
			case 'X', 'x':
				board[row][col] = PlayerDisc
			case 'O', 'o':
				board[row][col] = AiDisc
			default:
				return board, fmt.Errorf("%w: unexpected %q", ErrInvalidBoard, line[col])
			}
		}
	}

	if err := board.Validate(); err != nil {
		return board, err
	}
	return board, nil
}

// BoardFromRows builds a board from exactly Rows rows of Columns cells, row 0
// at the bottom, and validates it.
func BoardFromRows(rows [][]Piece) (Board, error) {
	var board Board
	if len(rows) != Rows {
		return board, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	for r, row := range rows {
		if len(row) != Columns {
			return board, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), Columns)
		}
		copy(board[r][:], row)
	}

	if err := board.Validate(); err != nil {
		return board, err
	}
	return board, nil
}
