// Package protocol implements the line-oriented text command server that
// fronts internal/game and internal/engine, adapted from the teacher's
// bufio.Scanner command loop in internal/uci.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"renju-engine/internal/board"
	"renju-engine/internal/engine"
	"renju-engine/internal/game"
)

// Server reads commands from in and writes responses to out, one line at a
// time, driving a single game.Game and engine.Engine instance.
type Server struct {
	in  *bufio.Scanner
	out io.Writer

	g   *game.Game
	eng *engine.Engine

	moveTimeS float64
}

// New creates a server over the given streams with a fresh Standard PvP
// game and a Medium-difficulty engine.
func New(in io.Reader, out io.Writer) *Server {
	return NewWithEngine(in, out, engine.NewEngine(64))
}

// NewWithEngine creates a server over the given streams driven by a
// caller-configured engine, e.g. one with flag-driven difficulty or limits.
func NewWithEngine(in io.Reader, out io.Writer, eng *engine.Engine) *Server {
	return &Server{
		in:        bufio.NewScanner(in),
		out:       out,
		g:         game.NewGame(game.PvP, game.Standard),
		eng:       eng,
		moveTimeS: 0,
	}
}

// Run executes the command loop until the input stream is exhausted or a
// quit command is received.
func (s *Server) Run() {
	for s.in.Scan() {
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if !s.dispatch(line) {
			return
		}
	}
}

func (s *Server) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "newgame":
		s.handleNewGame(args)
	case "move":
		s.handleMove(args)
	case "undo":
		s.handleUndo()
	case "go":
		s.handleGo(args)
	case "suggest":
		s.handleSuggest(args)
	case "choosecolor":
		s.handleChooseColor(args)
	case "chooseswap2":
		s.handleChooseSwap2(args)
	case "validmoves":
		s.handleValidMoves()
	case "info":
		s.handleInfo()
	case "difficulty":
		s.handleDifficulty(args)
	case "stop":
		s.eng.Stop()
		s.reply("ok")
	case "quit":
		s.reply("ok")
		return false
	default:
		s.reply(fmt.Sprintf("error unknown command %q", cmd))
	}
	return true
}

func (s *Server) reply(msg string) {
	fmt.Fprintln(s.out, msg)
}

// handleNewGame parses "newgame [pvp|pve] [standard|pro|swap|swap2]".
func (s *Server) handleNewGame(args []string) {
	mode := game.PvP
	rule := game.Standard

	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "pve":
			mode = game.PvE
		case "pvp":
			mode = game.PvP
		default:
			s.reply(fmt.Sprintf("error unknown mode %q", args[0]))
			return
		}
	}
	if len(args) > 1 {
		r, ok := parseRule(args[1])
		if !ok {
			s.reply(fmt.Sprintf("error unknown rule %q", args[1]))
			return
		}
		rule = r
	}

	s.g.Reset(mode, rule)
	s.eng.Clear()
	s.reply("ok")
}

func parseRule(name string) (game.Rule, bool) {
	switch strings.ToLower(name) {
	case "standard":
		return game.Standard, true
	case "pro":
		return game.Pro, true
	case "swap":
		return game.Swap, true
	case "swap2":
		return game.Swap2, true
	default:
		return 0, false
	}
}

// handleMove parses "move <row> <col>".
func (s *Server) handleMove(args []string) {
	row, col, ok := parseRowCol(args)
	if !ok {
		s.reply("error expected: move <row> <col>")
		return
	}
	if !s.g.MakeMove(row, col) {
		s.reply("error illegal move")
		return
	}
	s.reply("ok")
}

func parseRowCol(args []string) (int, int, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	row, err1 := strconv.Atoi(args[0])
	col, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return row, col, true
}

func (s *Server) handleUndo() {
	if !s.g.UndoMove() {
		s.reply("error nothing to undo")
		return
	}
	s.reply("ok")
}

// handleGo runs the engine on the current position and plays its move.
func (s *Server) handleGo(args []string) {
	budget := s.parseBudget(args)
	pos := s.g.Position()
	c, ok := s.eng.GetMove(pos, budget)
	if !ok {
		s.reply("error no legal move")
		return
	}
	if !s.g.MakeMove(c.Row(), c.Col()) {
		s.reply("error engine move was illegal")
		return
	}
	s.reply(fmt.Sprintf("bestmove %s", c.String()))
}

// handleSuggest runs the engine without playing the move, for a hint.
func (s *Server) handleSuggest(args []string) {
	budget := s.parseBudget(args)
	pos := s.g.Position()
	c, ok := s.eng.SuggestMove(pos, budget)
	if !ok {
		s.reply("error no legal move")
		return
	}
	s.reply(fmt.Sprintf("suggestion %s", c.String()))
}

func (s *Server) parseBudget(args []string) float64 {
	if len(args) == 0 {
		return s.moveTimeS
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || v <= 0 {
		return s.moveTimeS
	}
	return v
}

func (s *Server) handleChooseColor(args []string) {
	if len(args) != 1 {
		s.reply("error expected: choosecolor <black|white>")
		return
	}
	var side board.Side
	switch strings.ToLower(args[0]) {
	case "black":
		side = board.Black
	case "white":
		side = board.White
	default:
		s.reply(fmt.Sprintf("error unknown color %q", args[0]))
		return
	}
	if !s.g.ChooseColor(side) {
		s.reply("error not awaiting a color choice")
		return
	}
	s.reply("ok")
}

func (s *Server) handleChooseSwap2(args []string) {
	if len(args) != 1 {
		s.reply("error expected: chooseswap2 <1|2|3>")
		return
	}
	option, err := strconv.Atoi(args[0])
	if err != nil || !s.g.ChooseSwap2Option(option) {
		s.reply("error not awaiting a swap2 choice")
		return
	}
	s.reply("ok")
}

func (s *Server) handleValidMoves() {
	moves := s.g.GetValidMoves()
	cells := make([]string, len(moves))
	for i, c := range moves {
		cells[i] = c.String()
	}
	s.reply(strings.Join(cells, " "))
}

func (s *Server) handleInfo() {
	info := s.g.GetGameInfo()
	last := "-"
	if info.HasLastMove {
		last = info.LastMove.String()
	}
	winner := "-"
	if info.HasWinner {
		winner = info.Winner.String()
	}
	s.reply(fmt.Sprintf(
		"turn=%s moves=%d capturesblack=%d captureswhite=%d phase=%s winner=%s lastmove=%s msg=%q",
		info.Turn, info.MoveCount, info.CapturesBlack, info.CapturesWhite,
		info.Phase, winner, last, info.PhaseMessage,
	))
}

func (s *Server) handleDifficulty(args []string) {
	if len(args) != 1 {
		s.reply("error expected: difficulty <easy|medium|hard>")
		return
	}
	switch strings.ToLower(args[0]) {
	case "easy":
		s.eng.SetDifficulty(engine.Easy)
	case "medium":
		s.eng.SetDifficulty(engine.Medium)
	case "hard":
		s.eng.SetDifficulty(engine.Hard)
	default:
		s.reply(fmt.Sprintf("error unknown difficulty %q", args[0]))
		return
	}
	s.reply("ok")
}
