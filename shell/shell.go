package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chessteg/chessteg/bench"
	"github.com/chessteg/chessteg/board"
	"github.com/chessteg/chessteg/engine"
)

var defaultOptions = options{
	maxDepth:      engine.DefaultMaxDepth,
	timeout:       engine.DefaultTimeout,
	hashTableSize: engine.DefaultHashTableSize,
	quiescence:    true,
	ordering:      true,
	parallelPerft: true,
}

type options struct {
	maxDepth      uint8
	timeout       time.Duration
	hashTableSize uint64
	quiescence    bool
	ordering      bool
	parallelPerft bool
}

// Shell is a line-oriented driver: one command per line, replies written to
// the output. It is meant for humans and scripts, not for GUIs.
type Shell struct {
	board   *board.Board
	engine  *engine.Engine
	options options

	out     io.Writer
	logger  zerolog.Logger
	printer *message.Printer
}

func NewShell(out io.Writer, logger zerolog.Logger) *Shell {
	s := &Shell{
		options: defaultOptions,
		out:     out,
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
	s.reset()
	return s
}

// Run executes commands from in until quit or end of input.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		s.logger.Debug().Strs("args", args).Msg("command")

		var err error
		switch cmd := args[0]; cmd {
		case "new":
			s.reset()
		case "fen":
			err = s.commandFEN(args[1:])
		case "d":
			s.commandDraw()
		case "moves":
			s.commandMoves()
		case "move":
			err = s.commandMove(args[1:])
		case "undo":
			if !s.board.Undo() {
				err = errors.New("nothing to undo")
			}
		case "redo":
			if !s.board.Redo() {
				err = errors.New("nothing to redo")
			}
		case "history":
			s.commandHistory()
		case "go":
			err = s.commandGo(ctx, args[1:])
		case "eval":
			err = s.commandEval()
		case "perft":
			err = s.commandPerft(args[1:])
		case "set":
			err = s.commandSet(args[1:])
		case "help":
			s.commandHelp()
		case "quit":
			return nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			s.println("error:", err)
		}
	}
	return scanner.Err()
}

func (s *Shell) reset() {
	s.board = board.NewGame()
	s.engine = engine.NewEngine(&engine.EngineConfig{
		HashTableSize: s.options.hashTableSize,
		Logger:        &s.logger,
	})
}

func (s *Shell) commandFEN(args []string) error {
	if len(args) == 0 {
		s.println(s.board.FEN())
		return nil
	}
	b, err := board.NewBoard(board.WithFEN(strings.Join(args, " ")))
	if err != nil {
		return err
	}
	s.board = b
	return nil
}

func (s *Shell) commandDraw() {
	s.println(s.board.Draw())
	s.println(s.board.FEN())
	s.println(s.board.State())
}

func (s *Shell) commandMoves() {
	mvs := s.board.LegalMoves(s.board.Turn())
	parts := make([]string, len(mvs))
	for i, mv := range mvs {
		parts[i] = mv.UCI()
	}
	s.println(strings.Join(parts, " "))
}

func (s *Shell) commandMove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: move <uci>")
	}
	mv, err := s.board.ApplyUCI(args[0])
	if err != nil {
		return err
	}
	s.println(mv.Algebra())
	switch st := s.board.State(); {
	case st.IsCheckmate():
		s.println("game over:", st.Loser().Opposite(), "wins,", st)
	case st.IsDraw():
		s.println("game over: draw,", st)
	}
	return nil
}

func (s *Shell) commandHistory() {
	mvs := s.board.History()
	parts := make([]string, len(mvs))
	for i, mv := range mvs {
		parts[i] = mv.UCI()
	}
	s.println(strings.Join(parts, " "))
}

// commandGo searches the current position; "go apply" also plays the result.
func (s *Shell) commandGo(ctx context.Context, args []string) error {
	apply := len(args) > 0 && args[0] == "apply"
	mv, err := s.engine.Search(ctx, s.board, &engine.SearchConfig{
		MaxDepth:        s.options.maxDepth,
		Timeout:         s.options.timeout,
		UseQuiescence:   s.options.quiescence,
		UseMoveOrdering: s.options.ordering,
	})
	if err != nil {
		return err
	}
	s.println("bestmove", mv.UCI())
	if apply {
		return s.board.ApplyMove(mv)
	}
	return nil
}

func (s *Shell) commandEval() error {
	score, err := engine.Evaluate(s.board)
	if err != nil {
		return err
	}
	s.println(s.printer.Sprintf("eval %d", score))
	return nil
}

func (s *Shell) commandPerft(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: perft <depth>")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return fmt.Errorf("invalid depth %q", args[0])
	}

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range out {
			s.println(line)
		}
	}()
	res, err := bench.Perft(depth, s.board.FEN(), s.options.parallelPerft, true, out)
	close(out)
	<-done
	if err != nil {
		return err
	}
	s.println(res)
	return nil
}

func (s *Shell) commandSet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <name> <value>")
	}
	switch name, value := strings.ToLower(args[0]), args[1]; name {
	case "depth":
		v, err := strconv.ParseUint(value, 10, 8)
		if err != nil || v == 0 || v > engine.MaxPly {
			return fmt.Errorf("invalid depth %q", value)
		}
		s.options.maxDepth = uint8(v)
	case "timeout":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid timeout %q", value)
		}
		s.options.timeout = time.Duration(v) * time.Millisecond
	case "hash":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil || v > 1<<24 {
			return fmt.Errorf("invalid hash size %q", value)
		}
		s.options.hashTableSize = v
		s.engine = engine.NewEngine(&engine.EngineConfig{
			HashTableSize: v,
			Logger:        &s.logger,
		})
	case "quiescence", "ordering", "parallelperft":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q", value)
		}
		switch name {
		case "quiescence":
			s.options.quiescence = v
		case "ordering":
			s.options.ordering = v
		default:
			s.options.parallelPerft = v
		}
	default:
		return fmt.Errorf("unknown option %q", name)
	}
	return nil
}

func (s *Shell) commandHelp() {
	s.println(`commands:
  new                 start a new game
  fen [fen]           print or load a position
  d                   draw the board
  moves               list legal moves
  move <uci>          play a move, e.g. e2e4 or e7e8q
  undo | redo         step through history
  history             list played moves
  go [apply]          search the best move, optionally playing it
  eval                static evaluation, White positive
  perft <depth>       count move sequences
  set <name> <value>  depth, timeout (ms), hash, quiescence, ordering, parallelperft
  quit`)
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}
