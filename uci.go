package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"chess-bot/board"
	"chess-bot/engine"
)

func main() {
	seed := flag.Uint64("seed", 0, "random seed for tie breaking")
	weightsFile := flag.String("weights", "", "JSON file with scoring weights")
	flag.Parse()

	u := newUCI(os.Stdout, *seed)
	if *weightsFile != "" {
		w, err := engine.LoadWeights(*weightsFile)
		if err != nil {
			log.Fatalf("load weights: %v", err)
		}
		u.eng.SetWeights(w)
	}
	u.loop(os.Stdin)
}

type uci struct {
	out  io.Writer
	pos  *board.Position
	eng  *engine.Engine
	seed uint64
}

func newUCI(out io.Writer, seed uint64) *uci {
	return &uci{out: out, pos: board.New(), eng: engine.NewSeeded(seed), seed: seed}
}

func (u *uci) println(a ...any) { fmt.Fprintln(u.out, a...) }

// loop reads commands until quit or end of input.
func (u *uci) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name chess-bot")
			u.println("id author chess-bot authors")
			u.println("option name Seed type spin default", u.seed, "min 0 max", uint64(1<<63-1))
			u.println("option name WeightsFile type string default <empty>")
			u.println("option name StrictMateFirst type check default false")
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.pos = board.New()
		case "quit":
			return
		case "stop":
			// Moves are chosen synchronously; nothing to stop.
		case "position":
			u.position(line)
		case "go":
			u.goCommand(line)
		case "scores":
			u.scores()
		case "d":
			u.println("info string fen", u.pos.FEN())
		case "setoption":
			u.setOption(line)
		default:
			u.println("info string Unknown command:", line)
		}
	}
}

func (u *uci) position(line string) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the first token
	if !posScanner.Scan() {
		u.println("info string Malformed position command")
		return
	}

	var pos *board.Position
	switch strings.ToLower(posScanner.Text()) {
	case "startpos":
		pos = board.New()
		posScanner.Scan() // advance the scanner to leave it in a consistent state
	case "fen":
		var fields []string
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fields = append(fields, posScanner.Text())
		}
		var err error
		if pos, err = board.FromFEN(strings.Join(fields, " ")); err != nil {
			u.println("info string Invalid fen position:", err)
			return
		}
	default:
		u.println("info string Invalid position subcommand")
		return
	}

	if strings.ToLower(posScanner.Text()) == "moves" {
		for posScanner.Scan() { // for each move
			m, err := pos.ParseMove(strings.ToLower(posScanner.Text()))
			if err != nil {
				u.println("info string Move", posScanner.Text(), "not found for position", pos.FEN())
				return
			}
			pos.Apply(m)
		}
	}
	u.pos = pos
}

// goCommand accepts the usual time controls but the choice is immediate, so
// they only get validated.
func (u *uci) goCommand(line string) {
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip the first token
	for goScanner.Scan() {
		nextToken := strings.ToLower(goScanner.Text())
		switch nextToken {
		case "infinite", "ponder":
			continue
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "nodes", "movetime":
			if !goScanner.Scan() {
				u.println("info string Malformed go command option", nextToken)
				continue
			}
			if _, err := strconv.Atoi(goScanner.Text()); err != nil {
				u.println("info string Malformed go command option; could not convert", nextToken)
			}
		default:
			u.println("info string Unknown go subcommand", nextToken)
		}
	}

	m, err := u.eng.Think(u.pos)
	if err != nil {
		u.println("info string", err)
		u.println("bestmove", board.NullMove)
		return
	}
	u.println("bestmove", m)
}

func (u *uci) scores() {
	list := u.eng.Evaluate(u.pos, u.pos.LegalMoves())
	for _, sm := range list {
		u.println("info string move", sm.Move, "san", u.pos.SAN(sm.Move), "score", sm.Score)
	}
	if len(list) > 0 {
		u.println("info string max", list.Max())
	}
}

// setOption handles "setoption name <id> [value <x>]". Names are case
// insensitive; values may contain spaces.
func (u *uci) setOption(line string) {
	tokens := strings.Fields(line)
	var name, value []string
	var cur *[]string
	for _, tok := range tokens[1:] {
		switch strings.ToLower(tok) {
		case "name":
			cur = &name
		case "value":
			cur = &value
		default:
			if cur == nil {
				u.println("info string Malformed setoption command")
				return
			}
			*cur = append(*cur, tok)
		}
	}
	val := strings.Join(value, " ")

	switch strings.ToLower(strings.Join(name, " ")) {
	case "seed":
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			u.println("info string Malformed seed", val)
			return
		}
		u.seed = seed
		fresh := engine.NewSeeded(seed)
		fresh.SetWeights(u.eng.Weights())
		fresh.SetStrictMateFirst(u.eng.StrictMateFirst())
		u.eng = fresh
	case "weightsfile":
		if val == "" || val == "<empty>" {
			u.eng.SetWeights(engine.DefaultWeights())
			return
		}
		w, err := engine.LoadWeights(val)
		if err != nil {
			u.println("info string", err)
			return
		}
		u.eng.SetWeights(w)
	case "strictmatefirst":
		on, err := strconv.ParseBool(val)
		if err != nil {
			u.println("info string Malformed StrictMateFirst value", val)
			return
		}
		u.eng.SetStrictMateFirst(on)
	default:
		u.println("info string Unknown option", strings.Join(name, " "))
	}
}
