package match

import (
	"fmt"
	"strconv"
	"strings"

	"chess-bot/board"
)

const pgnLineWidth = 80

// PGN renders the game in Portable Game Notation.
func (g *Game) PGN() string {
	var sb strings.Builder

	event := g.Event
	if event == "" {
		event = "?"
	}
	round := "?"
	if g.Round > 0 {
		round = strconv.Itoa(g.Round)
	}
	date := "????.??.??"
	if !g.Started.IsZero() {
		date = g.Started.Format("2006.01.02")
	}
	tag := func(name, value string) {
		fmt.Fprintf(&sb, "[%s %q]\n", name, value)
	}
	tag("Event", event)
	tag("Site", "?")
	tag("Date", date)
	tag("Round", round)
	tag("White", g.White)
	tag("Black", g.Black)
	tag("Result", string(g.Result))
	if g.StartFEN != "" && g.StartFEN != board.Startpos {
		tag("SetUp", "1")
		tag("FEN", g.StartFEN)
	}
	if g.Termination != "" {
		tag("Termination", string(g.Termination))
	}
	sb.WriteByte('\n')

	var tokens []string
	for i, san := range g.SAN {
		ply := g.StartPly + i
		num := ply/2 + 1
		switch {
		case ply%2 == 0:
			tokens = append(tokens, fmt.Sprintf("%d.", num))
		case i == 0:
			tokens = append(tokens, fmt.Sprintf("%d...", num))
		}
		tokens = append(tokens, san)
	}
	tokens = append(tokens, string(g.Result))

	width := 0
	for i, tok := range tokens {
		if i > 0 {
			if width+1+len(tok) > pgnLineWidth {
				sb.WriteByte('\n')
				width = 0
			} else {
				sb.WriteByte(' ')
				width++
			}
		}
		sb.WriteString(tok)
		width += len(tok)
	}
	sb.WriteString("\n")
	return sb.String()
}
