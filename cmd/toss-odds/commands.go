package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/tossequity/equity"
	"github.com/lox/tossequity/internal/pheval"
	"github.com/lox/tossequity/internal/timebank"
	"github.com/lox/tossequity/poker"
)

// EquityCmd estimates the equity of two hole cards.
type EquityCmd struct {
	Hole       string `arg:"" help:"Hole cards, e.g. 'AsKd'"`
	Board      string `short:"b" help:"Board cards (0-6), e.g. 'Td7s8h'"`
	Iterations int    `short:"i" default:"100000" help:"Number of Monte Carlo iterations"`
}

func (c *EquityCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hole, err := parseCards("hole", c.Hole, 2)
	if err != nil {
		return err
	}
	board, err := parseCards("board", c.Board)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := e.engine.Simulate(hole, board, c.Iterations)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	out := g.writer()
	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n%s\n\n", headerStyle.Render("board"), poker.FormatCards(board))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("equity"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("loss"))

	lower, upper := res.ConfidenceInterval()
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		handStyle.Render(poker.FormatCards(hole)),
		fmt.Sprintf("%.1f%% (%.1f-%.1f)", res.Equity()*100, lower*100, upper*100),
		winStyle.Render(fmt.Sprintf("%.1f%%", res.WinRate()*100)),
		tieStyle.Render(fmt.Sprintf("%.1f%%", res.TieRate()*100)),
		lossStyle.Render(fmt.Sprintf("%.1f%%", res.LossRate()*100)))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d iterations in %v\n", res.Trials, duration.Truncate(time.Millisecond))
	return nil
}

// DiscardCmd picks the discard for three hole cards.
type DiscardCmd struct {
	Hole       string `arg:"" help:"Three hole cards, e.g. '6c6dTc'"`
	Board      string `short:"b" help:"Board cards (0-5)"`
	Iterations int    `short:"i" help:"Iterations per candidate (default from config)"`
}

func (c *DiscardCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hole, err := parseCards("hole", c.Hole, 3)
	if err != nil {
		return err
	}
	board, err := parseCards("board", c.Board)
	if err != nil {
		return err
	}

	iterations := c.Iterations
	if iterations == 0 {
		iterations = e.cfg.Engine.DiscardIterations
	}

	candidates, best, err := e.engine.ChooseDiscard(hole, board, iterations)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(g.writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("discard"),
		headerStyle.Render("keep"),
		headerStyle.Render("equity"))
	for _, cand := range candidates {
		style := lossStyle
		marker := ""
		if cand.Index == best {
			style = winStyle
			marker = " *"
		}
		kept := make([]poker.Card, 0, 2)
		for i, card := range hole {
			if i != cand.Index {
				kept = append(kept, card)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			handStyle.Render(cand.Discard.String()),
			poker.FormatCards(kept),
			style.Render(fmt.Sprintf("%.1f%%%s", cand.Equity*100, marker)))
	}
	return w.Flush()
}

// StrengthCmd prints the blended strength used by betting logic.
type StrengthCmd struct {
	Hole      string         `arg:"" help:"Two or three hole cards"`
	Board     string         `short:"b" help:"Board cards (0-6)"`
	Remaining *time.Duration `short:"r" help:"Time left on the game clock (default from config time_bank)"`
}

func (c *StrengthCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hole, err := parseCards("hole", c.Hole, 2, 3)
	if err != nil {
		return err
	}
	board, err := parseCards("board", c.Board)
	if err != nil {
		return err
	}

	total, err := e.cfg.TimeBankDuration()
	if err != nil {
		return err
	}
	if c.Remaining != nil {
		total = *c.Remaining
	}
	bank := timebank.New(quartz.NewReal(), total)

	decision := bank.Begin()
	strength, err := e.engine.Strength(hole, board, decision.Budget())
	spent := decision.End()
	if err != nil {
		return err
	}

	fmt.Fprintf(g.writer(), "%s %s\n%s %s\n",
		headerStyle.Render("strength"),
		winStyle.Render(fmt.Sprintf("%.3f", strength)),
		headerStyle.Render("clock"),
		fmt.Sprintf("%v spent, %v left", spent.Truncate(time.Microsecond), bank.Remaining().Truncate(time.Millisecond)))
	return nil
}

// EvalCmd names the best hand in a set of cards.
type EvalCmd struct {
	Cards string `arg:"" help:"Five to eight cards"`
}

func (c *EvalCmd) Run(g *Globals) error {
	g.applyColor()
	cards, err := parseCards("cards", c.Cards, 5, 6, 7, 8)
	if err != nil {
		return err
	}
	hand, err := poker.NewHand(cards...)
	if err != nil {
		return err
	}

	score, err := equity.Native{}.Evaluate(hand)
	if err != nil {
		return err
	}
	desc, err := pheval.Describe(hand)
	if err != nil {
		desc = strings.ToLower(score.String())
	}

	fmt.Fprintf(g.writer(), "%s %s (%s)\n",
		handStyle.Render(poker.FormatCards(cards)),
		headerStyle.Render(score.String()),
		desc)
	return nil
}
