package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/tossequity/equity"
	"github.com/lox/tossequity/internal/config"
	"github.com/lox/tossequity/internal/randutil"
	"github.com/lox/tossequity/poker"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every subcommand.
type Globals struct {
	Config  string `short:"c" default:"toss-odds.hcl" help:"Path to HCL configuration file"`
	Seed    *int64 `help:"Random seed for reproducible results"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colored output"`

	out io.Writer
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Equity   EquityCmd        `cmd:"" help:"Estimate equity of a two card hand against a random hand"`
	Discard  DiscardCmd       `cmd:"" help:"Choose which of three hole cards to discard"`
	Strength StrengthCmd      `cmd:"" help:"Blended strength for two or three hole cards"`
	Eval     EvalCmd          `cmd:"" help:"Name the best hand in five to eight cards"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	cli := CLI{Globals: Globals{out: os.Stdout}}
	ctx := kong.Parse(&cli,
		kong.Name("toss-odds"),
		kong.Description("Monte Carlo equity and discard choice for toss hold'em"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	engine *equity.Engine
	seed   int64
}

func (g *Globals) applyColor() {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func (g *Globals) setup() (*env, error) {
	g.applyColor()

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	level, err := cfg.ParseLogLevel()
	if err != nil {
		return nil, err
	}
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	seed := randutil.Seed(g.Seed)
	if g.Seed == nil && cfg.Engine.Seed != nil {
		seed = *cfg.Engine.Seed
	}
	logger.Debug("Using seed", "seed", seed)

	opts, err := cfg.EngineOptions(logger)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		engine: equity.NewEngine(randutil.New(seed), opts...),
		seed:   seed,
	}, nil
}

func (g *Globals) writer() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

// parseCards parses a hole or board argument and rejects repeated cards.
func parseCards(what, s string, sizes ...int) ([]poker.Card, error) {
	if s == "" {
		return nil, nil
	}
	cards, err := poker.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if _, err := poker.NewHand(cards...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if len(sizes) == 0 {
		return cards, nil
	}
	for _, n := range sizes {
		if len(cards) == n {
			return cards, nil
		}
	}
	return nil, fmt.Errorf("%s: %d cards not allowed, want %v", what, len(cards), sizes)
}
