package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/arith"
	"github.com/zephyrtronium/calculator/config"
	"github.com/zephyrtronium/calculator/format"
	"github.com/zephyrtronium/calculator/store"
)

func main() {
	var (
		cfgname, inname, dbname string
		with                    [][2]string
		deg, nl, echo           bool
		sigfig                  int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&cfgname, "config", "", "config file (default searches "+config.EnvPath+", ./calculator.yaml, ~/.config/calculator/calculator.yaml)")
	flag.StringVar(&inname, "in", "", "input file, or - for stdin")
	flag.StringVar(&dbname, "db", "", "history database (overrides config; \"none\" disables persistence)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&sigfig, "sigfig", 0, "significant figures in answers (default from config)")
	flag.BoolVar(&deg, "deg", false, "measure angles in degrees")
	flag.BoolVar(&nl, "n", false, "calculate separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print each expression before its answer")
	flag.Parse()

	cfg, cfgpath, err := config.Load(cfgname, os.Getenv)
	if err != nil {
		fatal(err)
	}
	switch dbname {
	case "":
	case "none":
		cfg.Database = ""
	default:
		cfg.Database = dbname
	}
	if sigfig != 0 {
		cfg.Output.SigFig = sigfig
	}
	if deg {
		cfg.AngleUnit = "deg"
	}
	if err := config.Validate(cfg); err != nil {
		fatal(err)
	}

	level := new(slog.LevelVar)
	level.Set(cfg.LogLevel())
	log := newLogger(os.Stderr, cfg.Logging.Format, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, cfg, log, os.Stdout)
	if err != nil {
		fatal(err)
	}
	defer a.close()
	a.echo = echo
	for _, d := range with {
		if err := a.set(ctx, d[0], d[1], false); err != nil {
			fatal(fmt.Errorf("setting %s: %w", d[0], err))
		}
	}

	if inname == "" && flag.NArg() == 0 && interactive() {
		if cfgpath != "" {
			err := config.Watch(ctx, cfgpath, os.Getenv, log, func(cfg *config.Config) {
				level.Set(cfg.LogLevel())
				a.reconfigure(cfg)
			})
			if err != nil {
				log.Warn("not watching config", slog.Any("err", err))
			}
		}
		a.repl(ctx)
		return
	}

	var ins []string
	switch {
	case inname == "-" || inname == "" && flag.NArg() == 0:
		b, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			fatal(err)
		}
		ins = append(ins, split(string(b), nl)...)
	case inname != "":
		b, err := os.ReadFile(inname)
		if err != nil {
			fatal(err)
		}
		ins = append(ins, split(string(b), nl)...)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, split(arg, nl)...)
	}

	failed := false
	for _, in := range ins {
		if !a.eval(ctx, in) {
			failed = true
		}
	}
	if failed {
		a.close()
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

func newLogger(w io.Writer, style string, level slog.Leveler) *slog.Logger {
	o := &slog.HandlerOptions{Level: level}
	if style == "json" {
		return slog.New(slog.NewJSONHandler(w, o))
	}
	return slog.New(slog.NewTextHandler(w, o))
}

// interactive returns whether stdin is a terminal.
func interactive() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// split separates input into expressions. Blank expressions are dropped.
func split(s string, lines bool) []string {
	var r []string
	if !lines {
		if strings.TrimSpace(s) != "" {
			r = append(r, s)
		}
		return r
	}
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			r = append(r, l)
		}
	}
	return r
}

// app is a calculator session.
type app struct {
	m   *calculator.Manager
	st  *store.Store
	log *slog.Logger
	out io.Writer

	mu    sync.Mutex
	opts  format.Options
	limit int
	echo  bool
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) (*app, error) {
	a := &app{
		log:   log,
		out:   out,
		opts:  cfg.FormatOptions(),
		limit: cfg.HistoryLimit,
	}
	p, err := calculator.NewParams(calculator.Angle(cfg.Angle()))
	if err != nil {
		return nil, err
	}
	var hist calculator.History
	if cfg.Database != "" {
		st, err := store.Open(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if err := st.PopulateDefaults(ctx); err != nil {
			st.Close()
			return nil, err
		}
		if p, err = st.Params(ctx, cfg.Angle()); err != nil {
			st.Close()
			return nil, err
		}
		if e, err := st.Newest(ctx); err == nil {
			p, _ = p.WithAnswer(e.Answer)
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Warn("couldn't restore answer", slog.Any("err", err))
		}
		a.st, hist = st, st
	}
	a.m = calculator.NewManager(p, log, hist)
	return a, nil
}

func (a *app) close() {
	a.m.Close()
	if a.st != nil {
		if err := a.st.Close(); err != nil {
			a.log.Error("closing database", slog.Any("err", err))
		}
	}
}

func (a *app) reconfigure(cfg *config.Config) {
	a.mu.Lock()
	a.opts = cfg.FormatOptions()
	a.limit = cfg.HistoryLimit
	a.mu.Unlock()
	a.m.SetAngleUnit(cfg.Angle())
}

func (a *app) options() format.Options {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.opts
}

// eval calculates and prints one expression, reporting whether it succeeded.
func (a *app) eval(ctx context.Context, src string) bool {
	e, err := scan(src)
	if err != nil {
		col := -1
		if lerr, ok := err.(*LexError); ok {
			col = lerr.Col - 1
		}
		a.report(err, src, col)
		return false
	}
	o, ok := a.m.Calculate(ctx, e)
	if !ok {
		fmt.Fprintln(a.out, "busy")
		return false
	}
	if o.Err != nil {
		col := -1
		var ierr calculator.InputError
		if errors.As(o.Err, &ierr) && ierr.Pos() > 0 {
			col = format.DisplayIndex(e, ierr.Pos()-1)
		}
		a.report(o.Err, e.String(), col)
		return false
	}
	s, err := format.Conditional(o.Result.Answer, a.options())
	if err != nil {
		fmt.Fprintln(a.out, err)
		return false
	}
	if a.echo {
		fmt.Fprintf(a.out, "%v = ", e)
	}
	fmt.Fprintln(a.out, s)
	return true
}

// report prints an error. If col is not negative, it also prints text with a
// caret under that column.
func (a *app) report(err error, text string, col int) {
	fmt.Fprintf(a.out, "%s: %v\n", kind(err), err)
	if col < 0 {
		return
	}
	fmt.Fprintf(a.out, "  %s\n  %s^\n", text, strings.Repeat(" ", col))
}

func kind(err error) string {
	var lerr *LexError
	if errors.As(err, &lerr) {
		return "Syntax"
	}
	return calculator.KindOf(err).String()
}

// set binds a variable to the value of an expression, optionally storing it.
func (a *app) set(ctx context.Context, name, value string, persist bool) error {
	e, err := scan(name)
	if err != nil {
		return err
	}
	if e.Len() != 1 || !e.At(0).IsVariable() || e.At(0) == calculator.Ans {
		return fmt.Errorf("%q is not a variable", name)
	}
	u := e.At(0)
	if e, err = scan(value); err != nil {
		return err
	}
	r, err := calculator.CalculateContext(ctx, e, a.m.Params())
	if err != nil {
		return err
	}
	if err := a.m.SetVariables(map[calculator.Unit]arith.Complex{u: r.Answer}); err != nil {
		return err
	}
	if persist && a.st != nil {
		return a.st.SetVariable(ctx, u, r.Answer)
	}
	return nil
}
