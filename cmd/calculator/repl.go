package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calculator/arith"
	"github.com/zephyrtronium/calculator/format"
)

const prompt = "> "

// words are the unit names offered for tab completion.
var words = func() []string {
	var r []string
	for s := range spellings {
		if len(s) > 1 && strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) < 0 {
			r = append(r, s)
		}
	}
	slices.Sort(r)
	return r
}()

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "calculator_history")
}

func (a *app) repl(ctx context.Context) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	hf := historyFile()
	if f, err := os.Open(hf); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(hf); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(a.out, "Type 'exit' or Ctrl+D to quit, ':help' for commands")
	for ctx.Err() == nil {
		input, err := line.Prompt(prompt + a.m.Params().AngleUnit().String() + " ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return
			}
			a.log.Error("reading input", slog.Any("err", err))
			return
		}
		input = strings.TrimSpace(input)
		switch {
		case input == "":
			continue
		case input == "exit", input == "quit":
			return
		}
		line.AppendHistory(input)
		if strings.HasPrefix(input, ":") {
			a.command(ctx, input)
			continue
		}
		a.eval(ctx, input)
	}
}

// complete offers unit names completing the last word of a line.
func complete(line string) []string {
	k := strings.LastIndexFunc(line, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) + 1
	head, word := line[:k], line[k:]
	if word == "" {
		return nil
	}
	var r []string
	for _, w := range words {
		if strings.HasPrefix(w, word) {
			r = append(r, head+w)
		}
	}
	return r
}

const help = `Commands:
  :help            Show this help
  :deg, :rad       Measure angles in degrees or radians
  :vars            Show variable values
  :set X <expr>    Set a variable to the value of an expression
  :history [n]     Show recent calculations
  :clear           Clear calculation history
  exit, quit       Exit`

// command runs a REPL meta-command.
func (a *app) command(ctx context.Context, cmd string) {
	f := strings.Fields(cmd)
	switch f[0] {
	case ":help", ":h", ":?":
		fmt.Fprintln(a.out, help)
	case ":deg":
		a.m.SetAngleUnit(arith.Deg)
	case ":rad":
		a.m.SetAngleUnit(arith.Rad)
	case ":vars":
		a.vars()
	case ":set":
		if len(f) < 3 {
			fmt.Fprintln(a.out, "usage: :set X <expr>")
			return
		}
		if err := a.set(ctx, f[1], strings.Join(f[2:], " "), true); err != nil {
			fmt.Fprintln(a.out, err)
		}
	case ":history":
		n := a.historyLimit()
		if len(f) > 1 {
			v, err := strconv.Atoi(f[1])
			if err != nil {
				fmt.Fprintf(a.out, "bad count %q\n", f[1])
				return
			}
			n = v
		}
		a.history(ctx, n)
	case ":clear":
		if a.st == nil {
			fmt.Fprintln(a.out, "no history database")
			return
		}
		if err := a.st.Clear(ctx); err != nil {
			fmt.Fprintln(a.out, err)
			return
		}
		fmt.Fprintln(a.out, "History cleared")
	default:
		fmt.Fprintf(a.out, "Unknown command: %s (type :help for commands)\n", f[0])
	}
}

func (a *app) historyLimit() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limit
}

func (a *app) vars() {
	p := a.m.Params()
	opts := a.options()
	vs := p.Variables()
	if len(vs) == 0 {
		fmt.Fprintln(a.out, "(no variables)")
		return
	}
	for _, u := range vs {
		v, _ := p.Lookup(u)
		s, err := format.Conditional(v, opts)
		if err != nil {
			s = v.String()
		}
		fmt.Fprintf(a.out, "  %s = %s\n", u, s)
	}
}

func (a *app) history(ctx context.Context, n int) {
	if a.st == nil {
		fmt.Fprintln(a.out, "no history database")
		return
	}
	h, err := a.st.History(ctx, n)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	opts := a.options()
	// Oldest first, so the newest is nearest the prompt.
	for _, e := range slices.Backward(h) {
		s, err := format.Conditional(e.Answer, opts)
		if err != nil {
			s = e.Answer.String()
		}
		mode := ""
		if e.Params.AngleUnit() == arith.Deg {
			mode = " [" + arith.Deg.String() + "]"
		}
		fmt.Fprintf(a.out, "  %v = %s%s\n", e.Input, s, mode)
	}
}
