package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/tresoldi/alteruphono/apply"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/rule"
	"github.com/tresoldi/alteruphono/syllable"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

// main() starts an interactive CLI where users experiment with
// sound-change rules: set a rule, apply it forward and backward to
// sequences, inspect syllabification and sound distances. Results can
// be printed as JSON for piping into other tools.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	system := flag.String("system", feature.DefaultName, "Feature system to use")
	seed := flag.Int64("seed", 42, "Seed for gradient application")
	sylcfg := flag.String("syllables", "", "YAML syllabifier configuration")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the alteruphono REPL")

	sys, err := feature.Get(*system)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	sylOpts := syllable.DefaultOptions()
	if *sylcfg != "" {
		if sylOpts, err = syllable.LoadOptionsFile(*sylcfg); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}

	repl, err := readline.New("alteruphono> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		sys:     sys,
		repl:    repl,
		seed:    *seed,
		sylOpts: sylOpts,
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}

// Intp is our interpreter object.
type Intp struct {
	sys     *feature.System
	repl    *readline.Instance
	rule    *rule.Rule
	seed    int64
	sylOpts syllable.Options
	json    bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute dispatches one REPL command line.
func (intp *Intp) Execute(line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "rule":
		r, err := rule.NewParser(intp.sys).ParseRule(rest)
		if err != nil {
			return false, err
		}
		intp.rule = r
		pterm.Info.Println("rule " + r.Source)
		return false, nil
	case "fw":
		if intp.rule == nil {
			return false, fmt.Errorf("no rule set, use: rule ANTE > POST [/ CONTEXT]")
		}
		seq := rule.NewParser(intp.sys).ParseSequence(rest)
		out := apply.Forward(seq, intp.rule, intp.sys)
		return false, intp.print(out.String())
	case "bw":
		if intp.rule == nil {
			return false, fmt.Errorf("no rule set, use: rule ANTE > POST [/ CONTEXT]")
		}
		seq := rule.NewParser(intp.sys).ParseSequence(rest)
		candidates := apply.Backward(seq, intp.rule, intp.sys)
		rendered := make([]string, len(candidates))
		for i, c := range candidates {
			rendered[i] = c.String()
		}
		return false, intp.print(rendered)
	case "grad":
		if intp.rule == nil {
			return false, fmt.Errorf("no rule set, use: rule ANTE > POST [/ CONTEXT]")
		}
		strengthText, seqText, ok := strings.Cut(rest, " ")
		if !ok {
			return false, fmt.Errorf("usage: grad STRENGTH SEQUENCE")
		}
		strength, err := strconv.ParseFloat(strengthText, 64)
		if err != nil {
			return false, fmt.Errorf("bad strength %q", strengthText)
		}
		seq := rule.NewParser(intp.sys).ParseSequence(seqText)
		out, err := apply.Gradient(seq, intp.rule.Source, strength, intp.seed, intp.sys)
		if err != nil {
			return false, err
		}
		return false, intp.print(out.String())
	case "syll":
		seq := rule.NewParser(intp.sys).ParseSequence(rest)
		smap := syllable.Syllabify(seq, intp.sylOpts)
		parts := make([]string, len(seq))
		for i, el := range seq {
			parts[i] = el.String() + ":" + strings.ToLower(smap.At(i).String())
		}
		return false, intp.print(strings.Join(parts, " "))
	case "dist":
		a, b, ok := strings.Cut(rest, " ")
		if !ok {
			return false, fmt.Errorf("usage: dist GRAPHEME GRAPHEME")
		}
		fa, knownA := intp.sys.GraphemeToFeatures(a)
		fb, knownB := intp.sys.GraphemeToFeatures(strings.TrimSpace(b))
		if !knownA || !knownB {
			return false, fmt.Errorf("unknown grapheme")
		}
		return false, intp.print(intp.sys.SoundDistance(fa, fb))
	case "json":
		intp.json = rest == "on"
		if intp.json {
			pterm.Info.Println("json output on")
		} else {
			pterm.Info.Println("json output off")
		}
		return false, nil
	case "help":
		pterm.Info.Println("commands: rule, fw, bw, grad, syll, dist, json on|off, quit")
		return false, nil
	}
	return false, fmt.Errorf("unknown command %q, try help", cmd)
}

// print renders a result, honoring the json toggle.
func (intp *Intp) print(result interface{}) error {
	if intp.json {
		raw, err := sonic.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	}
	pterm.Info.Println(fmt.Sprintf("%v", result))
	return nil
}
