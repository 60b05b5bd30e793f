package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tresoldi/alteruphono"
	"github.com/tresoldi/alteruphono/feature"
	"github.com/tresoldi/alteruphono/syllable"
)

// ParseError reports an ill-formed rule. TokenIndex is 0-based. For an
// error met while reading one word of the rule it is the position of
// that word among the lexemes of the normalized rule text (arrows and
// the context slash count). A missing arrow or an empty post reports the
// number of lexemes; an empty ante or a lexer failure reports 0. The
// structural checks that run once all words are read report the
// position of the token within its own side (ante, post or context); a
// correspondence-set arity mismatch reports the ordinal of the set, and
// a context without focus or a surplus of post sets reports 0.
type ParseError struct {
	Rule       string
	TokenIndex int
	Msg        string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q, token %d: %s", e.Rule, e.TokenIndex, e.Msg)
}

// Parser turns rule and sequence text into values of one feature
// system. Parsers are stateless and safe for concurrent use.
type Parser struct {
	sys *feature.System
}

// NewParser creates a parser over a feature system.
func NewParser(sys *feature.System) *Parser {
	return &Parser{sys: sys}
}

// ParseRule parses rule text against the default feature system.
func ParseRule(text string) (*Rule, error) {
	sys, err := feature.Default()
	if err != nil {
		return nil, err
	}
	return NewParser(sys).ParseRule(text)
}

// ParseSequence parses segment text against the default feature system.
func ParseSequence(text string) (alteruphono.Sequence, error) {
	sys, err := feature.Default()
	if err != nil {
		return nil, err
	}
	return NewParser(sys).ParseSequence(text), nil
}

// normalize brings text to Unicode NFC and collapses whitespace runs to
// single spaces.
func normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// ParseSequence maps whitespace-separated tokens to boundaries and
// sounds. It is total: unknown graphemes become sounds with empty
// feature sets.
func (p *Parser) ParseSequence(text string) alteruphono.Sequence {
	fields := strings.Fields(norm.NFC.String(text))
	seq := make(alteruphono.Sequence, 0, len(fields))
	for _, field := range fields {
		if field == alteruphono.BoundaryMarker {
			seq = append(seq, alteruphono.NewBoundary())
			continue
		}
		features, known := p.sys.GraphemeToFeatures(field)
		if !known {
			tracer().Debugf("unknown grapheme %q, empty feature set", field)
			features = alteruphono.FeatureSet{}
		}
		seq = append(seq, alteruphono.Sound{Grapheme: field, Features: features})
	}
	return seq
}

// ParseRule parses rule text into an immutable Rule. The accepted shape
// is "ANTE > POST" with an optional "/ CONTEXT"; ">", "→" and "->" are
// interchangeable arrows.
func (p *Parser) ParseRule(text string) (*Rule, error) {
	source := normalize(text)
	lexemes, err := lexRule(source)
	if err != nil {
		return nil, &ParseError{Rule: source, TokenIndex: 0, Msg: err.Error()}
	}

	const (
		sideAnte = iota
		sidePost
		sideContext
	)
	side := sideAnte
	r := &Rule{Source: source}
	for idx, lx := range lexemes {
		switch lx.typ {
		case tokArrow:
			if side != sideAnte {
				return nil, &ParseError{Rule: source, TokenIndex: idx, Msg: "unexpected second arrow"}
			}
			side = sidePost
		case tokSlash:
			if side != sidePost {
				return nil, &ParseError{Rule: source, TokenIndex: idx, Msg: "unexpected context slash"}
			}
			side = sideContext
		case tokWord:
			tokens, err := p.parseWord(lx.text, idx, side == sideContext, source)
			if err != nil {
				return nil, err
			}
			switch side {
			case sideAnte:
				r.Ante = append(r.Ante, tokens...)
			case sidePost:
				r.Post = append(r.Post, tokens...)
			case sideContext:
				r.Context = append(r.Context, tokens...)
			}
		}
	}
	if side == sideAnte {
		return nil, &ParseError{Rule: source, TokenIndex: len(lexemes), Msg: "missing arrow"}
	}
	if len(r.Ante) == 0 {
		return nil, &ParseError{Rule: source, TokenIndex: 0, Msg: "empty ante"}
	}
	if len(r.Post) == 0 {
		return nil, &ParseError{Rule: source, TokenIndex: len(lexemes), Msg: "empty post"}
	}
	if err := p.validate(r); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed rule %q: %d ante, %d post, %d context tokens",
		source, len(r.Ante), len(r.Post), len(r.Context))
	return r, nil
}

// syllableRoles maps the focus suffixes to roles.
var syllableRoles = map[string]syllable.Role{
	"onset":   syllable.Onset,
	"nucleus": syllable.Nucleus,
	"coda":    syllable.Coda,
}

// parseWord unpacks one whitespace-separated word into tokens. Most
// words yield a single token; a focus with syllable condition yields
// the condition followed by the focus.
func (p *Parser) parseWord(word string, idx int, inContext bool, source string) ([]Token, error) {
	fail := func(msg string) ([]Token, error) {
		return nil, &ParseError{Rule: source, TokenIndex: idx, Msg: msg}
	}

	switch {
	case word == alteruphono.BoundaryMarker:
		return []Token{BoundaryTok{Marker: word}}, nil

	case word == "_" || strings.HasPrefix(word, "_."):
		if !inContext {
			return fail("focus is only legal in context")
		}
		if word == "_" {
			return []Token{FocusTok{}}, nil
		}
		role, ok := syllableRoles[word[2:]]
		if !ok {
			return fail("unknown syllable position " + word[2:])
		}
		return []Token{SyllableCondTok{Position: role}, FocusTok{}}, nil

	case word == ":null:":
		return []Token{EmptyTok{}}, nil
	}

	// Quantifier suffixes bind the whole word.
	if last := word[len(word)-1]; len(word) > 1 && (last == '+' || last == '?') {
		innerToks, err := p.parseWord(word[:len(word)-1], idx, inContext, source)
		if err != nil {
			return nil, err
		}
		inner := innerToks[0]
		if !quantifiable(inner) {
			return fail(fmt.Sprintf("quantifier %q on non-primitive token", string(last)))
		}
		return []Token{QuantifiedTok{Inner: inner, Quant: rune(last)}}, nil
	}

	// Negation binds before choice splitting: "!p|b" negates the whole
	// choice.
	if strings.HasPrefix(word, "!") {
		body := word[1:]
		if body == "" {
			return fail("negation with no operand")
		}
		inner, err := p.parseChain(body, idx, source)
		if err != nil {
			return nil, err
		}
		return []Token{NegationTok{Inner: inner}}, nil
	}

	if strings.HasPrefix(word, "{") {
		if !strings.HasSuffix(word, "}") {
			return fail("unbalanced braces in correspondence set")
		}
		body := word[1 : len(word)-1]
		if body == "" {
			return fail("empty correspondence set")
		}
		choices, err := p.parseAlternatives(body, idx, source)
		if err != nil {
			return nil, err
		}
		return []Token{SetTok{Choices: choices}}, nil
	}

	if strings.Contains(word, "|") {
		choices, err := p.parseAlternatives(word, idx, source)
		if err != nil {
			return nil, err
		}
		return []Token{ChoiceTok{Choices: choices}}, nil
	}

	tok, err := p.parseSimple(word, idx, source)
	if err != nil {
		return nil, err
	}
	return []Token{tok}, nil
}

// parseChain parses the operand of a negation: a single primitive or a
// pipe-chain of primitives.
func (p *Parser) parseChain(body string, idx int, source string) (Token, error) {
	if strings.Contains(body, "|") {
		choices, err := p.parseAlternatives(body, idx, source)
		if err != nil {
			return nil, err
		}
		return ChoiceTok{Choices: choices}, nil
	}
	return p.parseSimple(body, idx, source)
}

// parseAlternatives parses a pipe-separated list of primitives.
func (p *Parser) parseAlternatives(body string, idx int, source string) ([]Token, error) {
	parts := strings.Split(body, "|")
	choices := make([]Token, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, &ParseError{Rule: source, TokenIndex: idx, Msg: "empty alternative"}
		}
		tok, err := p.parseSimple(part, idx, source)
		if err != nil {
			return nil, err
		}
		choices = append(choices, tok)
	}
	return choices, nil
}

// parseSimple parses a primitive token: a boundary, the empty token, a
// back-reference, a sound class or a grapheme. Structured tokens
// (choices, sets, quantifiers, negation, focus) are rejected here; they
// may not nest.
func (p *Parser) parseSimple(word string, idx int, source string) (Token, error) {
	fail := func(msg string) (Token, error) {
		return nil, &ParseError{Rule: source, TokenIndex: idx, Msg: msg}
	}
	switch {
	case word == alteruphono.BoundaryMarker:
		return BoundaryTok{Marker: word}, nil
	case word == ":null:":
		return EmptyTok{}, nil
	case word == "_" || strings.HasPrefix(word, "_."):
		return fail("focus may not nest inside another token")
	case strings.ContainsAny(word, "{}|!"):
		return fail("token " + word + " may not nest inside another token")
	case len(word) > 1 && (word[len(word)-1] == '+' || word[len(word)-1] == '?'):
		return fail("quantifier may not nest inside another token")
	case strings.HasPrefix(word, "@"):
		return p.parseBackRef(word, idx, source)
	}

	base, mods, err := splitModifier(word)
	if err != nil {
		return fail(err.Error())
	}

	if base != "" && base[0] >= 'A' && base[0] <= 'Z' && p.sys.IsClass(base) {
		features, _ := p.sys.ClassFeatures(base)
		if len(mods) > 0 {
			features = p.sys.ApplyModifiers(features, mods)
		}
		return SegmentTok{Sound: alteruphono.Sound{
			Grapheme: base,
			Features: features,
			Partial:  true,
		}}, nil
	}
	if len(mods) > 0 {
		return fail("modifiers are only legal on classes and back-references")
	}

	features, known := p.sys.GraphemeToFeatures(word)
	if !known {
		tracer().Debugf("unknown grapheme %q in rule, empty feature set", word)
		features = alteruphono.FeatureSet{}
	}
	return SegmentTok{Sound: alteruphono.Sound{Grapheme: word, Features: features}}, nil
}

// parseBackRef parses "@n" and "@n[mods]"; n is 1-based in source,
// 0-based in the token.
func (p *Parser) parseBackRef(word string, idx int, source string) (Token, error) {
	fail := func(msg string) (Token, error) {
		return nil, &ParseError{Rule: source, TokenIndex: idx, Msg: msg}
	}
	body := word[1:]
	digits := body
	if cut := strings.IndexByte(body, '['); cut >= 0 {
		digits = body[:cut]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return fail("back-reference needs an index ≥ 1")
	}
	_, mods, err := splitModifier("@" + body) // reuse bracket scanning
	if err != nil {
		return fail(err.Error())
	}
	return BackRefTok{Index: n - 1, Mods: mods}, nil
}

// splitModifier splits "V[+long]" into base "V" and its parsed
// modifiers. Words without brackets pass through unchanged.
func splitModifier(word string) (string, []feature.Modifier, error) {
	cut := strings.IndexByte(word, '[')
	if cut < 0 {
		if strings.ContainsRune(word, ']') {
			return "", nil, fmt.Errorf("unbalanced bracket in %s", word)
		}
		return word, nil, nil
	}
	if !strings.HasSuffix(word, "]") {
		return "", nil, fmt.Errorf("unbalanced bracket in %s", word)
	}
	mods, err := feature.ParseModifiers(word[cut:])
	if err != nil {
		return "", nil, err
	}
	return word[:cut], mods, nil
}

func quantifiable(tok Token) bool {
	switch inner := tok.(type) {
	case SegmentTok:
		return true
	case NegationTok:
		_, segment := inner.Inner.(SegmentTok)
		return segment
	default:
		return false
	}
}

// validate enforces the structural rule invariants that span token
// boundaries.
func (p *Parser) validate(r *Rule) error {
	fail := func(idx int, msg string) error {
		return &ParseError{Rule: r.Source, TokenIndex: idx, Msg: msg}
	}

	// Context must carry exactly one focus when present.
	if len(r.Context) > 0 {
		focuses := 0
		for i, tok := range r.Context {
			if _, ok := tok.(FocusTok); ok {
				focuses++
				if focuses > 1 {
					return fail(i, "more than one focus in context")
				}
			}
		}
		if focuses == 0 {
			return fail(0, "context requires a focus")
		}
	}

	// Post is a construction recipe, not a pattern: no choices,
	// negations or quantifiers there.
	for i, tok := range r.Post {
		switch tok.(type) {
		case ChoiceTok:
			return fail(i, "choice is not allowed in post")
		case NegationTok:
			return fail(i, "negation is not allowed in post")
		case QuantifiedTok:
			return fail(i, "quantifier is not allowed in post")
		}
	}

	// A zero-width ante needs a context to anchor the insertion site.
	for i, tok := range r.Ante {
		if _, ok := tok.(EmptyTok); ok && !r.HasContext() {
			return fail(i, "insertion rule requires a context")
		}
	}

	// Back-references resolve against ante positions.
	for i, tok := range r.Ante {
		if br, ok := tok.(BackRefTok); ok && br.Index >= i {
			return fail(i, "back-reference to a later ante position")
		}
	}
	checkRefs := func(tokens []Token) error {
		for i, tok := range tokens {
			if br, ok := tok.(BackRefTok); ok && br.Index >= len(r.Ante) {
				return fail(i, fmt.Sprintf("back-reference @%d exceeds ante length", br.Index+1))
			}
		}
		return nil
	}
	if err := checkRefs(r.Post); err != nil {
		return err
	}
	if err := checkRefs(r.Context); err != nil {
		return err
	}

	// Correspondence sets pair by position and must agree in arity.
	anteSets := collectSets(r.Ante)
	postSets := collectSets(r.Post)
	if len(postSets) > len(anteSets) {
		return fail(0, "more correspondence sets in post than in ante")
	}
	for i, post := range postSets {
		if len(post.Choices) != len(anteSets[i].Choices) {
			return fail(i, fmt.Sprintf("correspondence set arity mismatch: %d vs %d",
				len(anteSets[i].Choices), len(post.Choices)))
		}
	}
	return nil
}

func collectSets(tokens []Token) []SetTok {
	var sets []SetTok
	for _, tok := range tokens {
		if set, ok := tok.(SetTok); ok {
			sets = append(sets, set)
		}
	}
	return sets
}
