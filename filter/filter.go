// Package filter evaluates expr-lang expressions against catalog items.
//
// An expression is compiled once and can then be matched against episodes,
// series and seasons. Each kind exposes its own variables (Title, Slug,
// Genres, ...) and helpers:
//
//	hasGenre("Comedy") and liveFor("public")
//	hasTag("halo") and Length < 600
//	SeasonCount > 5 and daysSince(LastEpisodeGoliveAt) < 30
//	availableFor("sponsor") and Number == 1
//
// Variables of another kind are undefined, so an expression that only makes
// sense for episodes simply does not match a series.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/roosterteeth/schema"
)

const cacheSize = 100

var programs = newLRUCache[*vm.Program](cacheSize)

// Filter represents a compiled filter expression
type Filter struct {
	program *vm.Program
	expr    string
	now     func() time.Time
}

// Compile compiles an expression. Compiled programs are cached by text.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, ErrEmptyExpression
	}

	if program, ok := programs.Get(expression); ok {
		return &Filter{program: program, expr: expression, now: time.Now}, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(compileEnv()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, newCompilationError(expression, err)
	}

	programs.Put(expression, program)
	return &Filter{program: program, expr: expression, now: time.Now}, nil
}

func newCompilationError(expression string, err error) *CompilationError {
	cerr := &CompilationError{
		Expression: expression,
		Reason:     err.Error(),
		Position:   -1,
		Err:        err,
	}

	var fileErr *file.Error
	if errors.As(err, &fileErr) {
		cerr.Reason = fileErr.Message
		cerr.Position = fileErr.Column
	}
	return cerr
}

// WithNow returns a copy of f that reads the current time from now.
func (f *Filter) WithNow(now func() time.Time) *Filter {
	clone := *f
	clone.now = now
	return &clone
}

// String returns the expression text
func (f *Filter) String() string {
	return f.expr
}

// EvalEpisode evaluates f against an episode.
func (f *Filter) EvalEpisode(ep *schema.Episode) (bool, error) {
	return f.run(episodeEnv(ep, f.now), "episode "+ep.Attributes.Slug)
}

// EvalSeries evaluates f against a series.
func (f *Filter) EvalSeries(s *schema.Series) (bool, error) {
	return f.run(seriesEnv(s, f.now), "series "+s.Attributes.Slug)
}

// EvalSeason evaluates f against a season.
func (f *Filter) EvalSeason(s *schema.Season) (bool, error) {
	return f.run(seasonEnv(s, f.now), "season "+s.Attributes.Slug)
}

// MatchEpisode reports whether ep matches. Evaluation errors do not match.
func (f *Filter) MatchEpisode(ep *schema.Episode) bool {
	ok, err := f.EvalEpisode(ep)
	return err == nil && ok
}

// MatchSeries reports whether s matches. Evaluation errors do not match.
func (f *Filter) MatchSeries(s *schema.Series) bool {
	ok, err := f.EvalSeries(s)
	return err == nil && ok
}

// MatchSeason reports whether s matches. Evaluation errors do not match.
func (f *Filter) MatchSeason(s *schema.Season) bool {
	ok, err := f.EvalSeason(s)
	return err == nil && ok
}

func (f *Filter) run(env map[string]any, item string) (bool, error) {
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, Item: item, Reason: err.Error(), Err: err}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			Item:       item,
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}
