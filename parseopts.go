package calc

import "github.com/rs/zerolog"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// EvalOption is an option for evaluation.
type EvalOption interface {
	evalOption(*Evaluator)
}

// Mode is an option that applies to both parsing and evaluation.
type Mode interface {
	ParseOption
	EvalOption
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt  map[string]Func
	fracopt   bool
	logopt    struct{ log zerolog.Logger }
	degreeopt bool
)

// parsectx holds general data for parsing.
type parsectx struct {
	// funcs is the set of function names recognized in expressions.
	funcs map[string]Func
	// owned indicates that funcs is a copy which options may modify.
	owned bool
	// preserve indicates that a/b literals are exact rationals.
	preserve bool
	log      zerolog.Logger
}

func newParsectx(opts []ParseOption) parsectx {
	p := parsectx{funcs: globalfuncs, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}

// own ensures the function set is a copy.
func (p *parsectx) own() {
	if p.owned {
		return
	}
	m := make(map[string]Func, len(p.funcs))
	for k, v := range p.funcs {
		m[k] = v
	}
	p.funcs = m
	p.owned = true
}

// ParseFunc sets a function for parsing. To disable parsing a function, pass
// nil for fn.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p parsectx) parsectx {
	p.own()
	if o.fn == nil {
		delete(p.funcs, o.name)
	} else {
		p.funcs[o.name] = o.fn
	}
	return p
}

// ParseFuncs sets a group of functions for parsing. To disable parsing any
// function, set it to nil.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	p.own()
	for k, v := range o {
		if v == nil {
			delete(p.funcs, k)
			continue
		}
		p.funcs[k] = v
	}
	return p
}

// DisableDefaultFuncs disables all default functions during parsing.
func DisableDefaultFuncs() ParseOption {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

// PreserveFractions sets fraction-preserving mode. When parsing, it makes a/b
// literals exact Rationals instead of divisions. When evaluating, it keeps
// Rational results even when they are whole, and converts Real operation
// results to Rationals.
func PreserveFractions(b bool) Mode {
	return fracopt(b)
}

func (o fracopt) parseOption(p parsectx) parsectx {
	p.preserve = bool(o)
	return p
}

func (o fracopt) evalOption(ev *Evaluator) {
	ev.preserve = bool(o)
}

// Logger sets a logger for debug events during parsing and evaluation. The
// default discards everything.
func Logger(l zerolog.Logger) Mode {
	return logopt{l}
}

func (o logopt) parseOption(p parsectx) parsectx {
	p.log = o.log
	return p
}

func (o logopt) evalOption(ev *Evaluator) {
	ev.log = o.log
}

// Degrees sets whether trigonometric functions take their arguments in
// degrees rather than radians.
func Degrees(b bool) EvalOption {
	return degreeopt(b)
}

func (o degreeopt) evalOption(ev *Evaluator) {
	ev.degrees = bool(o)
}
