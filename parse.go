package calc

// Expr is a parsed expression.
type Expr struct {
	root Node
	// preserve records the fraction mode the expression was parsed in.
	preserve bool
}

// New wraps a tree built directly from nodes. Its evaluation uses decimal
// mode unless options say otherwise.
func New(root Node) *Expr {
	return &Expr{root: root}
}

// Root returns the root node of the expression tree.
func (e *Expr) Root() Node {
	return e.root
}

// String formats the expression using the notation of each operation.
func (e *Expr) String() string {
	return render(e.root)
}

// Format formats the expression with every operation in one notation.
func (e *Expr) Format(notation Notation) string {
	return Format(e.root, notation)
}

// Eval evaluates the expression with a new Evaluator. The fraction mode the
// expression was parsed in applies unless opts change it.
func (e *Expr) Eval(opts ...EvalOption) (Number, error) {
	ev := NewEvaluator(append([]EvalOption{PreserveFractions(e.preserve)}, opts...)...)
	r := ev.Eval(e.root)
	return r, ev.Err()
}

// Depth returns the deepest nesting of operations in the expression.
func (e *Expr) Depth() int {
	return Count(e.root).Depth
}

// Ops returns the number of distinct operations in the expression.
func (e *Expr) Ops() int {
	return Count(e.root).Ops
}

// Numbers returns the number of distinct numbers in the expression.
func (e *Expr) Numbers() int {
	return Count(e.root).Numbers
}

// Parse parses an expression in prefix, infix, or postfix notation.
// Whitespace is ignored everywhere. Errors resulting from invalid input
// implement InputError.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	s, err := clean(src)
	if err != nil {
		return nil, err
	}
	if err := brackets(s); err != nil {
		return nil, err
	}
	n, err := p.parse(s, 0)
	if err != nil {
		p.log.Debug().Err(err).Str("expr", s).Msg("parse failed")
		return nil, err
	}
	return &Expr{root: n, preserve: p.preserve}, nil
}

// parse parses a cleaned expression. col is the offset of s in the whole
// input, for error positions.
func (p *parsectx) parse(s string, col int) (Node, error) {
	if s == "" {
		return nil, &EmptyExpressionError{Col: col + 1}
	}
	if !p.hasNumber(s) {
		return nil, &NumberlessError{Col: col + 1, Text: s}
	}
	switch {
	// -(x) without commas is a negated group, not a prefix operation.
	case prefixShape(s) && (s[0] != '-' || topComma(s[2:len(s)-1])):
		p.log.Debug().Str("expr", s).Stringer("notation", Prefix).Send()
		return p.nested(s, col, Prefix)
	case postfixShape(s):
		p.log.Debug().Str("expr", s).Stringer("notation", Postfix).Send()
		return p.nested(s, col, Postfix)
	case p.infixStart(s):
		p.log.Debug().Str("expr", s).Stringer("notation", Infix).Send()
		return p.infix(s, col)
	}
	return nil, &NotationError{Col: col + 1, Text: s}
}

// hasNumber returns whether s contains a digit or an imaginary unit.
func (p *parsectx) hasNumber(s string) bool {
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
			return true
		case isLetter(s[i]):
			w := word(s, i)
			if w == "i" {
				return true
			}
			i += len(w) - 1
		}
	}
	return false
}

// prefixShape returns whether s looks like op(...).
func prefixShape(s string) bool {
	return len(s) > 2 && isOp(s[0]) && s[1] == '(' && match(s, 1) == len(s)-1
}

// postfixShape returns whether s looks like (...)op.
func postfixShape(s string) bool {
	return len(s) > 2 && s[0] == '(' && isOp(s[len(s)-1]) && match(s, 0) == len(s)-2
}

// infixStart returns whether s begins the way an infix expression can.
func (p *parsectx) infixStart(s string) bool {
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	switch c := s[0]; {
	case isDigit(c), c == '.', c == '(':
		return true
	case isLetter(c):
		w := word(s, 0)
		return w == "i" || p.funcs[w] != nil
	}
	return false
}

// match returns the index of the bracket closing the one at s[i], or -1.
func match(s string, i int) int {
	d := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			d++
		case ')':
			d--
			if d == 0 {
				return j
			}
		}
	}
	return -1
}

// topComma returns whether s has a comma outside any brackets.
func topComma(s string) bool {
	_, offs := split(s)
	return len(offs) > 1
}

// split splits s on commas outside brackets. It returns the parts and their
// offsets in s.
func split(s string) ([]string, []int) {
	var parts []string
	var offs []int
	d, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			d++
		case ')':
			d--
		case ',':
			if d == 0 {
				parts = append(parts, s[start:i])
				offs = append(offs, start)
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	offs = append(offs, start)
	return parts, offs
}

// brackets checks that brackets in s are balanced.
func brackets(s string) error {
	var open []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return &BracketError{Col: i + 1, Right: ")"}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return &BracketError{Col: open[len(open)-1] + 1, Left: "("}
	}
	return nil
}

// nested parses an operand of a prefix or postfix operation: a number, a
// function call, or another operation in the same notation.
func (p *parsectx) nested(s string, col int, n Notation) (Node, error) {
	if s == "" {
		return nil, &EmptyExpressionError{Col: col + 1, End: ","}
	}
	if lit, ok, err := p.literal(s, col); ok || err != nil {
		return lit, err
	}
	if c, ok, err := p.call(s, col, n); ok || err != nil {
		return c, err
	}
	var (
		op    Operator
		inner string
		at    int
	)
	switch {
	case n == Prefix && prefixShape(s):
		op, inner, at = Operator(s[0]), s[2:len(s)-1], col+2
	case n == Postfix && postfixShape(s):
		op, inner, at = Operator(s[len(s)-1]), s[1:len(s)-2], col+1
	default:
		return nil, &NotationError{Col: col + 1, Text: s, Within: n, Nested: true}
	}
	parts, offs := split(inner)
	if len(parts) < 2 {
		return nil, &ArityError{Col: col + 1, Operator: op.String(), Len: len(parts)}
	}
	args := make([]Node, len(parts))
	for i, part := range parts {
		a, err := p.nested(part, at+offs[i], n)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	return NewOperation(op, args, n)
}

// literal parses s as a single number token. It reports false if s is not
// one.
func (p *parsectx) literal(s string, col int) (Node, bool, error) {
	toks, err := tokenize(s, col, p.funcs)
	if err != nil {
		return nil, false, err
	}
	if len(toks) != 1 || !toks[0].Kind.number() {
		return nil, false, nil
	}
	r, err := p.number(toks[0])
	return r, true, err
}

// call parses s as name(arg) for a known function, with arg in notation n.
// It reports false if s is not a call.
func (p *parsectx) call(s string, col int, n Notation) (Node, bool, error) {
	w := word(s, 0)
	fn := p.funcs[w]
	if fn == nil || len(s) < len(w)+2 || s[len(w)] != '(' || match(s, len(w)) != len(s)-1 {
		return nil, false, nil
	}
	arg, err := p.nested(s[len(w)+1:len(s)-1], col+len(w)+1, n)
	if err != nil {
		return nil, true, err
	}
	c, err := newCall(w, fn, arg)
	return c, true, err
}

// infix parses an infix expression.
func (p *parsectx) infix(s string, col int) (Node, error) {
	toks, err := tokenize(s, col, p.funcs)
	if err != nil {
		return nil, err
	}
	if err := check(toks, col+len(s)); err != nil {
		return nil, err
	}
	post, err := shunt(toks)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("tokens", len(toks)).Int("postfix", len(post)).Msg("infix converted")
	return p.build(post)
}

// check verifies that operands and operators alternate properly in an infix
// token sequence. end is the position just past the last token.
func check(toks []Token, end int) error {
	var prev Token
	operand := false // whether the previous token ended an operand
	for i, t := range toks {
		switch t.Kind {
		case TokenInteger, TokenReal, TokenRational, TokenComplex, TokenOpen:
			if operand {
				return &OperatorError{Col: t.Pos}
			}
			operand = t.Kind != TokenOpen
		case TokenFunc:
			if operand {
				return &OperatorError{Col: t.Pos}
			}
			if i+1 >= len(toks) || toks[i+1].Kind != TokenOpen {
				return &CallError{Col: t.Pos, Func: t.Text}
			}
		case TokenClose:
			if !operand {
				if prev.Kind == TokenOpen {
					return &EmptyExpressionError{Col: t.Pos, End: t.Text}
				}
				return &OperatorError{Col: prev.Pos, Operator: prev.Text}
			}
		case TokenOp:
			if !operand {
				return &OperatorError{Col: t.Pos, Operator: t.Text, Left: true}
			}
			operand = false
		case TokenSep:
			return &SeparatorError{Col: t.Pos, Sep: t.Text}
		default:
			panic("calc: invalid token " + t.String())
		}
		prev = t
	}
	if !operand {
		if prev.Kind == TokenOp {
			return &OperatorError{Col: prev.Pos, Operator: prev.Text}
		}
		return &EmptyExpressionError{Col: end}
	}
	return nil
}

// shunt reorders infix tokens into postfix order.
func shunt(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var ops []Token
	for _, t := range toks {
		switch t.Kind {
		case TokenFunc, TokenOpen:
			ops = append(ops, t)
		case TokenOp:
			prec := Operator(t.Text[0]).prec()
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == TokenOpen || top.Kind == TokenOp && Operator(top.Text[0]).prec() < prec {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
		case TokenClose:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: t.Pos, Right: t.Text}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == TokenOpen {
					break
				}
				out = append(out, top)
			}
			if len(ops) > 0 && ops[len(ops)-1].Kind == TokenFunc {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
		default:
			out = append(out, t)
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Pos, Left: top.Text}
		}
		out = append(out, top)
	}
	return out, nil
}

// build constructs the tree for a postfix token sequence.
func (p *parsectx) build(post []Token) (Node, error) {
	var stack []Node
	for _, t := range post {
		switch t.Kind {
		case TokenOp:
			if len(stack) < 2 {
				return nil, &OperatorError{Col: t.Pos, Operator: t.Text, Left: len(stack) == 0}
			}
			l, r := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			o, err := NewOperation(Operator(t.Text[0]), []Node{l, r}, Infix)
			if err != nil {
				return nil, err
			}
			stack = append(stack, o)
		case TokenFunc:
			if len(stack) == 0 {
				return nil, &CallError{Col: t.Pos, Func: t.Text}
			}
			c, err := newCall(t.Text, p.funcs[t.Text], stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			stack[len(stack)-1] = c
		default:
			n, err := p.number(t)
			if err != nil {
				return nil, err
			}
			stack = append(stack, n)
		}
	}
	switch len(stack) {
	case 0:
		return nil, &EmptyExpressionError{Col: 1}
	case 1:
		return stack[0], nil
	default:
		return nil, &OperatorError{Col: post[len(post)-1].Pos}
	}
}

// EvalString is a shortcut to parse and evaluate an expression. Options that
// are also ParseOptions, such as PreserveFractions, apply to parsing too.
func EvalString(src string, opts ...EvalOption) (Number, error) {
	var popts []ParseOption
	for _, opt := range opts {
		if po, ok := opt.(ParseOption); ok {
			popts = append(popts, po)
		}
	}
	a, err := Parse(src, popts...)
	if err != nil {
		return nil, err
	}
	return a.Eval(opts...)
}
