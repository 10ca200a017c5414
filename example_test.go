package calc_test

import (
	"fmt"

	"github.com/zephyrtronium/calc"
)

func ExampleParse() {
	for _, src := range []string{"3 * (4 + 5)", "* (3, + (4, 5))", "(3, (4, 5) +) *"} {
		a, err := calc.Parse(src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		r, _ := a.Eval()
		fmt.Println(a, "=", r)
	}

	// Output:
	// ( 3 * ( 4 + 5 ) ) = 27
	// * (3, + (4, 5)) = 27
	// (3, (4, 5) +) * = 27
}

func ExampleExpr_Format() {
	a, _ := calc.Parse("1 + 2 * 3")
	fmt.Println(a.Format(calc.Prefix))
	fmt.Println(a.Format(calc.Postfix))
	fmt.Println(a.Depth(), a.Ops(), a.Numbers())

	// Output:
	// + (1, * (2, 3))
	// (1, (2, 3) *) +
	// 2 2 3
}

func ExampleEvalString() {
	r, _ := calc.EvalString("1/2 + 1/3", calc.PreserveFractions(true))
	fmt.Println(r)
	r, _ = calc.EvalString("1/2 + 1/3")
	fmt.Println(r)
	r, _ = calc.EvalString("(3/4 + 5/6i) / (1/2 + 1/3i)")
	fmt.Println(r)
	_, err := calc.EvalString("2 +* 3")
	fmt.Println(err)

	// Output:
	// 5/6
	// 0.8333333333333333
	// 47/26 + 6/13i
	// 3: operator "*" has no left operand
}
