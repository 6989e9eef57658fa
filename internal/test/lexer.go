package test

import (
	"math/rand"
	"strconv"
	"strings"
)

var validTokens = []string{
	"def", "extern", "foo", "bar", "x", "y", "longIdentifierWithDigits123",
	"(", ")", ",", ";", "+", "-", "*", "<",
	"0", "1.5", "42", "3.14159", "1000000",
	"# comment\n", "\n",
}

var operators = []string{"+", "-", "*", "<"}

// GetRandomTokens returns size lexically valid tokens separated by spaces.
// The result is not necessarily a valid program.
func GetRandomTokens(size int) string {
	toks := make([]string, size)
	for i := range toks {
		toks[i] = validTokens[rand.Intn(len(validTokens))]
	}

	return strings.Join(toks, " ")
}

// GetRandomExpression returns a syntactically valid expression with size
// operands over the variables x and y.
func GetRandomExpression(size int) string {
	var expr strings.Builder
	for i := 0; i < size; i++ {
		if i > 0 {
			expr.WriteString(operators[rand.Intn(len(operators))])
		}

		switch rand.Intn(3) {
		case 0:
			expr.WriteString(strconv.Itoa(rand.Intn(100)))
		case 1:
			expr.WriteString("x")
		default:
			expr.WriteString("(y)")
		}
	}

	return expr.String()
}
