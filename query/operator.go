package query

import (
	"fmt"

	"github.com/mlwelles/castIndex/index"
)

// Operator is a set operation applied to two casts.
type Operator int

const (
	Union Operator = iota
	Intersect
	SymmetricDifference
)

var symbols = map[string]Operator{
	"|": Union,
	"&": Intersect,
	"^": SymmetricDifference,
}

// ParseOperator maps the symbols |, & and ^ to their Operator.
func ParseOperator(symbol string) (Operator, error) {
	op, ok := symbols[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, symbol)
	}
	return op, nil
}

// Symbol returns the symbol ParseOperator accepts for o.
func (o Operator) Symbol() string {
	switch o {
	case Union:
		return "|"
	case Intersect:
		return "&"
	case SymmetricDifference:
		return "^"
	default:
		return "?"
	}
}

func (o Operator) String() string {
	switch o {
	case Union:
		return "union"
	case Intersect:
		return "intersect"
	case SymmetricDifference:
		return "symmetric-difference"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Apply returns a o b. It panics on an Operator outside the declared constants.
func (o Operator) Apply(a, b index.Set) index.Set {
	switch o {
	case Union:
		return a.Union(b)
	case Intersect:
		return a.Intersect(b)
	case SymmetricDifference:
		return a.SymmetricDifference(b)
	default:
		panic(fmt.Sprintf("query: unknown operator %d", int(o)))
	}
}

// MovieQuery is a parsed "title, title, operator" request.
type MovieQuery struct {
	A, B     string
	Operator Operator
}

// ParseMovieQuery validates parsed fields of a movie query. It expects exactly
// two titles followed by an operator symbol.
func ParseMovieQuery(fields []string) (MovieQuery, error) {
	if len(fields) != 3 {
		return MovieQuery{}, &MalformedQueryError{Fields: len(fields)}
	}
	op, err := ParseOperator(fields[2])
	if err != nil {
		return MovieQuery{}, err
	}
	return MovieQuery{A: fields[0], B: fields[1], Operator: op}, nil
}
