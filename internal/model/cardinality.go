package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCardinality is returned when a repeat specifier cannot be parsed.
var ErrInvalidCardinality = errors.New("invalid repeat specifier")

// Cardinality is the parsed form of a repeat specifier.
type Cardinality int

const (
	CardinalityOne        Cardinality = iota + 1 // "1"
	CardinalityOptional                          // "0-1"
	CardinalityZeroOrMore                        // "0-N"
	CardinalityOneOrMore                         // "1-N"
)

// ParseCardinality parses a repeat specifier. Any specifier whose upper
// bound is N is a sequence; an empty or unrecognized specifier is an error.
func ParseCardinality(s string) (Cardinality, error) {
	spec := strings.TrimSpace(s)
	switch spec {
	case "1":
		return CardinalityOne, nil
	case "0-1":
		return CardinalityOptional, nil
	case "0-N":
		return CardinalityZeroOrMore, nil
	case "1-N":
		return CardinalityOneOrMore, nil
	case "":
		return 0, fmt.Errorf("%w: missing", ErrInvalidCardinality)
	}
	if lower, ok := strings.CutSuffix(spec, "-N"); ok {
		if n, err := strconv.Atoi(lower); err == nil && n >= 0 {
			if n == 0 {
				return CardinalityZeroOrMore, nil
			}
			return CardinalityOneOrMore, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCardinality, s)
}

// Many reports whether the cardinality maps to a sequence.
func (c Cardinality) Many() bool {
	return c == CardinalityZeroOrMore || c == CardinalityOneOrMore
}

func (c Cardinality) String() string {
	switch c {
	case CardinalityOne:
		return "1"
	case CardinalityOptional:
		return "0-1"
	case CardinalityZeroOrMore:
		return "0-N"
	case CardinalityOneOrMore:
		return "1-N"
	}
	return "invalid"
}
