package mqi

import (
	"github.com/danmuck/mqlink/internal/mqi/cmqc"
)

var filterOperators = map[string]int32{
	"less":         cmqc.MQCFOP_LESS,
	"equal":        cmqc.MQCFOP_EQUAL,
	"not_greater":  cmqc.MQCFOP_NOT_GREATER,
	"greater":      cmqc.MQCFOP_GREATER,
	"not_equal":    cmqc.MQCFOP_NOT_EQUAL,
	"not_less":     cmqc.MQCFOP_NOT_LESS,
	"contains":     cmqc.MQCFOP_CONTAINS,
	"excludes":     cmqc.MQCFOP_EXCLUDES,
	"like":         cmqc.MQCFOP_LIKE,
	"not_like":     cmqc.MQCFOP_NOT_LIKE,
	"contains_gen": cmqc.MQCFOP_CONTAINS_GEN,
	"excludes_gen": cmqc.MQCFOP_EXCLUDES_GEN,
}

// NewFilter builds a PCF inquiry filter. The selector range decides the
// filter's type: integer selectors take integer values, character
// selectors take strings, anything outside both ranges is rejected.
func NewFilter(selector int32, operator string, value any) (*Filter, error) {
	op, ok := filterOperators[operator]
	if !ok {
		return nil, usagef("unknown filter operator %q", operator)
	}
	switch {
	case selector >= cmqc.MQIA_FIRST && selector <= cmqc.MQIA_LAST:
		n, ok := toInt32(value)
		if !ok {
			return nil, usagef("integer selector %d needs an integer value, got %T", selector, value)
		}
		return &Filter{Selector: selector, Operator: op, Value: n}, nil
	case selector >= cmqc.MQCA_FIRST && selector <= cmqc.MQCA_LAST:
		s, ok := value.(string)
		if !ok {
			return nil, usagef("character selector %d needs a string value, got %T", selector, value)
		}
		return &Filter{Selector: selector, Operator: op, Value: s}, nil
	}
	return nil, usagef("selector %d is outside the integer and character attribute ranges", selector)
}

func toInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int:
		return int32(n), true
	case int64:
		return int32(n), true
	}
	return 0, false
}
