// Package core provides filtering, sorting, and lookup over overlay
// notification views.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/rhythmui/internal/model"
	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: kind, text, state, read, important, progress
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex    *regexp.Regexp
	floatVal float64
	boolVal  bool
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
//
// Supported fields: kind, text, state, read, important, progress
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "kind=error" - error notifications
//   - "text~upload" - text contains "upload"
//   - "read=false,important=true" - unseen important notifications
//   - "progress>=0.5" - tasks at least half done
func ParseFilter(expr string) (*FilterExpr, error) {
	filter := &FilterExpr{}
	if expr == "" {
		return filter, nil
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "kind=error".
func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}
			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init pre-parses and validates the condition value.
func (c *FilterCondition) init() error {
	switch c.Field {
	case "kind", "type":
		c.Field = "kind"
		if _, err := ParseKind(c.Value); err != nil {
			return err
		}
	case "text", "message":
		c.Field = "text"
	case "state", "status":
		c.Field = "state"
	case "read", "seen":
		c.Field = "read"
		c.boolVal = parseBool(c.Value)
	case "important":
		c.boolVal = parseBool(c.Value)
	case "progress", "value":
		c.Field = "progress"
		f, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return fmt.Errorf("invalid progress value: %s", c.Value)
		}
		c.floatVal = f
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}
	return nil
}

// ParseKind parses a notification kind name.
func ParseKind(s string) (model.Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range model.KindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("invalid kind: %s (use simple, error, or background)", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y", "t":
		return true
	default:
		return false
	}
}

// Match tests if a view matches every condition.
func (f *FilterExpr) Match(v overlay.NotificationView) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(v) {
			return false
		}
	}
	return true
}

// Match tests if a view matches this single condition.
func (c *FilterCondition) Match(v overlay.NotificationView) bool {
	switch c.Field {
	case "kind":
		return c.matchString(v.Kind)
	case "text":
		return c.matchString(v.Text)
	case "state":
		return c.matchString(v.State)
	case "read":
		return c.matchBool(v.Read)
	case "important":
		return c.matchBool(v.Important)
	case "progress":
		return c.matchFloat(v.Progress)
	default:
		return false
	}
}

func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return strings.EqualFold(fieldValue, c.Value)
	case FilterOpNotEqual:
		return !strings.EqualFold(fieldValue, c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

func (c *FilterCondition) matchFloat(fieldValue float64) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.floatVal
	case FilterOpNotEqual:
		return fieldValue != c.floatVal
	case FilterOpGreater:
		return fieldValue > c.floatVal
	case FilterOpLess:
		return fieldValue < c.floatVal
	case FilterOpGreaterEq:
		return fieldValue >= c.floatVal
	case FilterOpLessEq:
		return fieldValue <= c.floatVal
	default:
		return false
	}
}

func (c *FilterCondition) matchBool(fieldValue bool) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.boolVal
	case FilterOpNotEqual:
		return fieldValue != c.boolVal
	default:
		return false
	}
}

// Filter returns the views matching expr, keeping at most limit (0 = all).
func Filter(views []overlay.NotificationView, expr *FilterExpr, limit int) []overlay.NotificationView {
	result := make([]overlay.NotificationView, 0, len(views))
	for _, v := range views {
		if expr == nil || expr.Match(v) {
			result = append(result, v)
		}
	}

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
