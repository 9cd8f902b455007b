package schema

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue codes.
const (
	IssueInvalidType   = "invalid_type"
	IssueTooSmall      = "too_small"
	IssueTooBig        = "too_big"
	IssueInvalidEnum   = "invalid_enum_value"
	IssueInvalidString = "invalid_string"
)

// Issue is one field-level validation failure.
type Issue struct {
	Code    string   `json:"code" yaml:"code"`
	Path    []string `json:"path" yaml:"path"`
	Message string   `json:"message" yaml:"message"`
}

// Result is the outcome of SafeParse. Data is set only when Success is true.
type Result struct {
	Success bool
	Data    Values
	Issues  []Issue
}

// Validator is anything that can check a raw parameter bag.
type Validator interface {
	SafeParse(raw map[string]any) Result
}

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New()

// SafeParse validates raw against the schema, applying defaults and coercing
// query-string values to the declared types.
func (o *Object) SafeParse(raw map[string]any) Result {
	data := make(Values, len(o.fields))
	var issues []Issue

	for _, f := range o.fields {
		v, present := raw[f.Name]
		if !present {
			switch {
			case f.HasDefault:
				data[f.Name] = cloneValue(f.Default)
			case f.Required:
				issues = append(issues, Issue{Code: IssueInvalidType, Path: []string{f.Name}, Message: "Required"})
			}
			continue
		}

		coerced, fieldIssues := f.check(v)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
			continue
		}
		data[f.Name] = coerced
	}

	if len(issues) > 0 {
		return Result{Issues: issues}
	}
	return Result{Success: true, Data: data}
}

func (f Field) check(v any) (any, []Issue) {
	path := []string{f.Name}
	invalidType := func(expected, received string) []Issue {
		return []Issue{{
			Code:    IssueInvalidType,
			Path:    path,
			Message: fmt.Sprintf("Expected %s, received %s", expected, received),
		}}
	}

	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, invalidType("string", kindOf(v))
		}
		if issues := f.lengthIssues(s, "String", "character(s)"); len(issues) > 0 {
			return nil, issues
		}
		if f.pattern != nil && !f.pattern.MatchString(s) {
			return nil, []Issue{{Code: IssueInvalidString, Path: path, Message: "Invalid"}}
		}
		return s, nil

	case TypeNumber, TypeInteger:
		n, ok := toNumber(v)
		if !ok {
			return nil, invalidType("number", kindOf(v))
		}
		if f.Type == TypeInteger {
			if n != math.Trunc(n) {
				return nil, invalidType("integer", "float")
			}
			if issues := safeIntegerIssues(path, n); len(issues) > 0 {
				return nil, issues
			}
		}
		if issues := f.rangeIssues(n); len(issues) > 0 {
			return nil, issues
		}
		if f.Type == TypeInteger {
			return int(n), nil
		}
		return n, nil

	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, invalidType("boolean", kindOf(v))
		}
		return b, nil

	case TypeArray:
		var items []string
		switch tv := v.(type) {
		case []string:
			items = slices.Clone(tv)
		case string:
			items = []string{tv}
		default:
			return nil, invalidType("array", kindOf(v))
		}
		if issues := f.lengthIssues(items, "Array", "element(s)"); len(issues) > 0 {
			return nil, issues
		}
		var issues []Issue
		for i, item := range items {
			if len(f.Enum) > 0 && !slices.Contains(f.Enum, item) {
				issues = append(issues, f.enumIssue([]string{f.Name, strconv.Itoa(i)}, item))
			}
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return items, nil

	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return nil, invalidType("string", kindOf(v))
		}
		if !slices.Contains(f.Enum, s) {
			return nil, []Issue{f.enumIssue(path, s)}
		}
		return s, nil
	}

	return nil, invalidType(string(f.Type), kindOf(v))
}

// lengthIssues checks Min/Max against the length of a string (in runes) or
// slice through the validator's min/max tags.
func (f Field) lengthIssues(v any, noun, unit string) []Issue {
	var tags []string
	if f.Min != nil {
		tags = append(tags, "min="+strconv.Itoa(int(math.Ceil(*f.Min))))
	}
	if f.Max != nil {
		tags = append(tags, "max="+strconv.Itoa(int(math.Floor(*f.Max))))
	}
	fe := firstFieldError(v, tags)
	if fe == nil {
		return nil
	}
	if fe.Tag() == "min" {
		return []Issue{{
			Code:    IssueTooSmall,
			Path:    []string{f.Name},
			Message: fmt.Sprintf("%s must contain at least %s %s", noun, fe.Param(), unit),
		}}
	}
	return []Issue{{
		Code:    IssueTooBig,
		Path:    []string{f.Name},
		Message: fmt.Sprintf("%s must contain at most %s %s", noun, fe.Param(), unit),
	}}
}

func (f Field) rangeIssues(n float64) []Issue {
	var tags []string
	if f.Min != nil {
		tags = append(tags, "gte="+formatNumber(*f.Min))
	}
	if f.Max != nil {
		tags = append(tags, "lte="+formatNumber(*f.Max))
	}
	fe := firstFieldError(n, tags)
	if fe == nil {
		return nil
	}
	if fe.Tag() == "gte" {
		return []Issue{{
			Code:    IssueTooSmall,
			Path:    []string{f.Name},
			Message: "Number must be greater than or equal to " + fe.Param(),
		}}
	}
	return []Issue{{
		Code:    IssueTooBig,
		Path:    []string{f.Name},
		Message: "Number must be less than or equal to " + fe.Param(),
	}}
}

func (f Field) enumIssue(path []string, received string) Issue {
	quoted := make([]string, len(f.Enum))
	for i, e := range f.Enum {
		quoted[i] = "'" + e + "'"
	}
	return Issue{
		Code:    IssueInvalidEnum,
		Path:    path,
		Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), received),
	}
}

func firstFieldError(v any, tags []string) validator.FieldError {
	if len(tags) == 0 {
		return nil
	}
	err := validate.Var(v, strings.Join(tags, ","))
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0]
	}
	return nil
}

// MaxSafeInteger bounds integer fields; beyond it float64 no longer
// represents every integer exactly.
const MaxSafeInteger = 1<<53 - 1

func safeIntegerIssues(path []string, n float64) []Issue {
	switch {
	case n > MaxSafeInteger:
		return []Issue{{
			Code:    IssueTooBig,
			Path:    path,
			Message: "Number must be less than or equal to " + formatNumber(MaxSafeInteger),
		}}
	case n < -MaxSafeInteger:
		return []Issue{{
			Code:    IssueTooSmall,
			Path:    path,
			Message: "Number must be greater than or equal to " + formatNumber(-MaxSafeInteger),
		}}
	}
	return nil
}

func toNumber(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []string, []any:
		return "array"
	case float64, int:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func cloneValue(v any) any {
	if s, ok := v.([]string); ok {
		return slices.Clone(s)
	}
	return v
}
