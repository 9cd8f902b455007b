package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SafeParseSuite struct {
	suite.Suite
}

func TestSafeParseSuite(t *testing.T) {
	suite.Run(t, new(SafeParseSuite))
}

func (s *SafeParseSuite) TestDefaults() {
	obj := New(
		String("name", Default("World")),
		Boolean("detailed", Default(false)),
		Array("include", Default([]string{"system"})),
		String("nickname", Optional()),
	)

	s.Run("absent fields take defaults", func() {
		res := obj.SafeParse(map[string]any{})
		s.Require().True(res.Success)
		s.Equal("World", res.Data.String("name"))
		s.False(res.Data.Bool("detailed"))
		s.Equal([]string{"system"}, res.Data.Strings("include"))
		s.False(res.Data.Has("nickname"))
	})

	s.Run("provided values override defaults", func() {
		res := obj.SafeParse(map[string]any{"name": "Alice", "detailed": true})
		s.Require().True(res.Success)
		s.Equal("Alice", res.Data.String("name"))
		s.True(res.Data.Bool("detailed"))
	})

	s.Run("default slices are not shared between calls", func() {
		first := obj.SafeParse(map[string]any{})
		first.Data["include"].([]string)[0] = "mutated"
		second := obj.SafeParse(map[string]any{})
		s.Equal([]string{"system"}, second.Data.Strings("include"))
	})

	s.Run("empty string is present, not absent", func() {
		res := obj.SafeParse(map[string]any{"name": ""})
		s.Require().True(res.Success)
		s.Equal("", res.Data.String("name"))
		s.True(res.Data.Has("name"))
	})
}

func (s *SafeParseSuite) TestRequired() {
	obj := New(String("message"))

	res := obj.SafeParse(map[string]any{})
	s.False(res.Success)
	s.Nil(res.Data)
	s.Require().Len(res.Issues, 1)
	s.Equal(Issue{Code: IssueInvalidType, Path: []string{"message"}, Message: "Required"}, res.Issues[0])
}

func (s *SafeParseSuite) TestUnknownKeysStripped() {
	obj := New(String("name", Optional()))

	res := obj.SafeParse(map[string]any{"name": "x", "extra": "y"})
	s.Require().True(res.Success)
	s.Equal(Values{"name": "x"}, res.Data)
}

func (s *SafeParseSuite) TestStringConstraints() {
	obj := New(String("name", Min(1), Max(5), Pattern(`^[a-z]*$`)))

	s.Run("too short", func() {
		res := obj.SafeParse(map[string]any{"name": ""})
		s.Require().Len(res.Issues, 1)
		s.Equal(IssueTooSmall, res.Issues[0].Code)
		s.Equal("String must contain at least 1 character(s)", res.Issues[0].Message)
	})

	s.Run("too long counts runes", func() {
		res := obj.SafeParse(map[string]any{"name": "abcdef"})
		s.Require().Len(res.Issues, 1)
		s.Equal(IssueTooBig, res.Issues[0].Code)
		s.Equal("String must contain at most 5 character(s)", res.Issues[0].Message)

		ok := New(String("name", Max(2))).SafeParse(map[string]any{"name": "éé"})
		s.True(ok.Success)
	})

	s.Run("pattern mismatch", func() {
		res := obj.SafeParse(map[string]any{"name": "ABC"})
		s.Require().Len(res.Issues, 1)
		s.Equal(IssueInvalidString, res.Issues[0].Code)
	})

	s.Run("wrong type", func() {
		res := obj.SafeParse(map[string]any{"name": true})
		s.Require().Len(res.Issues, 1)
		s.Equal(IssueInvalidType, res.Issues[0].Code)
		s.Equal("Expected string, received boolean", res.Issues[0].Message)
	})
}

func (s *SafeParseSuite) TestNumbers() {
	obj := New(
		Number("ratio", Optional(), Min(0), Max(1)),
		Integer("ms", Optional(), Min(0), Max(5000)),
	)

	s.Run("numeric strings are coerced", func() {
		res := obj.SafeParse(map[string]any{"ratio": "0.25", "ms": "100"})
		s.Require().True(res.Success)
		s.Equal(0.25, res.Data["ratio"])
		s.Equal(100, res.Data["ms"])
		s.Equal(100, res.Data.Int("ms"))
		s.Equal(0.25, res.Data.Float("ratio"))
	})

	s.Run("non numeric rejected", func() {
		res := obj.SafeParse(map[string]any{"ratio": "abc"})
		s.Require().Len(res.Issues, 1)
		s.Equal("Expected number, received string", res.Issues[0].Message)
	})

	s.Run("integer rejects fractions", func() {
		res := obj.SafeParse(map[string]any{"ms": "1.5"})
		s.Require().Len(res.Issues, 1)
		s.Equal("Expected integer, received float", res.Issues[0].Message)
	})

	s.Run("integer outside the safe range rejected", func() {
		unbounded := New(Integer("n"))
		for _, in := range []string{"1e30", "9223372036854775808", "9007199254740992"} {
			res := unbounded.SafeParse(map[string]any{"n": in})
			s.Require().False(res.Success, in)
			s.Require().Len(res.Issues, 1, in)
			s.Equal(IssueTooBig, res.Issues[0].Code, in)
			s.Equal("Number must be less than or equal to 9007199254740991", res.Issues[0].Message)
		}

		res := unbounded.SafeParse(map[string]any{"n": "-1e30"})
		s.Require().Len(res.Issues, 1)
		s.Equal(IssueTooSmall, res.Issues[0].Code)

		res = unbounded.SafeParse(map[string]any{"n": "9007199254740991"})
		s.Require().True(res.Success)
		s.Equal(MaxSafeInteger, res.Data["n"])
	})

	s.Run("range enforced", func() {
		res := obj.SafeParse(map[string]any{"ratio": "2", "ms": "-1"})
		s.Require().Len(res.Issues, 2)
		s.Equal(IssueTooBig, res.Issues[0].Code)
		s.Equal("Number must be less than or equal to 1", res.Issues[0].Message)
		s.Equal(IssueTooSmall, res.Issues[1].Code)
		s.Equal("Number must be greater than or equal to 0", res.Issues[1].Message)
	})
}

func (s *SafeParseSuite) TestArrays() {
	obj := New(Array("include", OneOf("system", "runtime", "memory"), Min(1), Max(3)))

	s.Run("list accepted", func() {
		res := obj.SafeParse(map[string]any{"include": []string{"system", "memory"}})
		s.Require().True(res.Success)
		s.Equal([]string{"system", "memory"}, res.Data.Strings("include"))
	})

	s.Run("single value wrapped", func() {
		res := obj.SafeParse(map[string]any{"include": "runtime"})
		s.Require().True(res.Success)
		s.Equal([]string{"runtime"}, res.Data.Strings("include"))
	})

	s.Run("item outside enum reported with index path", func() {
		res := obj.SafeParse(map[string]any{"include": []string{"system", "disk"}})
		s.Require().Len(res.Issues, 1)
		s.Equal(IssueInvalidEnum, res.Issues[0].Code)
		s.Equal([]string{"include", "1"}, res.Issues[0].Path)
	})

	s.Run("too many items", func() {
		res := obj.SafeParse(map[string]any{"include": []string{"system", "runtime", "memory", "system"}})
		s.Require().Len(res.Issues, 1)
		s.Equal("Array must contain at most 3 element(s)", res.Issues[0].Message)
	})

	s.Run("boolean rejected", func() {
		res := obj.SafeParse(map[string]any{"include": true})
		s.Require().Len(res.Issues, 1)
		s.Equal("Expected array, received boolean", res.Issues[0].Message)
	})
}

func (s *SafeParseSuite) TestEnum() {
	obj := New(Enum("component", []string{"api", "database", "cache"}, Default("api")))

	res := obj.SafeParse(map[string]any{"component": "disk"})
	s.Require().Len(res.Issues, 1)
	s.Equal("Invalid enum value. Expected 'api' | 'database' | 'cache', received 'disk'", res.Issues[0].Message)

	res = obj.SafeParse(map[string]any{"component": "cache"})
	s.Require().True(res.Success)
	s.Equal("cache", res.Data.String("component"))
}

func (s *SafeParseSuite) TestBoolean() {
	obj := New(Boolean("flag"))

	s.True(obj.SafeParse(map[string]any{"flag": true}).Success)
	res := obj.SafeParse(map[string]any{"flag": "yes"})
	s.Require().Len(res.Issues, 1)
	s.Equal("Expected boolean, received string", res.Issues[0].Message)
}

func (s *SafeParseSuite) TestCollectsIssuesAcrossFields() {
	obj := New(String("a"), String("b"), Boolean("c"))

	res := obj.SafeParse(map[string]any{"c": "nope"})
	s.False(res.Success)
	s.Len(res.Issues, 3)
}

func (s *SafeParseSuite) TestNewPanicsOnProgrammingErrors() {
	s.Panics(func() { New(String("a"), String("a")) })
	s.Panics(func() { New(String("a", Pattern("("))) })
	s.Panics(func() { New(Enum("a", nil)) })
}

func (s *SafeParseSuite) TestDescribe() {
	obj := New(
		String("name", Default("World"), Min(1), Max(64), Description("Name to greet")),
		Enum("component", []string{"api", "database"}),
		Array("include", Optional()),
	)

	d := obj.Describe()
	s.Equal(DescriptorVersion, d.Version)
	s.Require().Len(d.Params, 3)

	s.Equal("name", d.Params[0].Name)
	s.Equal(TypeString, d.Params[0].Type)
	s.False(d.Params[0].Required)
	s.Equal("World", d.Params[0].Default)
	s.Equal(1.0, *d.Params[0].Min)
	s.Equal(64.0, *d.Params[0].Max)
	s.Equal("string (optional)", d.Params[0].Summary)
	s.Equal("Name to greet", d.Params[0].Description)

	s.True(d.Params[1].Required)
	s.Equal("enum: api|database", d.Params[1].Summary)

	s.Equal("array (optional)", d.Params[2].Summary)
}
