package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsCallOverride(t *testing.T) {
	t.Run("typed struct", func(t *testing.T) {
		ov, ok := AsCallOverride(CallOverride{Suppress: true, ReturnValue: 7})
		assert.True(t, ok)
		assert.True(t, ov.Suppress)
		assert.Equal(t, 7, ov.ReturnValue)
	})

	t.Run("pointer", func(t *testing.T) {
		ov, ok := AsCallOverride(&CallOverride{Suppress: true})
		assert.True(t, ok)
		assert.True(t, ov.Suppress)
	})

	t.Run("map wire form", func(t *testing.T) {
		ov, ok := AsCallOverride(map[string]any{
			"do_not_really_call": true,
			"return_value":       "patched",
		})
		assert.True(t, ok)
		assert.True(t, ov.Suppress)
		assert.Equal(t, "patched", ov.ReturnValue)
	})

	t.Run("map without suppress flag is not a verdict", func(t *testing.T) {
		_, ok := AsCallOverride(map[string]any{"return_value": 1})
		assert.False(t, ok)
	})

	t.Run("unrelated value", func(t *testing.T) {
		_, ok := AsCallOverride(42)
		assert.False(t, ok)
	})
}

func TestAsSetOverride(t *testing.T) {
	t.Run("suppress", func(t *testing.T) {
		ov, ok := AsSetOverride(SetOverride{Suppress: true})
		assert.True(t, ok)
		assert.True(t, ov.Suppress)
	})

	t.Run("really set rewrites the value", func(t *testing.T) {
		ov, ok := AsSetOverride(map[string]any{
			"really_set": true,
			"new_value":  300,
		})
		assert.True(t, ok)
		assert.False(t, ov.Suppress)
		assert.True(t, ov.ReallySet)
		assert.Equal(t, 300, ov.NewValue)
	})
}

func TestAsGetOverride(t *testing.T) {
	ov, ok := AsGetOverride(map[string]any{
		"do_not_really_get": true,
		"return_value":      3.14,
	})
	assert.True(t, ok)
	assert.True(t, ov.Suppress)
	assert.Equal(t, 3.14, ov.ReturnValue)
}

func TestAsArgOverride(t *testing.T) {
	ov, ok := AsArgOverride(ArgOverride{Args: []any{1, 2}})
	assert.True(t, ok)
	assert.Equal(t, []any{1, 2}, ov.Args)
}

func TestIsSpecial(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"__init__", true},
		{"__repr__", true},
		{"____", false},
		{"__x__", true},
		{"_private", false},
		{"plain", false},
	}
	for _, tc := range cases {
		if got := IsSpecial(tc.name); got != tc.want {
			t.Errorf("IsSpecial(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMemberRecordQualifiedName(t *testing.T) {
	rec := MemberRecord{Name: "area", OwnerName: "Circle"}
	assert.Equal(t, "Circle.area", rec.QualifiedName())
}
