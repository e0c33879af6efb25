package domain

import (
	"github.com/mitchellh/mapstructure"
)

// CallOverride is a before_call verdict. With Suppress set the original
// callable is not invoked at all and ReturnValue becomes the call result.
type CallOverride struct {
	Suppress    bool `mapstructure:"do_not_really_call"`
	ReturnValue any  `mapstructure:"return_value"`
}

// ArgOverride is a before_call verdict that substitutes the call arguments
// while still invoking the original callable.
type ArgOverride struct {
	Args   []any          `mapstructure:"args"`
	Kwargs map[string]any `mapstructure:"kwargs"`
}

// GetOverride is a get verdict. With Suppress set the underlying read is
// skipped and ReturnValue is returned instead.
type GetOverride struct {
	Suppress    bool `mapstructure:"do_not_really_get"`
	ReturnValue any  `mapstructure:"return_value"`
}

// SetOverride is a set verdict. With Suppress set the underlying write is
// skipped entirely. With ReallySet set, NewValue replaces the value that is
// actually committed.
type SetOverride struct {
	Suppress  bool `mapstructure:"do_not_really_set"`
	ReallySet bool `mapstructure:"really_set"`
	NewValue  any  `mapstructure:"new_value"`
}

// AsCallOverride interprets a callback result as a call suppression verdict.
// Accepts the typed struct, a pointer to it, or a map using the wire keys
// (do_not_really_call, return_value).
func AsCallOverride(result any) (CallOverride, bool) {
	switch v := result.(type) {
	case CallOverride:
		return v, true
	case *CallOverride:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		var o CallOverride
		if decodeOverrideMap(v, &o) && o.Suppress {
			return o, true
		}
	}
	return CallOverride{}, false
}

// AsArgOverride interprets a callback result as an argument substitution.
// Accepts the typed struct, a pointer to it, or a two-element slice of
// (positional args, keyword args).
func AsArgOverride(result any) (ArgOverride, bool) {
	switch v := result.(type) {
	case ArgOverride:
		return v, true
	case *ArgOverride:
		if v != nil {
			return *v, true
		}
	case []any:
		if len(v) != 2 {
			return ArgOverride{}, false
		}
		args, aok := v[0].([]any)
		kwargs, kok := v[1].(map[string]any)
		if aok && (kok || v[1] == nil) {
			return ArgOverride{Args: args, Kwargs: kwargs}, true
		}
	}
	return ArgOverride{}, false
}

// AsGetOverride interprets a callback result as a get verdict.
func AsGetOverride(result any) (GetOverride, bool) {
	switch v := result.(type) {
	case GetOverride:
		return v, true
	case *GetOverride:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		var o GetOverride
		if decodeOverrideMap(v, &o) && o.Suppress {
			return o, true
		}
	}
	return GetOverride{}, false
}

// AsSetOverride interprets a callback result as a set verdict.
func AsSetOverride(result any) (SetOverride, bool) {
	switch v := result.(type) {
	case SetOverride:
		return v, true
	case *SetOverride:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		var o SetOverride
		if decodeOverrideMap(v, &o) && (o.Suppress || o.ReallySet) {
			return o, true
		}
	}
	return SetOverride{}, false
}

// decodeOverrideMap decodes a loose map verdict into a typed override.
// Unknown keys are tolerated so callbacks can attach extra context.
func decodeOverrideMap(m map[string]any, out any) bool {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return false
	}
	return dec.Decode(m) == nil
}
