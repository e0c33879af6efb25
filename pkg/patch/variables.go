package patch

import (
	"fmt"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// classVarSlot is the attribute-observing replacement for a class-level
// variable. It stores the value itself and intercepts access through the hub.
type classVarSlot struct {
	engine *Engine
	name   string
	value  any
}

func (s *classVarSlot) SlotGet(owner ports.Container) (any, error) {
	current := s.value
	verdict := s.engine.hub.Notify(domain.Event{
		Type:  domain.EventGet,
		Scope: domain.ScopeClass,
		Owner: owner,
		Name:  s.name,
		Value: current,
	}, nil)
	if o, ok := domain.AsGetOverride(verdict); ok && o.Suppress {
		return o.ReturnValue, nil
	}
	return current, nil
}

func (s *classVarSlot) SlotSet(owner ports.Container, value any) error {
	verdict := s.engine.hub.Notify(domain.Event{
		Type:  domain.EventSet,
		Scope: domain.ScopeClass,
		Owner: owner,
		Name:  s.name,
		Value: value,
	}, nil)
	if o, ok := domain.AsSetOverride(verdict); ok {
		if o.Suppress {
			return nil
		}
		if o.ReallySet {
			s.value = o.NewValue
			return nil
		}
	}
	s.value = value
	return nil
}

var _ ports.Slot = (*classVarSlot)(nil)

// moduleVarSlot observes a module-level variable whose real value lives under
// a shadow name in the module namespace.
type moduleVarSlot struct {
	engine *Engine
	name   string
	shadow string
}

func (s *moduleVarSlot) SlotGet(owner ports.Container) (any, error) {
	current, ok := owner.Own(s.shadow)
	if !ok {
		return nil, fmt.Errorf("%s.%s: shadow slot missing: %w", owner.Name(), s.name, domain.ErrNoSuchMember)
	}
	verdict := s.engine.hub.Notify(domain.Event{
		Type:  domain.EventGet,
		Scope: domain.ScopeModule,
		Owner: owner,
		Name:  s.name,
		Value: current,
	}, nil)
	if o, ok := domain.AsGetOverride(verdict); ok && o.Suppress {
		return o.ReturnValue, nil
	}
	return current, nil
}

func (s *moduleVarSlot) SlotSet(owner ports.Container, value any) error {
	verdict := s.engine.hub.Notify(domain.Event{
		Type:  domain.EventSet,
		Scope: domain.ScopeModule,
		Owner: owner,
		Name:  s.name,
		Value: value,
	}, nil)
	if o, ok := domain.AsSetOverride(verdict); ok {
		if o.Suppress {
			return nil
		}
		if o.ReallySet {
			value = o.NewValue
		}
	}
	return owner.Replace(s.shadow, value)
}

var _ ports.Slot = (*moduleVarSlot)(nil)

// wrapClassVariable replaces a class-level variable with an observing slot
// that owns the stored value.
func (e *Engine) wrapClassVariable(owner ports.Container, rec domain.MemberRecord) error {
	return owner.Replace(rec.Name, &classVarSlot{
		engine: e,
		name:   rec.Name,
		value:  rec.Member,
	})
}

// wrapModuleVariable stores the real value under a shadow name and installs
// an observing slot in its place.
func (e *Engine) wrapModuleVariable(owner ports.Container, rec domain.MemberRecord) error {
	shadow := "_" + rec.Name
	if err := owner.Replace(shadow, rec.Member); err != nil {
		return err
	}
	return owner.Replace(rec.Name, &moduleVarSlot{
		engine: e,
		name:   rec.Name,
		shadow: shadow,
	})
}
