package patch

import (
	"errors"
	"fmt"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// shadowPrefix marks the instance-dict slot where wrapped values are stored
// once a synthesized property stands in front of them.
const shadowPrefix = "__original_"

// observedProperty replaces a property descriptor (or stands in for an
// instance variable) and notifies get/set through the hub. The raw underlying
// access always happens under the reentrancy guard.
type observedProperty struct {
	engine *Engine
	owner  ports.Container
	name   string

	// orig is the original property descriptor; nil when the property was
	// synthesized from a captured instance-variable value.
	orig ports.Property

	// initial is the captured value backing a synthesized property until the
	// first write lands in the shadow slot.
	initial any
}

func (p *observedProperty) shadowName() string { return shadowPrefix + p.name }

// Get reads the underlying value under the guard, then notifies. When the
// guard is already active the read bypasses notification entirely.
func (p *observedProperty) Get(self ports.Object) (any, error) {
	guard := p.engine.hub.Guard()
	if guard.Active() {
		return p.rawGet(self)
	}

	current, err := func() (any, error) {
		release := guard.Suspend()
		defer release()
		return p.rawGet(self)
	}()
	if err != nil {
		p.engine.log.Error("error getting property",
			"member", p.owner.Name()+"."+p.name, "err", err)
		return nil, err
	}

	verdict := p.engine.hub.Notify(domain.Event{
		Type:   domain.EventGet,
		Scope:  domain.ScopeInstance,
		Owner:  p.owner,
		Name:   p.name,
		Member: p.orig,
		Value:  current,
	}, nil)
	if o, ok := domain.AsGetOverride(verdict); ok && o.Suppress {
		return o.ReturnValue, nil
	}
	return current, nil
}

// rawGet reads without notification: the original getter when there is one,
// otherwise the shadow slot, the plain dict slot, then the captured initial.
func (p *observedProperty) rawGet(self ports.Object) (any, error) {
	if p.orig != nil {
		return p.orig.Get(self)
	}
	dict := self.Dict()
	if v, ok := dict[p.shadowName()]; ok {
		return v, nil
	}
	if v, ok := dict[p.name]; ok {
		return v, nil
	}
	return p.initial, nil
}

// Set notifies first, honors suppress/really-set, then commits under the
// guard. A missing original setter falls back to direct attribute
// assignment.
func (p *observedProperty) Set(self ports.Object, value any) error {
	guard := p.engine.hub.Guard()
	if guard.Active() {
		p.rawSet(self, value)
		return nil
	}

	verdict := p.engine.hub.Notify(domain.Event{
		Type:   domain.EventSet,
		Scope:  domain.ScopeInstance,
		Owner:  p.owner,
		Name:   p.name,
		Member: p.orig,
		Value:  value,
	}, nil)
	if o, ok := domain.AsSetOverride(verdict); ok {
		if o.Suppress {
			return nil
		}
		if o.ReallySet {
			value = o.NewValue
		}
	}

	release := guard.Suspend()
	defer release()

	if p.orig != nil && p.orig.HasSetter() {
		if err := p.orig.Set(self, value); err != nil {
			if errors.Is(err, domain.ErrNoSetter) || errors.Is(err, domain.ErrNoSuchMember) {
				p.rawSet(self, value)
				return nil
			}
			p.engine.log.Error("error setting property",
				"member", p.owner.Name()+"."+p.name, "err", err)
			return err
		}
		return nil
	}

	p.rawSet(self, value)
	return nil
}

// rawSet writes straight into the shadow slot, bypassing notification.
func (p *observedProperty) rawSet(self ports.Object, value any) {
	self.Dict()[p.shadowName()] = value
}

// HasSetter mirrors the original descriptor; synthesized instance-variable
// properties are always writable.
func (p *observedProperty) HasSetter() bool {
	if p.orig != nil {
		return p.orig.HasSetter()
	}
	return true
}

var _ ports.Property = (*observedProperty)(nil)

// wrapProperty replaces a property descriptor with an observing one.
func (e *Engine) wrapProperty(owner ports.Container, rec domain.MemberRecord) error {
	desc := rec.Member
	if own, ok := ownDescriptor(owner, rec.Name); ok {
		desc = own
	}
	orig, ok := desc.(ports.Property)
	if !ok {
		return fmt.Errorf("member is not a property descriptor")
	}
	return owner.Replace(rec.Name, &observedProperty{
		engine: e,
		owner:  owner,
		name:   rec.Name,
		orig:   orig,
	})
}

// wrapInstanceVariable synthesizes an observing property from a captured
// initial value.
func (e *Engine) wrapInstanceVariable(owner ports.Container, rec domain.MemberRecord) error {
	return owner.Replace(rec.Name, &observedProperty{
		engine:  e,
		owner:   owner,
		name:    rec.Name,
		initial: rec.Member,
	})
}

// ownDescriptor resolves a descriptor through the owner and its ancestors.
func ownDescriptor(c ports.Container, name string) (any, bool) {
	if entry, ok := c.Own(name); ok {
		return entry, true
	}
	if cls, ok := c.(ports.Class); ok {
		for _, base := range cls.Bases() {
			if entry, ok := ownDescriptor(base, name); ok {
				return entry, true
			}
		}
	}
	return nil, false
}
