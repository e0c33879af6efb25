// Package demo builds the sample object model used by the CLI demo commands
// and the examples: a small geometry module with a class hierarchy that
// exercises every member kind the classifier knows about.
package demo

import (
	"fmt"
	"math"

	"github.com/aretw0/canary/pkg/adapters/dynamic"
	"github.com/aretw0/canary/pkg/ports"
)

// Model holds the demo containers.
type Model struct {
	Geometry *dynamic.Module
	Shape    *dynamic.Class
	Circle   *dynamic.Class
}

// New builds the demo model.
func New() *Model {
	shape := dynamic.NewClass("Shape").
		Define("limit", 100).
		Define("__init__", dynamic.NewFunc("__init__", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			self.Dict()["sides"] = 0
			return nil, nil
		})).
		Define("describe", dynamic.NewFunc("describe", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			sides, _ := self.Get("sides")
			return fmt.Sprintf("shape with %v sides", sides), nil
		})).
		Define("family", dynamic.NewClassMethod(
			dynamic.NewFunc("family", []string{"cls"}, func(args []any, kwargs map[string]any) (any, error) {
				cls := args[0].(ports.Class)
				return cls.Name() + " family", nil
			}))).
		Define("origin", dynamic.NewStatic(
			dynamic.NewFunc("origin", nil, func(args []any, kwargs map[string]any) (any, error) {
				return []float64{0, 0}, nil
			})))

	circle := dynamic.NewClass("Circle", shape).
		Define("__init__", dynamic.NewFunc("__init__", []string{"self", "radius"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			radius := toFloat(args[1])
			self.Dict()["radius"] = radius
			self.Dict()["sides"] = 1
			return nil, nil
		})).
		Define("area", dynamic.NewFunc("area", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			radius, err := self.Get("radius")
			if err != nil {
				return nil, err
			}
			r := toFloat(radius)
			return math.Pi * r * r, nil
		})).
		Define("diameter", dynamic.NewProperty(func(self ports.Object) (any, error) {
			radius, err := self.Get("radius")
			if err != nil {
				return nil, err
			}
			return 2 * toFloat(radius), nil
		}).WithSetter(func(self ports.Object, value any) error {
			self.Dict()["radius"] = toFloat(value) / 2
			return nil
		})).
		Define("__repr__", dynamic.NewFunc("__repr__", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			radius, _ := self.Get("radius")
			return fmt.Sprintf("Circle(radius=%v)", radius), nil
		}))

	geometry := dynamic.NewModule("geometry").
		Define("precision", 2).
		Define("scale", dynamic.NewFunc("scale", []string{"value", "factor"}, func(args []any, kwargs map[string]any) (any, error) {
			return toFloat(args[0]) * toFloat(args[1]), nil
		})).
		Define("native_area", dynamic.NewNativeFunc("native_area",
			"native_area(shape) -> float\nCompute an area through the native binding.",
			func(args []any, kwargs map[string]any) (any, error) {
				if obj, ok := args[0].(*dynamic.Object); ok {
					return obj.CallMethod("area")
				}
				return nil, fmt.Errorf("native_area: not a shape")
			})).
		Define("Shape", shape).
		Define("Circle", circle)

	return &Model{Geometry: geometry, Shape: shape, Circle: circle}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
