package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/canary"
	"github.com/aretw0/canary/internal/demo"
	"github.com/aretw0/canary/pkg/adapters/dynamic"
	"github.com/aretw0/canary/pkg/domain"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Patch the demo model and trace a short scenario through it",
	Long: `Patches every member of the demo model with observing wrappers,
subscribes printing callbacks to call, get and set events, then drives a
short scenario so the event stream is visible. A set callback vetoes any
attempt to raise the class limit, demonstrating overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		layer := canary.New(
			canary.WithLogger(newLogger(cfg)),
			canary.WithReportWriter(io.Discard),
			canary.WithDenylist(cfg.Deny...),
		)

		model := demo.New()
		layer.Mark(model.Circle, cfg.IncludeAll)
		layer.Mark(model.Geometry, cfg.IncludeAll)
		layer.MarkAncestors(cfg.IncludeAll)
		if err := layer.Patch(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		subscribeTracers(layer, out)

		return runScenario(model, out)
	},
}

// subscribeTracers attaches printing callbacks for every event the demo
// emits, plus a veto that blocks raising Shape.limit past its current value.
func subscribeTracers(layer *canary.Layer, out io.Writer) {
	echo := func(label string) domain.Callback {
		return func(ev domain.Event) any {
			fmt.Fprintf(out, "  [%s] %s.%s\n", label, ownerLabel(ev), ev.Name)
			return nil
		}
	}

	for _, scope := range []domain.Scope{domain.ScopeInstance, domain.ScopeClass, domain.ScopeModule} {
		layer.Subscribe(domain.EventBeforeCall, echo("call"), scope)
		layer.Subscribe(domain.EventGet, echo("get"), scope)
	}
	layer.Subscribe(domain.EventSet, echo("set"), domain.ScopeInstance)
	layer.Subscribe(domain.EventSet, echo("set"), domain.ScopeModule)

	layer.Subscribe(domain.EventSet, func(ev domain.Event) any {
		if ev.Name != "limit" {
			return nil
		}
		fmt.Fprintf(out, "  [veto] refusing %s.limit = %v\n", ownerLabel(ev), ev.Value)
		return domain.SetOverride{Suppress: true}
	}, domain.ScopeClass)
}

func runScenario(model *demo.Model, out io.Writer) error {
	fmt.Fprintln(out, "constructing Circle(radius=5):")
	obj, err := model.Circle.New(5.0)
	if err != nil {
		return err
	}
	circle := obj.(*dynamic.Object)

	fmt.Fprintln(out, "calling area:")
	area, err := circle.CallMethod("area")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  area = %.2f\n", area)

	fmt.Fprintln(out, "reading diameter:")
	diameter, err := circle.Get("diameter")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  diameter = %v\n", diameter)

	fmt.Fprintln(out, "setting diameter = 20:")
	if err := circle.Set("diameter", 20.0); err != nil {
		return err
	}
	radius, _ := circle.Get("radius")
	fmt.Fprintf(out, "  radius is now %v\n", radius)

	fmt.Fprintln(out, "raising Shape.limit (vetoed):")
	if err := model.Shape.SetAttr("limit", 300); err != nil {
		return err
	}
	limit, _ := model.Shape.GetAttr("limit")
	fmt.Fprintf(out, "  limit is still %v\n", limit)

	fmt.Fprintln(out, "calling geometry.scale(2, 8):")
	scaled, err := model.Geometry.Call("scale", 2, 8)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  scaled = %v\n", scaled)

	return nil
}

func ownerLabel(ev domain.Event) string {
	switch owner := ev.Owner.(type) {
	case interface{ Name() string }:
		return owner.Name()
	case nil:
		return string(ev.Scope)
	default:
		return fmt.Sprintf("%T", owner)
	}
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.SetOut(os.Stdout)
}
