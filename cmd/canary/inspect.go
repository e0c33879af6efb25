package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/canary"
	"github.com/aretw0/canary/internal/demo"
	"github.com/aretw0/canary/internal/presentation/tui"
	"github.com/aretw0/canary/pkg/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Classify and report the members of the demo model",
	Long: `Walks the demo class hierarchy and module, classifies every member by
kind, scope and provenance, and prints the classification report without
patching anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		pretty, _ := cmd.Flags().GetBool("pretty")

		layer := canary.New(canary.WithLogger(newLogger(cfg)))

		model := demo.New()
		layer.Mark(model.Circle, all || cfg.IncludeAll)
		layer.Mark(model.Geometry, all || cfg.IncludeAll)
		layer.MarkAncestors(all || cfg.IncludeAll)

		report := buildReport(layer)
		if pretty {
			render := tui.NewRenderer()
			out, err := render(report)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}
		fmt.Print(report)
		return nil
	},
}

// buildReport renders the registry as markdown, one section per container.
func buildReport(layer *canary.Layer) string {
	var b strings.Builder
	b.WriteString("# Classification report\n\n")

	sections := map[string][]string{}
	var order []string
	for _, rec := range layer.Records() {
		if _, seen := sections[rec.OwnerName]; !seen {
			order = append(order, rec.OwnerName)
		}
		sections[rec.OwnerName] = append(sections[rec.OwnerName], inspect.FormatRecord(rec))
	}

	for _, owner := range order {
		fmt.Fprintf(&b, "## %s\n\n", owner)
		for _, line := range sections[owner] {
			fmt.Fprintf(&b, "- `%s`\n", line)
		}
		b.WriteString("\n")
	}

	if hierarchy := layer.Hierarchy(); len(hierarchy) > 0 {
		b.WriteString("## Hierarchy\n\n")
		names := make([]string, 0, len(hierarchy))
		for name := range hierarchy {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if bases := hierarchy[name]; len(bases) > 0 {
				fmt.Fprintf(&b, "- %s -> %s\n", name, strings.Join(bases, ", "))
			} else {
				fmt.Fprintf(&b, "- %s\n", name)
			}
		}
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("all", false, "Include private and inherited members")
	inspectCmd.Flags().Bool("pretty", false, "Render the report with terminal styling")

	// Reports go to stdout; keep diagnostics on stderr.
	inspectCmd.SetOut(os.Stdout)
}
