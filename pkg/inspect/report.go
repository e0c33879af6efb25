package inspect

import (
	"fmt"
	"io"

	"github.com/aretw0/canary/pkg/classify"
	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Reporter emits one formatted line per classified member to a writer.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Record writes the report line for one member.
func (r *Reporter) Record(rec domain.MemberRecord) {
	fmt.Fprintln(r.w, FormatRecord(rec))
}

// FormatRecord renders a member record as a single report line. Callables
// include their signature string.
func FormatRecord(rec domain.MemberRecord) string {
	if _, callable := rec.Member.(ports.Callable); callable {
		return fmt.Sprintf("%s: {level: %s, member-type: %s, name: %s, signature: %s}",
			rec.OwnerName, rec.Scope, rec.Kind, rec.Name, classify.Signature(rec.Member))
	}
	return fmt.Sprintf("%s: {level: %s, member-type: %s, name: %s}",
		rec.OwnerName, rec.Scope, rec.Kind, rec.Name)
}
