package codegen

import (
	"fmt"

	"github.com/dekarrin/lexigen/internal/lalr"
)

// DumpTables renders the action/goto table for --dump-tables: a header plus
// lalr.Table's own rosed-based rendering. The table-walking logic lives on
// Table.String itself (grounded directly on the teacher's lalr1Table.String,
// which this package's job is to reuse, not reimplement) — this function
// only adds the banner a CLI flag's output should have.
func DumpTables(t *lalr.Table) string {
	return fmt.Sprintf("LALR(1) action/goto table (%d states):\n\n%s\n", len(t.Auto.States), t.String())
}
