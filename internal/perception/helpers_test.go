package perception

import (
	"strings"

	"github.com/Harshitk-cp/gridmind/internal/domain"
)

// rawReading hand-builds a reading in wire format. Cells missing from codes
// are empty.
func rawReading(codes map[domain.LocalCell]byte) string {
	var b strings.Builder
	b.WriteString("(")
	for r := FieldRows - 1; r >= 0; r-- {
		b.WriteString("(")
		for c := 0; c < FieldCols; c++ {
			b.WriteString("(")
			if code, ok := codes[domain.LocalCell{Row: r, Col: c}]; ok {
				b.WriteString(`"` + string(code) + `")`)
			} else {
				b.WriteString(")")
			}
		}
		b.WriteString(")")
	}
	b.WriteString(")")
	return b.String()
}

func emptyReading() string {
	return rawReading(nil)
}
