package surgery

import (
	"fmt"
	"math/rand"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/operator"
)

// Recolorer rewrites every stroke-color-setting operator in a stream to a
// pseudo-random RGB color. The generator is owned by the Recolorer and seeded
// explicitly, so the same seed always produces the same color sequence.
type Recolorer struct {
	rng *rand.Rand
}

// NewRecolorer creates a Recolorer with its own deterministic generator.
func NewRecolorer(seed int64) *Recolorer {
	return &Recolorer{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next color in the seeded sequence.
func (rc *Recolorer) Next() geom.Color {
	return geom.Color{
		R: rc.rng.Float64(),
		G: rc.rng.Float64(),
		B: rc.rng.Float64(),
	}
}

// Recolor returns a copy of records in which each stroke color operator
// (G, RG, K and the SC/SCN forms) is replaced by an RG operator carrying the
// next random color. All other records pass through unchanged.
func (rc *Recolorer) Recolor(records []operator.Record) []operator.Record {
	out := make([]operator.Record, 0, len(records))
	for _, rec := range records {
		switch rec.Operator {
		case "G", "RG", "K", "SC", "SCN":
			c := rc.Next()
			out = append(out, operator.Record{
				Operands: []string{
					formatChannel(c.R),
					formatChannel(c.G),
					formatChannel(c.B),
				},
				Operator: "RG",
			})
		default:
			out = append(out, rec)
		}
	}
	return out
}

func formatChannel(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
