// Package chart holds the data model shared by every stage of the judgment
// pipeline: planets, signs, aspects, positions and the immutable chart they
// compose into.
package chart

// Planet identifies one of the seven traditional bodies or one of the two
// angle-only chart points. Outer planets have no role in traditional horary
// and are intentionally absent.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mercury Planet = "Mercury"
	Venus   Planet = "Venus"
	Mars    Planet = "Mars"
	Jupiter Planet = "Jupiter"
	Saturn  Planet = "Saturn"

	Ascendant Planet = "Ascendant"
	Midheaven Planet = "Midheaven"
)

// Bodies lists the seven traditional planets in the order reception,
// aspect and dignity calculations iterate them. Ascendant and Midheaven are
// angles, not bodies, and are never included here.
var Bodies = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

// IsAngle reports whether p is a chart angle rather than a body with its own
// motion and dignity.
func (p Planet) IsAngle() bool {
	return p == Ascendant || p == Midheaven
}
