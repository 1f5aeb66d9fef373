package vision

// Class is a ripeness category. Assignment is terminal: once a unit is
// classified it never transitions.
type Class int

const (
	// ClassGreen marks units dominated by the green band.
	ClassGreen Class = iota

	// ClassYellowClean marks yellow units without interior spotting.
	ClassYellowClean

	// ClassYellowSpotted marks yellow units with interior spotting.
	ClassYellowSpotted
)

// String returns the report name of the class.
func (c Class) String() string {
	switch c {
	case ClassGreen:
		return "green"
	case ClassYellowClean:
		return "yellow_clean"
	case ClassYellowSpotted:
		return "yellow_spotted"
	}
	return "unknown"
}

// Unit is the single polymorphic decision point of the classifier: a pixel
// or a segmented region, reduced to its color vote and spotting decision.
type Unit interface {
	// ColorVotes returns the number of green-band and yellow-band pixels
	// in the unit. For a pixel these are 0 or 1.
	ColorVotes() (green, yellow int)

	// Spotted reports the unit's interior-spotting decision.
	Spotted() bool
}

// Classify assigns a ripeness class to a unit. The second return value is
// false when the unit matches neither color band: such units are not
// bananas and are excluded from counting entirely.
//
// Green wins only a strict majority; an exact green/yellow tie resolves to
// the yellow branch. That precedence is fixed and applied uniformly so
// classification is deterministic.
func Classify(u Unit) (Class, bool) {
	green, yellow := u.ColorVotes()

	switch {
	case green == 0 && yellow == 0:
		return 0, false
	case green > yellow:
		return ClassGreen, true
	case u.Spotted():
		return ClassYellowSpotted, true
	default:
		return ClassYellowClean, true
	}
}

// pixelUnit adapts one pixel's mask memberships to the Unit interface.
type pixelUnit struct {
	green, yellow, spotted bool
}

func (p pixelUnit) ColorVotes() (int, int) {
	g, y := 0, 0
	if p.green {
		g = 1
	}
	if p.yellow {
		y = 1
	}
	return g, y
}

func (p pixelUnit) Spotted() bool { return p.spotted }

// regionUnit adapts one segmented region's tallies to the Unit interface.
type regionUnit struct {
	green, yellow int
	spotted       bool
}

func (r regionUnit) ColorVotes() (int, int) { return r.green, r.yellow }
func (r regionUnit) Spotted() bool          { return r.spotted }
