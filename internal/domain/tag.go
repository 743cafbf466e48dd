package domain

import "maps"

// Tag identifies a political grouping. Tags are plain values compared with
// Equal, never by reference identity; any number of additional tags can be
// defined alongside the built-ins.
type Tag struct {
	// Name is the full display name of the grouping.
	Name string `json:"name"`

	// ShortName is the stable short code used as the key in affinity maps.
	ShortName string `json:"short_name"`

	// PluralName is the display label for members of the grouping.
	PluralName string `json:"plural_name"`

	// HexColor is the rendering color used by downstream visualizers.
	HexColor string `json:"hex_color"`

	// Affinity maps every known short code to how favorably a member of
	// this grouping views a candidate carrying that code.
	Affinity map[string]float64 `json:"affinity"`
}

// Initial returns the first letter of the short code. Candidate names are
// built from it ("D-1", "R-V", ...).
func (t Tag) Initial() string {
	if t.ShortName == "" {
		return ""
	}
	return t.ShortName[:1]
}

// AffinityFor returns this grouping's affinity toward another tag,
// defaulting to zero for unknown codes.
func (t Tag) AffinityFor(other Tag) float64 {
	return t.Affinity[other.ShortName]
}

// Equal reports whether two tags are the same grouping by value.
func (t Tag) Equal(other Tag) bool {
	return t.Name == other.Name &&
		t.ShortName == other.ShortName &&
		t.PluralName == other.PluralName &&
		t.HexColor == other.HexColor &&
		maps.Equal(t.Affinity, other.Affinity)
}

// String returns the display name.
func (t Tag) String() string { return t.Name }

// partyAffinity is the baseline bonus a voter grants a candidate sharing
// their own tag. Allied minor factions receive three quarters of it and
// unaffiliated candidates half.
const partyAffinity = 1.5

// Built-in population tags: the two major parties, the unaffiliated bloc,
// and two minor ideological factions allied with one major party each.
var (
	Democrats = Tag{
		Name:       "Democratic",
		ShortName:  "Dem",
		PluralName: "Democrats",
		HexColor:   "#0000ff",
		Affinity: map[string]float64{
			"Dem": partyAffinity,
			"Prg": partyAffinity * 3 / 4,
			"Ind": partyAffinity / 2,
			"Rep": 0,
			"Nat": 0,
		},
	}

	Republicans = Tag{
		Name:       "Republican",
		ShortName:  "Rep",
		PluralName: "Republicans",
		HexColor:   "#ff0000",
		Affinity: map[string]float64{
			"Rep": partyAffinity,
			"Nat": partyAffinity * 3 / 4,
			"Ind": partyAffinity / 2,
			"Dem": 0,
			"Prg": 0,
		},
	}

	Independents = Tag{
		Name:       "Independent",
		ShortName:  "Ind",
		PluralName: "Independents",
		HexColor:   "#ff00ff",
		Affinity: map[string]float64{
			"Ind": partyAffinity / 2,
			"Dem": 0,
			"Rep": 0,
			"Prg": 0,
			"Nat": 0,
		},
	}

	Progressives = Tag{
		Name:       "Progressive",
		ShortName:  "Prg",
		PluralName: "Progressives",
		HexColor:   "#00c080",
		Affinity: map[string]float64{
			"Prg": partyAffinity,
			"Dem": partyAffinity * 3 / 4,
			"Ind": partyAffinity / 2,
			"Rep": 0,
			"Nat": 0,
		},
	}

	Nationalists = Tag{
		Name:       "Nationalist",
		ShortName:  "Nat",
		PluralName: "Nationalists",
		HexColor:   "#804000",
		Affinity: map[string]float64{
			"Nat": partyAffinity,
			"Rep": partyAffinity * 3 / 4,
			"Ind": partyAffinity / 2,
			"Dem": 0,
			"Prg": 0,
		},
	}
)

// MajorTags lists the two major parties in canonical order.
func MajorTags() [2]Tag { return [2]Tag{Democrats, Republicans} }

// TagByShortName resolves a built-in tag from its short code.
func TagByShortName(short string) (Tag, bool) {
	switch short {
	case "Dem":
		return Democrats, true
	case "Rep":
		return Republicans, true
	case "Ind":
		return Independents, true
	case "Prg":
		return Progressives, true
	case "Nat":
		return Nationalists, true
	default:
		return Tag{}, false
	}
}

// OppositionOf maps a major party to its opposing major party. Every other
// tag has no defined opposition and returns false.
func OppositionOf(tag Tag) (Tag, bool) {
	switch tag.ShortName {
	case Democrats.ShortName:
		return Republicans, true
	case Republicans.ShortName:
		return Democrats, true
	default:
		return Tag{}, false
	}
}
