package ai

// DurationBand classifies how appropriate a response length is. The score
// feeds both the behavioral prompt and the heuristic fallback scorer.
type DurationBand struct {
	Score int
	Note  string
}

// BandFor maps a duration in seconds to its appropriateness band:
// d<30 -> 4, 30<=d<60 -> 6, 60<=d<=180 -> 9, 180<d<=240 -> 7, d>240 -> 5.
func BandFor(durationSeconds int) DurationBand {
	switch {
	case durationSeconds < 30:
		return DurationBand{Score: 4, Note: "Too brief"}
	case durationSeconds < 60:
		return DurationBand{Score: 6, Note: "Brief but acceptable"}
	case durationSeconds <= 180:
		return DurationBand{Score: 9, Note: "Good duration"}
	case durationSeconds <= 240:
		return DurationBand{Score: 7, Note: "Slightly long"}
	default:
		return DurationBand{Score: 5, Note: "Too long, be more concise"}
	}
}

// AppropriatenessLabel is the coarser phrasing embedded into the behavioral
// prompt itself.
func AppropriatenessLabel(durationSeconds int) string {
	switch {
	case durationSeconds < 20:
		return "Too short - provide more detail"
	case durationSeconds < 60:
		return "Brief but acceptable"
	case durationSeconds <= 180:
		return "Good duration"
	case durationSeconds <= 300:
		return "Acceptable but slightly long"
	default:
		return "Too long - be more concise"
	}
}
