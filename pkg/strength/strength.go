// Package strength scores password guessability resistance on a 0-100 scale
// and maps scores to qualitative bands for display.
package strength

const (
	maxLengthPoints = 40
	varietyPoints   = 15
	maxScore        = 100
)

// Score rates a password from 0 (weak) to 100 (strong).
//
// The algorithm is fixed for compatibility with existing checkup data:
// up to 40 points for length (4 per byte), plus 15 points for each character
// class present (uppercase, lowercase, digit, anything else).
func Score(password string) int {
	if password == "" {
		return 0
	}

	score := len(password) * 4
	if score > maxLengthPoints {
		score = maxLengthPoints
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for i := 0; i < len(password); i++ {
		switch c := password[i]; {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if hasUpper {
		score += varietyPoints
	}
	if hasLower {
		score += varietyPoints
	}
	if hasDigit {
		score += varietyPoints
	}
	if hasSymbol {
		score += varietyPoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Band is a qualitative strength rating with a UI color token.
type Band struct {
	Label string
	Color string
}

// Band bands, ordered strongest first. Boundaries are inclusive on the
// lower bound.
var (
	BandStrong   = Band{Label: "Strong", Color: "green"}
	BandGood     = Band{Label: "Good", Color: "blue"}
	BandFair     = Band{Label: "Fair", Color: "yellow"}
	BandWeak     = Band{Label: "Weak", Color: "orange"}
	BandVeryWeak = Band{Label: "Very Weak", Color: "red"}
)

// ForScore maps a score to its display band.
func ForScore(score int) Band {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	case score >= 20:
		return BandWeak
	default:
		return BandVeryWeak
	}
}
