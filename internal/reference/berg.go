package reference

// BergMaxScore is the maximum Berg Balance Scale total
const BergMaxScore = 56

// BergMaxItemScore is the maximum score of a single Berg item
const BergMaxItemScore = 4

// BergItems lists the 14 standard Berg Balance Scale items in administration order
var BergItems = []string{
	"Sitting to standing",
	"Standing unsupported",
	"Sitting unsupported",
	"Standing to sitting",
	"Transfers",
	"Standing with eyes closed",
	"Standing with feet together",
	"Reaching forward with outstretched arm",
	"Retrieving object from floor",
	"Turning to look behind",
	"Turning 360 degrees",
	"Placing alternate foot on stool",
	"Standing with one foot in front",
	"Standing on one foot",
}

// BergBand is one interpretation band of the Berg total score
type BergBand struct {
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	FallRisk   string `json:"fall_risk"`
	Ambulation string `json:"ambulation"`
}

// BergInterpretation is the interpretation of one Berg total score
type BergInterpretation struct {
	Score                   int    `json:"score"`
	FallRisk                string `json:"fall_risk"`
	Ambulation              string `json:"ambulation"`
	MinimalDetectableChange int    `json:"minimal_detectable_change"`
}

// BergBands returns the interpretation bands in ascending score order
func BergBands() []BergBand {
	return []BergBand{
		{Min: 0, Max: 20, FallRisk: "High fall risk", Ambulation: "Wheelchair bound"},
		{Min: 21, Max: 40, FallRisk: "Medium fall risk", Ambulation: "Walking with assistance"},
		{Min: 41, Max: 56, FallRisk: "Low fall risk", Ambulation: "Independent"},
	}
}

// BergMDC returns the minimal detectable change for a score
func BergMDC(score int) int {
	switch {
	case score < 35:
		return 7
	case score < 45:
		return 5
	default:
		return 4
	}
}

// InterpretBerg maps a total score onto its band. Scores outside 0-56 are not interpreted.
func InterpretBerg(score int) (BergInterpretation, bool) {
	for _, band := range BergBands() {
		if score >= band.Min && score <= band.Max {
			return BergInterpretation{
				Score:                   score,
				FallRisk:                band.FallRisk,
				Ambulation:              band.Ambulation,
				MinimalDetectableChange: BergMDC(score),
			}, true
		}
	}
	return BergInterpretation{}, false
}
