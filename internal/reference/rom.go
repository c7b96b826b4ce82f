// Package reference holds the static clinical lookup tables used by the report generators.
package reference

import "strings"

// normalROM is keyed by joint then movement, in degrees (AAOS norms)
var normalROM = map[string]map[string]float64{
	"shoulder": {
		"flexion":           180,
		"extension":         60,
		"abduction":         180,
		"adduction":         50,
		"internal_rotation": 70,
		"external_rotation": 90,
	},
	"elbow": {
		"flexion":    150,
		"extension":  0,
		"supination": 80,
		"pronation":  80,
	},
	"wrist": {
		"flexion":          80,
		"extension":        70,
		"radial_deviation": 20,
		"ulnar_deviation":  30,
	},
	"hip": {
		"flexion":           120,
		"extension":         30,
		"abduction":         45,
		"adduction":         30,
		"internal_rotation": 45,
		"external_rotation": 45,
	},
	"knee": {
		"flexion":   135,
		"extension": 0,
	},
	"ankle": {
		"dorsiflexion":   20,
		"plantarflexion": 50,
		"inversion":      35,
		"eversion":       15,
	},
	"cervical": {
		"flexion":         50,
		"extension":       60,
		"lateral_flexion": 45,
		"rotation":        80,
	},
	"lumbar": {
		"flexion":         60,
		"extension":       25,
		"lateral_flexion": 25,
		"rotation":        30,
	},
}

func normalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// NormalROM returns the expected active range in degrees for a joint and movement.
// Lookup is case-insensitive and treats spaces as underscores.
func NormalROM(joint, movement string) (float64, bool) {
	movements, ok := normalROM[normalizeKey(joint)]
	if !ok {
		return 0, false
	}
	degrees, ok := movements[normalizeKey(movement)]
	return degrees, ok
}

// Joints returns the joints covered by the ROM table
func Joints() []string {
	return []string{"shoulder", "elbow", "wrist", "hip", "knee", "ankle", "cervical", "lumbar"}
}
