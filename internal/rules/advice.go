package rules

import "github.com/aquamind/aquamind/internal/types"

// Advice is the general guidance bundle for a verdict level, used by the
// interactive shell and included in companion-app payloads.
type Advice struct {
	Color       string
	Short       string
	Long        string
	Precautions []string
}

// AdviceFor returns the guidance bundle for a verdict. Unknown verdicts are
// treated as ERROR.
func AdviceFor(v types.Verdict) Advice {
	switch v {
	case types.VerdictSafe:
		return Advice{
			Color: "green",
			Short: "Drinkable",
			Long:  "Water quality is within safe limits. You can consume this water.",
			Precautions: []string{
				"Store in clean containers",
				"Keep away from direct sunlight",
			},
		}
	case types.VerdictCaution:
		return Advice{
			Color: "yellow",
			Short: "Caution",
			Long:  "Water quality is marginal. Treatment recommended before drinking.",
			Precautions: []string{
				"Use water filter if available",
				"Boiling is recommended",
				"Not ideal for infants or elderly",
			},
		}
	case types.VerdictUnsafe:
		return Advice{
			Color: "red",
			Short: "Unsafe",
			Long:  "Water is not fit for drinking. Boil before use.",
			Precautions: []string{
				"DO NOT drink without treatment",
				"Boil for at least 10 minutes",
				"Use RO/UV purifier if available",
				"Consider alternative water source",
			},
		}
	}
	return Advice{
		Color: "gray",
		Short: "Error",
		Long:  "Sensor error detected. Reading is not reliable.",
		Precautions: []string{
			"Clean sensor probe",
			"Check connections",
			"Wait 30 seconds and retry",
			"Do not trust this reading",
		},
	}
}
