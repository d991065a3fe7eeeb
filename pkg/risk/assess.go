package risk

import (
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// Assessment is the result of scoring one candidate transaction.
//
// Reasons and Recommendations are never empty for a valid call.
// SafeAlternative is non-empty exactly when the label is medium or high.
type Assessment struct {
	Label           wallet.RiskLevel `json:"label"`
	Reasons         []string         `json:"reasons"`
	Recommendations []string         `json:"recommendations"`
	SafeAlternative string           `json:"safe_alternative,omitempty"`
}

// safeAlternative is the suggestion attached to medium and high assessments.
const safeAlternative = "Safer alternative: split the spend into separate transactions, one per source tag, " +
	"each paying a fresh unique address; route identity-linked coins through a coinjoin first."

// noIssues is the positive reason emitted when nothing triggered.
const noIssues = "no privacy issues detected across the selected inputs and outputs"

// defaultRecommendation is appended when no heuristic contributed one, so
// callers can always surface at least one actionable line.
const defaultRecommendation = "keep tagging incoming coins so future assessments stay accurate"

// Assess scores a candidate transaction with the default profile.
// See [Profile.Assess] for the contract.
func Assess(inputs []wallet.UTXO, outputAddresses []string) (Assessment, error) {
	return DefaultProfile().Assess(inputs, outputAddresses)
}

// Assess scores a candidate transaction built from inputs and paying
// outputAddresses.
//
// Inputs must be non-empty and well-formed; malformed records are rejected
// at this boundary so the scoring pass itself stays total. Duplicate output
// addresses are not an error: address reuse is a detected condition.
//
// The label is the maximum severity over all triggered heuristics and is
// never downgraded during a pass.
func (p Profile) Assess(inputs []wallet.UTXO, outputAddresses []string) (Assessment, error) {
	if len(inputs) == 0 {
		return Assessment{}, errors.New(errors.ErrCodeEmptyInputs, "assessment requires at least one input")
	}
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return Assessment{}, err
		}
	}
	for _, addr := range outputAddresses {
		if err := errors.ValidateAddress(addr); err != nil {
			return Assessment{}, err
		}
	}

	p = p.Normalize()
	return p.score(inputs, outputAddresses), nil
}

// score is the pure assessment pass. It assumes validated inputs and is
// total over them: no error paths, no I/O, no shared state.
func (p *Profile) score(inputs []wallet.UTXO, outputAddresses []string) Assessment {
	a := Assessment{Label: wallet.RiskLow}

	fired := false
	for _, check := range heuristics {
		for _, f := range check(p, inputs, outputAddresses) {
			fired = true
			a.Label = max(a.Label, f.Severity)
			a.Reasons = append(a.Reasons, f.Reason)
			if f.Recommendation != "" {
				a.Recommendations = append(a.Recommendations, f.Recommendation)
			}
		}
	}

	if !fired {
		a.Reasons = append(a.Reasons, noIssues)
	}
	if len(a.Recommendations) == 0 {
		a.Recommendations = append(a.Recommendations, defaultRecommendation)
	}
	if a.Label >= wallet.RiskMedium {
		a.SafeAlternative = safeAlternative
	}

	return a
}
