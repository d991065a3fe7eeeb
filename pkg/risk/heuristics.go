package risk

import (
	"fmt"
	"strings"
	"time"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// Finding is the result of one triggered heuristic: an escalation floor for
// the overall label plus human-readable context. A severity of RiskLow marks
// an informational finding that contributes a reason without escalating.
type Finding struct {
	Severity       wallet.RiskLevel
	Reason         string
	Recommendation string // optional
}

// heuristic inspects a candidate transaction and returns zero or more
// findings. Heuristics never mutate their inputs and never downgrade: the
// assessment folds severities with max.
type heuristic func(p *Profile, inputs []wallet.UTXO, outputAddresses []string) []Finding

// heuristics are applied in a fixed order so reasons read consistently, but
// the monotonic fold makes the final label order-independent.
var heuristics = []heuristic{
	checkAddressReuse,
	checkTagDiversity,
	checkInheritedRisk,
	checkAmountDiversity,
	checkTemporalSpan,
	checkSingleInput,
}

// checkAddressReuse flags duplicate destination addresses.
func checkAddressReuse(_ *Profile, _ []wallet.UTXO, outputAddresses []string) []Finding {
	seen := make(map[string]bool, len(outputAddresses))
	for _, addr := range outputAddresses {
		if seen[addr] {
			return []Finding{{
				Severity:       wallet.RiskHigh,
				Reason:         "address reuse detected: the same destination address appears more than once",
				Recommendation: "use a unique address for every transaction output",
			}}
		}
		seen[addr] = true
	}
	return nil
}

// checkTagDiversity flags inputs drawn from multiple sources, escalating to
// high when identity-linked (KYC) and personal coins are combined in one
// transaction.
func checkTagDiversity(p *Profile, inputs []wallet.UTXO, _ []string) []Finding {
	tags := wallet.TagUnion(inputs)
	if len(tags) <= 1 {
		return nil
	}

	findings := []Finding{{
		Severity:       wallet.RiskMedium,
		Reason:         fmt.Sprintf("inputs mix %d different source tags (%s)", len(tags), strings.Join(tags, ", ")),
		Recommendation: "spend coins from one source per transaction to avoid linking them on-chain",
	}}

	var hasKYC, hasPersonal bool
	for _, t := range tags {
		if p.isKYCTag(t) {
			hasKYC = true
		}
		if p.isPersonalTag(t) {
			hasPersonal = true
		}
	}
	if hasKYC && hasPersonal {
		findings = append(findings, Finding{
			Severity:       wallet.RiskHigh,
			Reason:         "KYC-sourced and personal coins are combined, linking your identity to personal activity",
			Recommendation: "keep exchange-sourced coins strictly separated from personal or gifted coins",
		})
	}

	return findings
}

// checkInheritedRisk flags inputs that already carry a high risk label.
func checkInheritedRisk(_ *Profile, inputs []wallet.UTXO, _ []string) []Finding {
	for i := range inputs {
		if inputs[i].Risk == wallet.RiskHigh {
			return []Finding{{
				Severity:       wallet.RiskHigh,
				Reason:         fmt.Sprintf("input %s already carries high privacy risk; spending it propagates that exposure", inputs[i].OutPoint()),
				Recommendation: "run high-risk coins through a privacy-enhancing technique such as coinjoin before spending",
			}}
		}
	}
	return nil
}

// checkAmountDiversity flags repeated input amounts, which fingerprint the
// wallet across transactions.
func checkAmountDiversity(p *Profile, inputs []wallet.UTXO, _ []string) []Finding {
	if len(inputs) < 2 {
		return nil
	}

	distinct := make(map[int64]bool, len(inputs))
	for i := range inputs {
		distinct[inputs[i].Amount] = true
	}

	if float64(len(distinct)) < float64(len(inputs))*p.AmountDiversityRatio {
		return []Finding{{
			Severity:       wallet.RiskMedium,
			Reason:         fmt.Sprintf("only %d distinct amounts across %d inputs; repeated amounts fingerprint the wallet", len(distinct), len(inputs)),
			Recommendation: "avoid spending many identically-sized outputs together",
		}}
	}
	return nil
}

// checkTemporalSpan inspects the age span of the inputs. A short span is
// informational only; a long span escalates because it reveals long-term
// holding patterns.
func checkTemporalSpan(p *Profile, inputs []wallet.UTXO, _ []string) []Finding {
	oldest, newest := inputs[0].CreatedAt, inputs[0].CreatedAt
	for i := range inputs {
		if inputs[i].CreatedAt.Before(oldest) {
			oldest = inputs[i].CreatedAt
		}
		if inputs[i].CreatedAt.After(newest) {
			newest = inputs[i].CreatedAt
		}
	}
	span := newest.Sub(oldest)

	switch {
	case span > p.longHoldWindow():
		return []Finding{{
			Severity:       wallet.RiskMedium,
			Reason:         fmt.Sprintf("inputs span %d days, revealing long-term holding patterns", int(span/(24*time.Hour))),
			Recommendation: "avoid combining very old coins with recent ones in a single spend",
		}}
	case span < p.recentWindow():
		return []Finding{{
			Severity: wallet.RiskLow,
			Reason:   "all inputs were created within a short window; their common origin may already be visible",
		}}
	}
	return nil
}

// checkSingleInput flags single-input transactions, which have a reduced
// anonymity set.
func checkSingleInput(_ *Profile, inputs []wallet.UTXO, _ []string) []Finding {
	if len(inputs) != 1 {
		return nil
	}
	return []Finding{{
		Severity:       wallet.RiskMedium,
		Reason:         "single-input transaction: the spend is trivially attributable to one prior output",
		Recommendation: "include additional inputs to increase the anonymity set",
	}}
}
