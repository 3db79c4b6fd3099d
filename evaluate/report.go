package evaluate

import (
	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/metrics/bent"
	"github.com/themarkrogers/ai-s-box/metrics/ddt"
	"github.com/themarkrogers/ai-s-box/metrics/domain"
	"github.com/themarkrogers/ai-s-box/metrics/normalize"
	"github.com/themarkrogers/ai-s-box/metrics/walsh"
	"github.com/themarkrogers/ai-s-box/utils"
)

// Inputs are the stage results a Report is assembled from. DDT and Walsh are nil
// when the stage did not run.
type Inputs struct {
	Params      sboxeval.Params
	Normalized  normalize.Result
	Consistency domain.Consistency
	DDT         *ddt.Table
	Walsh       *walsh.Spectrum
}

// Synthesize assembles a Report. It computes nothing beyond the bent
// classification and the fingerprint.
func Synthesize(in Inputs) sboxeval.Report {
	r := sboxeval.Report{
		InputBits:          in.Params.InputBits,
		OutputBits:         in.Params.OutputBits,
		Indexing:           in.Params.Indexing,
		DomainSize:         in.Consistency.DomainSize,
		ExpectedDomainSize: in.Consistency.ExpectedDomainSize,
		DomainConsistent:   in.Consistency.DomainConsistent,
		RangeConsistent:    in.Consistency.RangeConsistent,
		MaxOutputValue:     in.Consistency.MaxOutputValue,
		DistinctSymbols:    in.Normalized.DistinctSymbols,
		ClaimedSymbols:     in.Params.Symbols,
		IsPermutation:      in.Consistency.Bijective,
		Fingerprint:        utils.Fingerprint(in.Normalized.SBox),
	}

	if in.DDT != nil {
		du := in.DDT.DifferentialUniformity()
		r.MaxDDTEntry = &du
	}
	if in.Walsh != nil {
		raw := in.Walsh.MaxAbs()
		corr := in.Walsh.Correlation()
		nl := in.Walsh.Nonlinearity()
		r.MaxWalshMagnitude = &raw
		r.MaxLinearCorrelation = &corr
		r.Nonlinearity = &nl
	}
	r.IsBent = bent.ClassifyOptional(r.InputBits, r.OutputBits, r.MaxLinearCorrelation)
	return r
}
