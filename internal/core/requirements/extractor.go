// Package requirements turns a job description into a normalized
// RequirementSet.
package requirements

import (
	"context"
	"fmt"
	"strings"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
)

// MinJobDescriptionLength is the shortest job description with enough
// signal to analyze. Anything shorter is an invalid query, not a
// best-effort guess.
const MinJobDescriptionLength = 50

// Extractor analyzes a job description. Implementations differ in backing
// (LLM vs keyword rules); the output contract is the same.
type Extractor interface {
	Extract(ctx context.Context, jobDescription string) (model.RequirementSet, error)
}

// ValidateQuery enforces the minimum-length rule shared by every
// implementation.
func ValidateQuery(jobDescription string) error {
	if len(strings.TrimSpace(jobDescription)) < MinJobDescriptionLength {
		return fmt.Errorf("%w: job description must be at least %d characters",
			model.ErrInvalidQuery, MinJobDescriptionLength)
	}
	return nil
}

// Sanitize normalizes both skill lists and makes them disjoint, must-have
// winning on overlap. A set with zero requirements is returned as-is: it is
// valid and degrades matching to pure similarity.
func Sanitize(reqs model.RequirementSet) model.RequirementSet {
	reqs.MustHave = normalize.Set(reqs.MustHave)

	must := make(map[string]struct{}, len(reqs.MustHave))
	for _, s := range reqs.MustHave {
		must[s] = struct{}{}
	}

	nice := normalize.Set(reqs.NiceToHave)
	reqs.NiceToHave = reqs.NiceToHave[:0]
	for _, s := range nice {
		if _, ok := must[s]; !ok {
			reqs.NiceToHave = append(reqs.NiceToHave, s)
		}
	}
	if len(reqs.NiceToHave) == 0 {
		reqs.NiceToHave = nil
	}

	return reqs
}
