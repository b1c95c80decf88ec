package requirements

import (
	"context"
	"regexp"
	"strings"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
)

// vocabulary is the fixed set of technologies the rule-based extractor
// spots. Entries are matched case-insensitively against the raw text; the
// normalizer collapses variants afterwards.
var vocabulary = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c#", "csharp", "c++", "ruby", "php", "kotlin", "swift", "scala",
	"react", "angular", "vue", "node.js", "nodejs", "fastapi", "django",
	"flask", "spring", "rails", ".net", "dotnet",
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"kafka", "rabbitmq", "docker", "kubernetes", "k8s", "terraform",
	"aws", "azure", "gcp", "linux", "git", "ci/cd", "graphql", "grpc",
	"machine learning", "deep learning", "llm", "rag", "nlp",
}

var nicePattern = regexp.MustCompile(`(?is)(nice to have|preferred|plus|bonus|desirable)[:\s]`)

var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*years?`)

var levelPatterns = []struct {
	pattern *regexp.Regexp
	level   string
}{
	{regexp.MustCompile(`(?i)\b(principal|staff)\b`), "Lead"},
	{regexp.MustCompile(`(?i)\blead\b`), "Lead"},
	{regexp.MustCompile(`(?i)\bsenior\b`), "Senior"},
	{regexp.MustCompile(`(?i)\bjunior\b`), "Junior"},
	{regexp.MustCompile(`(?i)\b(mid|middle)\b`), "Mid"},
}

// KeywordExtractor is the rule-based fallback used when no LLM is
// configured and as the degradation target when LLM analysis fails. It
// splits the description at the first "nice to have" cue: vocabulary hits
// before the cue are must-haves, hits after are nice-to-haves.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func (e *KeywordExtractor) Extract(_ context.Context, jobDescription string) (model.RequirementSet, error) {
	if err := ValidateQuery(jobDescription); err != nil {
		return model.RequirementSet{}, err
	}

	mustText := jobDescription
	niceText := ""
	if loc := nicePattern.FindStringIndex(jobDescription); loc != nil {
		mustText = jobDescription[:loc[0]]
		niceText = jobDescription[loc[1]:]
	}

	reqs := model.RequirementSet{
		MustHave:   spot(mustText),
		NiceToHave: spot(niceText),
		Level:      spotLevel(jobDescription),
		MinYears:   spotYears(jobDescription),
	}

	return Sanitize(reqs), nil
}

func spot(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var found []string
	for _, term := range vocabulary {
		if containsTerm(lower, term) {
			found = append(found, term)
		}
	}
	return normalize.Set(found)
}

// containsTerm does a word-boundary-aware substring check so "go" does not
// match inside "mongodb".
func containsTerm(lower, term string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], term)
		if i == -1 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func spotYears(text string) int {
	m := yearsPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	years := 0
	for _, c := range m[1] {
		years = years*10 + int(c-'0')
	}
	return years
}

func spotLevel(text string) string {
	for _, lp := range levelPatterns {
		if lp.pattern.MatchString(text) {
			return lp.level
		}
	}
	return ""
}
