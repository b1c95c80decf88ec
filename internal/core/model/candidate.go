package model

// PersonalInfo holds contact details pulled from a CV. Optional fields stay
// empty strings, never null.
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// ExperienceEntry is one position from the CV. Entries are ordered most
// recent first; index 0 is the latest position. Duration is free text and
// may be malformed.
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear string `json:"graduation_year"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
	Expiry string `json:"expiry"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Candidate is the structured record extracted from a CV. Immutable after
// extraction except for appended evaluations and appended skills.
type Candidate struct {
	ID             string            `json:"id"`
	SourceFile     string            `json:"source_file,omitempty"`
	ExtractedAt    string            `json:"extracted_at"`
	PersonalInfo   PersonalInfo      `json:"personal_info"`
	Summary        string            `json:"summary"`
	Skills         SkillSet          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []Education       `json:"education"`
	Certifications []Certification   `json:"certifications"`
	Projects       []Project         `json:"projects"`
}

// AllSkills returns technical and soft skills as a single list, in CV order.
func (c *Candidate) AllSkills() []string {
	out := make([]string, 0, len(c.Skills.Technical)+len(c.Skills.Soft))
	out = append(out, c.Skills.Technical...)
	out = append(out, c.Skills.Soft...)
	return out
}

// LatestExperience returns the most recent position, relying on the
// extraction-time ordering invariant (first entry = most recent).
func (c *Candidate) LatestExperience() (ExperienceEntry, bool) {
	if len(c.Experience) == 0 {
		return ExperienceEntry{}, false
	}
	return c.Experience[0], true
}
