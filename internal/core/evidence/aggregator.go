// Package evidence assembles everything the scorer needs to know about a
// candidate for one query.
package evidence

import (
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
)

// Collect builds the EvidenceBundle for a candidate against a requirement
// set: requirement skills intersected with the candidate's claims (tagged by
// source), the most recent experience entry, and every evaluation on
// record. Candidates with no evaluations or no experience produce empty
// collections, never nil surprises downstream.
func Collect(candidate *model.Candidate, evaluations []model.Evaluation, reqs model.RequirementSet) model.EvidenceBundle {
	bundle := model.EvidenceBundle{
		CandidateID: candidate.ID,
		Name:        candidate.PersonalInfo.Name,
		Claims:      []model.SkillClaim{},
		Evaluations: evaluations,
	}
	if bundle.Evaluations == nil {
		bundle.Evaluations = []model.Evaluation{}
	}

	wanted := make(map[string]struct{}, len(reqs.MustHave)+len(reqs.NiceToHave))
	for _, s := range reqs.Terms() {
		wanted[normalize.Key(s)] = struct{}{}
	}

	// CV-sourced claims: candidate skills intersected with the requirement
	// terms. One claim per (skill, source) regardless of how many CV
	// sections mention it.
	cvSeen := make(map[string]struct{})
	for _, s := range candidate.AllSkills() {
		key := normalize.Key(s)
		if key == "" {
			continue
		}
		if _, ok := wanted[key]; !ok {
			continue
		}
		if _, ok := cvSeen[key]; ok {
			continue
		}
		cvSeen[key] = struct{}{}
		bundle.Claims = append(bundle.Claims, model.SkillClaim{Skill: key, Source: model.SourceCV})
	}

	// Evaluation-sourced claims: technical strengths the interviewer
	// actually observed. Each evaluation contributes at most one claim per
	// skill; separate evaluations stack.
	for _, ev := range evaluations {
		evalSeen := make(map[string]struct{})
		for _, s := range ev.Technical.Strengths {
			key := normalize.Key(s)
			if key == "" {
				continue
			}
			if _, ok := wanted[key]; !ok {
				continue
			}
			if _, ok := evalSeen[key]; ok {
				continue
			}
			evalSeen[key] = struct{}{}
			bundle.Claims = append(bundle.Claims, model.SkillClaim{Skill: key, Source: model.SourceEvaluation})
		}
	}

	if latest, ok := candidate.LatestExperience(); ok {
		bundle.LatestExperience = latest
		bundle.HasExperience = true
	}

	return bundle
}
