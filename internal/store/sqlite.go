// Package store persists candidate and evaluation records in sqlite. The
// graph holds the retrieval index; this is the system of record for the
// full documents.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PutCandidate stores the full record plus its normalized skill keys for
// listing and skill lookups.
func (s *Store) PutCandidate(c *model.Candidate) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal candidate: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO candidates (id, name, email, document, extracted_at) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.PersonalInfo.Name, c.PersonalInfo.Email, string(doc), c.ExtractedAt,
	)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM candidate_skills WHERE candidate_id = ?", c.ID); err != nil {
		return fmt.Errorf("reset candidate skills: %w", err)
	}
	for _, skill := range c.AllSkills() {
		key := normalize.Key(skill)
		if key == "" {
			continue
		}
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO candidate_skills (candidate_id, skill) VALUES (?, ?)",
			c.ID, key,
		)
		if err != nil {
			return fmt.Errorf("insert candidate skill: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetCandidate(id string) (*model.Candidate, error) {
	var doc string
	err := s.db.QueryRow("SELECT document FROM candidates WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: candidate %s", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}

	var c model.Candidate
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, fmt.Errorf("unmarshal candidate: %w", err)
	}
	return &c, nil
}

func (s *Store) ListCandidates() ([]model.Candidate, error) {
	rows, err := s.db.Query("SELECT document FROM candidates ORDER BY extracted_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []model.Candidate
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		var c model.Candidate
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return nil, fmt.Errorf("unmarshal candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AppendEvaluation records a new evaluation. Rows are never updated; a
// correction is a new evaluation with a later timestamp.
func (s *Store) AppendEvaluation(e *model.Evaluation) error {
	if _, err := s.GetCandidate(e.CandidateID); err != nil {
		return err
	}

	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO evaluations (id, candidate_id, recommendation, weighted_score, document, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.CandidateID, string(e.Recommendation), e.WeightedScore(), string(doc), e.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

// ListEvaluations returns all evaluations for a candidate, oldest first.
func (s *Store) ListEvaluations(candidateID string) ([]model.Evaluation, error) {
	rows, err := s.db.Query(
		"SELECT document FROM evaluations WHERE candidate_id = ? ORDER BY created_at, id",
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	out := []model.Evaluation{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		var e model.Evaluation
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			return nil, fmt.Errorf("unmarshal evaluation: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EvaluationCounts returns the number of evaluations per candidate in one
// query; candidates without evaluations are absent from the map.
func (s *Store) EvaluationCounts() (map[string]int, error) {
	rows, err := s.db.Query("SELECT candidate_id, COUNT(1) FROM evaluations GROUP BY candidate_id")
	if err != nil {
		return nil, fmt.Errorf("count evaluations: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan evaluation count: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

// DeleteCandidate removes the record; skills and evaluations go with it
// through the schema's cascade.
func (s *Store) DeleteCandidate(id string) error {
	res, err := s.db.Exec("DELETE FROM candidates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: candidate %s", model.ErrNotFound, id)
	}
	return nil
}

// AllSkills returns the distinct normalized skills across all candidates.
func (s *Store) AllSkills() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT skill FROM candidate_skills ORDER BY skill")
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var skill string
		if err := rows.Scan(&skill); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		out = append(out, skill)
	}
	return out, rows.Err()
}
