package driver

const (
	SaveCandidateNodeQuery = `
		MERGE (c:Candidate {uuid: $uuid})
		SET c.name = $name,
			c.summary = $summary,
			c.extracted_at = $extracted_at,
			c.summary_embedding = $summary_embedding
		RETURN c.uuid AS uuid
	`

	SaveSkillEdgeQuery = `
		MATCH (c:Candidate {uuid: $candidate_uuid})
		MERGE (s:Skill {key: $key})
		ON CREATE SET s.name = $name, s.created_at = $created_at
		MERGE (c)-[e:HAS_SKILL {source: $source}]->(s)
		SET e.created_at = $created_at
		RETURN s.key AS key
	`

	SaveCompanyEdgeQuery = `
		MATCH (c:Candidate {uuid: $candidate_uuid})
		MERGE (co:Company {key: $key})
		ON CREATE SET co.name = $name, co.created_at = $created_at
		MERGE (c)-[e:WORKED_AT]->(co)
		SET e.role = $role,
			e.duration = $duration,
			e.position = $position
		RETURN co.key AS key
	`

	SaveRoleEdgeQuery = `
		MATCH (c:Candidate {uuid: $candidate_uuid})
		MERGE (r:Role {key: $key})
		ON CREATE SET r.name = $name, r.created_at = $created_at
		MERGE (c)-[e:HELD_ROLE]->(r)
		SET e.position = $position
		RETURN r.key AS key
	`

	SaveEvaluationNodeQuery = `
		MATCH (c:Candidate {uuid: $candidate_uuid})
		MERGE (ev:Evaluation {uuid: $uuid})
		SET ev.recommendation = $recommendation,
			ev.technical_score = $technical_score,
			ev.weighted_score = $weighted_score,
			ev.created_at = $created_at
		MERGE (c)-[e:EVALUATED {uuid: $uuid}]->(ev)
		SET e.created_at = $created_at
		RETURN ev.uuid AS uuid
	`

	// Entity path of hybrid retrieval: candidates linked to any of the
	// normalized skill/company/role terms.
	CandidatesByTermsQuery = `
		MATCH (c:Candidate)-[]->(n)
		WHERE (n:Skill OR n:Company OR n:Role) AND n.key IN $terms
		RETURN DISTINCT c.uuid AS uuid
		LIMIT $limit
	`

	// Similarity path of hybrid retrieval over candidate summary embeddings.
	CandidatesBySimilarityQuery = `
		CALL vector_search.search("candidate_summaries", $limit, $embedding)
		YIELD node, similarity
		RETURN node.uuid AS uuid, similarity
		ORDER BY similarity DESC
	`

	AllSkillsQuery = `
		MATCH (:Candidate)-[:HAS_SKILL]->(s:Skill)
		RETURN DISTINCT s.name AS name
		ORDER BY name
	`

	DeleteCandidateQuery = `
		MATCH (c:Candidate {uuid: $uuid})
		OPTIONAL MATCH (c)-[:EVALUATED]->(ev:Evaluation)
		DETACH DELETE c, ev
	`
)
