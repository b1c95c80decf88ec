package requirements

// jobAnalysisPrompt extracts structured requirements from a job
// description. Skills come back lowercase so they line up with the
// normalized graph keys.
const jobAnalysisPrompt = `You are an HR assistant analyzing job descriptions to extract requirements.
Extract structured requirements that can be matched against candidate profiles.

Output MUST be valid JSON with this exact structure:
{
    "job_title": "Position title",
    "level": "Junior/Mid/Senior/Lead/Manager",
    "required_skills": {
        "must_have": ["essential skills - deal breakers if missing, lowercase"],
        "nice_to_have": ["preferred but not required skills, lowercase"]
    },
    "experience": {
        "min_years": 3
    }
}

Job Description:
%s

Extract and return ONLY the JSON object, no additional text.`
