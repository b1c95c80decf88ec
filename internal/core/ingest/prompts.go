package ingest

// cvExtractionPrompt turns CV markdown into the structured candidate
// record. Skills come back lowercase so they line up with the normalized
// graph keys; proper names keep their capitalization. Experience entries
// are ordered most recent first, which downstream code relies on.
const cvExtractionPrompt = `You are an HR assistant specialized in extracting structured information from resumes/CVs.
Extract the following information from the CV content provided. Support both Vietnamese and English.

IMPORTANT NORMALIZATION RULES:
1. ALL SKILLS must be in LOWERCASE (e.g., "python", ".net core", "react", "typescript").
2. Keep proper names (candidate names, company names, institutions) with normal capitalization.
3. Normalize common variations: ".NET Core" -> "dotnet core", "C#" -> "csharp", "Node.JS" -> "nodejs".
4. List experience entries in reverse chronological order: most recent position FIRST.

Output MUST be valid JSON with this exact structure:
{
    "personal_info": {
        "name": "Full name (capitalize properly)",
        "email": "Email address or empty string",
        "phone": "Phone number or empty string",
        "location": "City/Country or empty string",
        "linkedin": "LinkedIn URL or empty string",
        "github": "GitHub URL or empty string"
    },
    "summary": "Brief professional summary if available",
    "skills": {
        "technical": ["lowercase skill1", "lowercase skill2"],
        "soft": ["lowercase soft skill1"],
        "languages": ["spoken languages with proficiency"]
    },
    "experience": [
        {
            "company": "Company Name",
            "role": "Job title",
            "duration": "Start - End dates",
            "responsibilities": ["key responsibilities"],
            "achievements": ["quantifiable achievements if any"]
        }
    ],
    "education": [
        {
            "institution": "School/University Name",
            "degree": "Degree type",
            "field": "Field of study",
            "graduation_year": "Year or expected year"
        }
    ],
    "certifications": [
        {"name": "Certification name", "issuer": "Issuing organization", "year": "Year obtained", "expiry": "Expiry date if applicable"}
    ],
    "projects": [
        {"name": "Project name", "description": "Brief description", "technologies": ["lowercase tech1"]}
    ]
}

CV Content:
%s

Extract and return ONLY the JSON object, no additional text.`

// evaluationPrompt parses free-text interview notes into a structured
// assessment. The parsed evaluation carries 2.5x the weight of CV data in
// matching.
const evaluationPrompt = `You are an HR assistant processing senior interview evaluations.
Parse the interview feedback and extract structured assessment data.

Output MUST be valid JSON with this exact structure:
{
    "interviewer": {
        "name": "Interviewer name if provided",
        "role": "Interviewer role/position"
    },
    "technical_assessment": {
        "score": 7,
        "strengths": ["technical strengths observed, lowercase skill names"],
        "weaknesses": ["areas for improvement"],
        "notes": "Additional technical notes"
    },
    "soft_skills_assessment": {
        "communication": 8,
        "teamwork": 7,
        "problem_solving": 8,
        "leadership": 6,
        "adaptability": 7,
        "notes": "Soft skills observations"
    },
    "cultural_fit": {
        "score": 8,
        "notes": "Cultural fit assessment"
    },
    "overall_recommendation": "strong_hire",
    "recommended_level": "Senior",
    "key_concerns": ["any red flags or concerns"]
}

All scores use a 1-10 scale; omit or use 0 for dimensions that were not assessed.
"overall_recommendation" MUST be one of: strong_hire, hire, weak_hire, no_hire.

Interview Feedback:
%s

Extract and return ONLY the JSON object, no additional text.`
