package prompts

const visionOCRSpec = `Respond with a JSON object matching this exact structure:

{
  "text": "<full page transcription>",
  "confidence": 0.95
}

Field constraints:
- text: Complete transcription of the page, preserving line breaks between
  paragraphs. Empty string if the page contains no text.
- confidence: Number between 0.0 and 1.0 reflecting transcription certainty.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Transcribe exactly one page per response
- Never invent text for illegible regions; omit them and lower confidence`

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "document_type": "privacy_policy",
  "complexity": "medium",
  "urgency": "normal",
  "required_sections": ["<section title>"],
  "estimated_pages": 5,
  "rationale": "<explanation>"
}

Field constraints:
- document_type: One of privacy_policy, consent_form, contract_clause,
  committee_minutes, code_of_conduct, data_processing_agreement,
  breach_notification, impact_assessment.
- complexity: One of low, medium, high.
- urgency: One of normal, high, critical.
- required_sections: Section titles in Portuguese the document must contain.
- estimated_pages: Expected length of the finished document.
- rationale: Brief justification for the classification.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- When source document text is provided, classify from its content;
  otherwise classify from the requested type and activity description`

const researchSpec = `Respond with a JSON object matching this exact structure:

{
  "applicable_laws": ["LGPD - Lei nº 13.709/2018"],
  "legal_basis": [
    {"article": "Art. 7º, I", "description": "<why it applies>"}
  ],
  "regulatory_requirements": ["<obligation>"],
  "compliance_gaps": ["<gap>"]
}

Field constraints:
- applicable_laws: Statutes and resolutions governing the activity.
- legal_basis: LGPD articles grounding the processing, with precise
  article citations.
- regulatory_requirements: Concrete obligations the document must address.
- compliance_gaps: Obligations the described activity does not visibly
  satisfy. Empty array when none are apparent.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Cite articles in Brazilian legal citation style`

const legalExpertSpec = `Respond with a JSON object matching this exact structure:

{
  "risk_level": "medium",
  "notes": ["<review note>"],
  "mandatory_clauses": ["<clause the document must contain>"]
}

Field constraints:
- risk_level: One of low, medium, high, critical.
- notes: Observations the drafter must account for.
- mandatory_clauses: Clause descriptions in Portuguese that must appear in
  the generated document.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Every mandatory clause must trace to a cited legal basis or requirement`

const structureSpec = `Respond with a JSON object matching this exact structure:

{
  "title": "<document title in Portuguese>",
  "sections": [
    {"title": "<section title>", "description": "<what it covers>", "required": true, "order": 1}
  ]
}

Field constraints:
- title: Formal document title naming the company.
- sections: Ordered outline. order values start at 1 and increase without
  gaps. required marks sections demanded by the classification or by law.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Every required section from the classification must appear exactly once`

const generateSpec = `Respond with a JSON object matching this exact structure:

{
  "content": "<full document text in Portuguese>",
  "sections": {"<section title>": "<section text>"},
  "clauses": ["<mandatory clause text included in the document>"]
}

Field constraints:
- content: The complete document, all sections concatenated in outline
  order with section headings.
- sections: Map from section title to that section's text.
- clauses: The operative text written for each mandatory clause.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- content must contain every section present in sections
- Never include placeholders or editorial notes`

var specs = map[Stage]string{
	StageVisionOCR:   visionOCRSpec,
	StageClassify:    classifySpec,
	StageResearch:    researchSpec,
	StageLegalExpert: legalExpertSpec,
	StageStructure:   structureSpec,
	StageGenerate:    generateSpec,
}

// Spec returns the output specification for a stage. Specifications define
// the expected JSON structure and behavioral constraints.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
