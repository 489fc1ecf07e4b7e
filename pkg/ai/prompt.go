package ai

// The instruction enumerates the exact CVRecord fields so the model's JSON
// lines up with the decoder. Field order and wording are fixed: the prompt
// is a pure function of the page text.
const extractionInstructions = `Extract and summarize the following website content into a structured JSON CV with these fields:
- personal_information (object with name, email, phone, address, linkedin, github, website)
- professional_summary (string)
- education (array of objects with degree, institution, graduation_year, gpa)
- work_experience (array of objects with position, company, duration, responsibilities)
- skills (array of strings)
- projects (array of objects with name, description, technologies, link)
- certifications (array of strings)
- publications (array of strings)
- awards (array of strings)
- languages (array of strings)
- volunteer (array of strings)
- conferences (array of strings)
- memberships (array of strings)
- references (array of strings)

Return only valid JSON, no extra text or markdown formatting.
Content: `

// BuildExtractionPrompt embeds the fetched page text verbatim into the CV
// extraction instruction.
func BuildExtractionPrompt(pageText string) string {
	return extractionInstructions + pageText
}
