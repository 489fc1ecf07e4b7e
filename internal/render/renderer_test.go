package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-generator/internal/model"
)

type stubEngine struct {
	html string
	out  []byte
	err  error
}

func (s *stubEngine) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	s.html = html
	return s.out, s.err
}

func kinds(doc Document) []BlockKind {
	out := make([]BlockKind, len(doc.Blocks))
	for i, b := range doc.Blocks {
		out[i] = b.Kind
	}
	return out
}

func headings(doc Document) []string {
	var out []string
	for _, b := range doc.Blocks {
		if b.Kind == BlockHeading {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestBuildDocumentEmptyRecord(t *testing.T) {
	doc := BuildDocument(&model.CVRecord{}, Options{})

	assert.Equal(t, "CV", doc.Title)
	assert.Equal(t, []BlockKind{BlockTitle, BlockSpacer}, kinds(doc))
	assert.Empty(t, headings(doc))
}

func TestBuildDocumentFullRecord(t *testing.T) {
	cv, perr := model.ParseCVRecord([]byte(`{
		"personal_information": {
			"name": "Ada Lovelace",
			"email": "ada@analytical.engine",
			"phone": "+44 20 0000 0000",
			"linkedin": "linkedin.com/in/ada"
		},
		"professional_summary": "Mathematician and writer.",
		"skills": ["math", "programming"],
		"work_experience": [{
			"position": "Analyst",
			"company": "Analytical Engines Ltd",
			"duration": "1842-1843",
			"responsibilities": ["Wrote the first published algorithm", "Translated Menabrea's memoir"]
		}],
		"education": [{
			"degree": "Private tutelage",
			"institution": "London",
			"graduation_year": 1835
		}],
		"languages": ["English", "French"],
		"certifications": ["Fellow, Analytical Society"]
	}`))
	require.Nil(t, perr)

	doc := BuildDocument(cv, Options{})
	assert.Equal(t, "Ada Lovelace", doc.Title)
	assert.Equal(t, BlockTitle, doc.Blocks[0].Kind)
	assert.Equal(t, "Ada Lovelace", doc.Blocks[0].Text)

	// fixed section order, empty sections absent
	assert.Equal(t,
		[]string{"PROFESSIONAL SUMMARY", "SKILLS", "WORK EXPERIENCE", "EDUCATION", "CERTIFICATIONS", "LANGUAGES"},
		headings(doc))

	var byText = map[string]Block{}
	for _, b := range doc.Blocks {
		byText[b.Text] = b
	}

	assert.Equal(t, BlockContact, byText["ada@analytical.engine | +44 20 0000 0000"].Kind)
	assert.Equal(t, BlockContact, byText["LinkedIn: linkedin.com/in/ada"].Kind)
	assert.Equal(t, BlockParagraph, byText["math, programming"].Kind)
	assert.Equal(t, BlockLabel, byText["Analytical Engines Ltd — 1842-1843"].Kind)
	assert.Equal(t, BlockBullet, byText["Wrote the first published algorithm"].Kind)
	assert.Equal(t, BlockLabel, byText["London | 1835"].Kind)
	// languages render inline, not as bullets
	assert.Equal(t, BlockParagraph, byText["English, French"].Kind)
	assert.Equal(t, BlockBullet, byText["Fellow, Analytical Society"].Kind)
}

func TestBuildDocumentSkillsSeparator(t *testing.T) {
	cv := &model.CVRecord{Skills: []string{"go", "sql"}}
	doc := BuildDocument(cv, Options{SkillsSeparator: " • "})

	var found bool
	for _, b := range doc.Blocks {
		if b.Text == "go • sql" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildDocumentReferencesNeverRendered(t *testing.T) {
	cv := &model.CVRecord{References: []string{"Available on request"}}
	doc := BuildDocument(cv, Options{})
	for _, b := range doc.Blocks {
		assert.NotContains(t, b.Text, "Available on request")
	}
}

func TestBuildDocumentDeterministic(t *testing.T) {
	cv := &model.CVRecord{
		PersonalInformation: &model.PersonalInformation{Name: "Ada Lovelace"},
		Skills:              []string{"math"},
	}
	first := BuildDocument(cv, Options{})
	second := BuildDocument(cv, Options{})
	assert.Equal(t, first, second)

	h1, err := first.HTML()
	require.NoError(t, err)
	h2, err := second.HTML()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestDocumentHTMLEscapes(t *testing.T) {
	doc := Document{Title: "X"}
	doc.add(BlockTitle, "X")
	doc.add(BlockParagraph, `<script>alert("hi")</script>`)

	page, err := doc.HTML()
	require.NoError(t, err)
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestDocumentHTMLEmptyDocumentHasNoHeadings(t *testing.T) {
	doc := BuildDocument(&model.CVRecord{}, Options{})
	page, err := doc.HTML()
	require.NoError(t, err)
	assert.NotContains(t, page, "<h2")
	assert.Contains(t, page, `<h1 class="title">CV</h1>`)
}

func TestPDFDelegatesToEngine(t *testing.T) {
	engine := &stubEngine{out: []byte("%PDF-1.4 stub")}
	cv := &model.CVRecord{PersonalInformation: &model.PersonalInformation{Name: "Ada"}}

	out, err := PDF(context.Background(), engine, cv, Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 stub"), out)
	assert.True(t, strings.Contains(engine.html, "Ada"))
}

func TestPDFWrapsEngineError(t *testing.T) {
	engine := &stubEngine{err: errors.New("chrome exploded")}
	_, err := PDF(context.Background(), engine, &model.CVRecord{}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf generation failed")
	assert.Contains(t, err.Error(), "chrome exploded")
}

func TestDeriveFilename(t *testing.T) {
	cv := &model.CVRecord{PersonalInformation: &model.PersonalInformation{Name: "Ada Lovelace"}}

	assert.Equal(t, "Ada_Lovelace_CV.pdf", DeriveFilename(cv, ""))
	assert.Equal(t, "CV_CV.pdf", DeriveFilename(&model.CVRecord{}, ""))
	assert.Equal(t, "resume.pdf", DeriveFilename(cv, "resume"))
	assert.Equal(t, "resume.pdf", DeriveFilename(cv, "resume.pdf"))
}
