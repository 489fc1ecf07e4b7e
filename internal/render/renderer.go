package render

import (
	"context"
	"fmt"
	"strings"

	"cv-generator/internal/model"
)

// Options tune presentation details of the assembled document.
type Options struct {
	// SkillsSeparator joins the skills list on a single line; ", " and " • "
	// are the usual choices.
	SkillsSeparator string
}

func (o Options) skillsSeparator() string {
	if o.SkillsSeparator == "" {
		return ", "
	}
	return o.SkillsSeparator
}

// LayoutEngine paginates a rendered HTML document into a PDF byte stream.
// Page size, margins, word wrap, and page breaks are its concern alone.
type LayoutEngine interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// PDF renders cv into a complete PDF document, or fails with a single error
// naming the cause. No partial output is ever produced.
func PDF(ctx context.Context, engine LayoutEngine, cv *model.CVRecord, opts Options) ([]byte, error) {
	doc := BuildDocument(cv, opts)
	page, err := doc.HTML()
	if err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	out, err := engine.RenderHTMLToPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return out, nil
}

// BuildDocument assembles the ordered block sequence for a CV. Blocks are
// emitted in a fixed section order; a section whose driving field is empty
// collapses to nothing rather than a blank heading.
func BuildDocument(cv *model.CVRecord, opts Options) Document {
	name := cv.Name()
	if name == "" {
		name = "CV"
	}
	doc := Document{Title: name}
	doc.add(BlockTitle, name)

	p := cv.PersonalInformation
	if p != nil {
		contact := joinPresent(" | ", p.Email, p.Phone, p.Address)
		if contact != "" {
			doc.add(BlockContact, contact)
		}
		links := joinPresent(" | ",
			labeled("LinkedIn", p.LinkedIn),
			labeled("GitHub", p.GitHub),
			labeled("Website", p.Website))
		if links != "" {
			doc.add(BlockContact, links)
		}
	}
	doc.add(BlockSpacer, "")

	if cv.ProfessionalSummary != "" {
		doc.add(BlockHeading, "PROFESSIONAL SUMMARY")
		doc.add(BlockParagraph, cv.ProfessionalSummary)
		doc.add(BlockSpacer, "")
	}

	// Skills stay on one joined line so applicant-tracking scanners can
	// parse the section as a flat list.
	if len(cv.Skills) > 0 {
		doc.add(BlockHeading, "SKILLS")
		doc.add(BlockParagraph, strings.Join(cv.Skills, opts.skillsSeparator()))
		doc.add(BlockSpacer, "")
	}

	if len(cv.Projects) > 0 {
		doc.add(BlockHeading, "PROJECTS")
		for _, proj := range cv.Projects {
			if proj.Name != "" {
				doc.add(BlockSubheading, proj.Name)
			}
			if proj.Description != "" {
				doc.add(BlockParagraph, proj.Description)
			}
			if len(proj.Technologies) > 0 {
				doc.add(BlockLabel, "Technologies: "+strings.Join(proj.Technologies, ", "))
			}
			if proj.Link != "" {
				doc.add(BlockLabel, "Link: "+proj.Link)
			}
		}
		doc.add(BlockSpacer, "")
	}

	if len(cv.WorkExperience) > 0 {
		doc.add(BlockHeading, "WORK EXPERIENCE")
		for _, job := range cv.WorkExperience {
			if job.Position != "" {
				doc.add(BlockSubheading, job.Position)
			}
			line := job.Company
			if dur := job.Duration.String(); dur != "" {
				if line != "" {
					line += " — " + dur
				} else {
					line = dur
				}
			}
			if line != "" {
				doc.add(BlockLabel, line)
			}
			for _, resp := range job.Responsibilities {
				doc.add(BlockBullet, resp)
			}
		}
		doc.add(BlockSpacer, "")
	}

	if len(cv.Education) > 0 {
		doc.add(BlockHeading, "EDUCATION")
		for _, edu := range cv.Education {
			if edu.Degree != "" {
				doc.add(BlockSubheading, edu.Degree)
			}
			line := joinPresent(" | ",
				edu.Institution,
				edu.GraduationYear.String(),
				labeled("GPA", edu.GPA.String()))
			if line != "" {
				doc.add(BlockLabel, line)
			}
		}
		doc.add(BlockSpacer, "")
	}

	for _, section := range []struct {
		title  string
		items  []string
		inline bool
	}{
		{"CERTIFICATIONS", cv.Certifications, false},
		{"AWARDS", cv.Awards, false},
		{"LANGUAGES", cv.Languages, true},
		{"PUBLICATIONS", cv.Publications, false},
		{"VOLUNTEER", cv.Volunteer, false},
		{"CONFERENCES", cv.Conferences, false},
		{"MEMBERSHIPS", cv.Memberships, true},
	} {
		if len(section.items) == 0 {
			continue
		}
		doc.add(BlockHeading, section.title)
		if section.inline {
			doc.add(BlockParagraph, strings.Join(section.items, ", "))
		} else {
			for _, item := range section.items {
				doc.add(BlockBullet, item)
			}
		}
		doc.add(BlockSpacer, "")
	}

	return doc
}

// DeriveFilename picks the download filename: the requested name with a
// ".pdf" suffix ensured, or "<Name>_CV.pdf" with spaces as underscores.
func DeriveFilename(cv *model.CVRecord, requested string) string {
	if requested != "" {
		if !strings.HasSuffix(requested, ".pdf") {
			requested += ".pdf"
		}
		return requested
	}
	name := cv.Name()
	if name == "" {
		name = "CV"
	}
	return strings.ReplaceAll(name, " ", "_") + "_CV.pdf"
}

func joinPresent(sep string, parts ...string) string {
	present := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			present = append(present, part)
		}
	}
	return strings.Join(present, sep)
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
