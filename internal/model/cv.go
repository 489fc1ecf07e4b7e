package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CVRecord is the structured resume document exchanged between extraction,
// storage, and rendering. Every field is independently optional: language
// models routinely omit whole sections, and absence must never be an error.
type CVRecord struct {
	PersonalInformation *PersonalInformation `json:"personal_information,omitempty"`
	ProfessionalSummary string               `json:"professional_summary,omitempty"`
	Education           []Education          `json:"education,omitempty"`
	WorkExperience      []WorkExperience     `json:"work_experience,omitempty"`
	Skills              []string             `json:"skills,omitempty"`
	Projects            []Project            `json:"projects,omitempty"`
	Certifications      []string             `json:"certifications,omitempty"`
	Publications        []string             `json:"publications,omitempty"`
	Awards              []string             `json:"awards,omitempty"`
	Languages           []string             `json:"languages,omitempty"`
	Volunteer           []string             `json:"volunteer,omitempty"`
	Conferences         []string             `json:"conferences,omitempty"`
	Memberships         []string             `json:"memberships,omitempty"`
	References          []string             `json:"references,omitempty"`
}

type PersonalInformation struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Education struct {
	Degree         string     `json:"degree,omitempty"`
	Institution    string     `json:"institution,omitempty"`
	GraduationYear FlexString `json:"graduation_year,omitempty"`
	GPA            FlexString `json:"gpa,omitempty"`
}

type WorkExperience struct {
	Position         string     `json:"position,omitempty"`
	Company          string     `json:"company,omitempty"`
	Duration         FlexString `json:"duration,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
}

type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// FlexString accepts a JSON string, number, or null. Models emit
// graduation years and GPAs in either form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// FieldNames lists the readable CVRecord fields in canonical order.
var FieldNames = []string{
	"personal_information",
	"professional_summary",
	"education",
	"work_experience",
	"skills",
	"projects",
	"certifications",
	"publications",
	"awards",
	"languages",
	"volunteer",
	"conferences",
	"memberships",
	"references",
}

// Name returns the person's name, or "" when personal information is absent.
func (c *CVRecord) Name() string {
	if c == nil || c.PersonalInformation == nil {
		return ""
	}
	return c.PersonalInformation.Name
}

// Map flattens personal information into a string map carrying only the
// populated entries. A nil receiver yields an empty map.
func (p *PersonalInformation) Map() map[string]string {
	m := map[string]string{}
	if p == nil {
		return m
	}
	set := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	set("name", p.Name)
	set("email", p.Email)
	set("phone", p.Phone)
	set("address", p.Address)
	set("linkedin", p.LinkedIn)
	set("github", p.GitHub)
	set("website", p.Website)
	return m
}

// Field looks up a field by its canonical name. Missing data yields a
// type-appropriate empty default, never an error; the second return is
// false only for names outside FieldNames.
func (c *CVRecord) Field(name string) (any, bool) {
	switch name {
	case "personal_information":
		return c.PersonalInformation.Map(), true
	case "professional_summary":
		return c.ProfessionalSummary, true
	case "education":
		return orEmpty(c.Education), true
	case "work_experience":
		return orEmpty(c.WorkExperience), true
	case "skills":
		return orEmpty(c.Skills), true
	case "projects":
		return orEmpty(c.Projects), true
	case "certifications":
		return orEmpty(c.Certifications), true
	case "publications":
		return orEmpty(c.Publications), true
	case "awards":
		return orEmpty(c.Awards), true
	case "languages":
		return orEmpty(c.Languages), true
	case "volunteer":
		return orEmpty(c.Volunteer), true
	case "conferences":
		return orEmpty(c.Conferences), true
	case "memberships":
		return orEmpty(c.Memberships), true
	case "references":
		return orEmpty(c.References), true
	}
	return nil, false
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// PresentFields lists the fields that carry data, in canonical order.
func (c *CVRecord) PresentFields() []string {
	out := make([]string, 0, len(FieldNames))
	for _, name := range FieldNames {
		v, _ := c.Field(name)
		empty := false
		switch t := v.(type) {
		case string:
			empty = t == ""
		case map[string]string:
			empty = len(t) == 0
		case []string:
			empty = len(t) == 0
		case []Education:
			empty = len(t) == 0
		case []WorkExperience:
			empty = len(t) == 0
		case []Project:
			empty = len(t) == 0
		}
		if !empty {
			out = append(out, name)
		}
	}
	return out
}

// ParseError reports a failed attempt to decode model output as a CVRecord,
// with the byte offset of the error when the decoder provides one.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse cv json at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseCVRecord decodes a cleaned model reply into a CVRecord. The caller
// decides what a failure means; parsing itself never coerces or retries.
func ParseCVRecord(data []byte) (*CVRecord, *ParseError) {
	var cv CVRecord
	if err := json.Unmarshal(data, &cv); err != nil {
		offset := int64(-1)
		var syn *json.SyntaxError
		var typ *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syn):
			offset = syn.Offset
		case errors.As(err, &typ):
			offset = typ.Offset
		}
		return nil, &ParseError{Offset: offset, Err: err}
	}
	return &cv, nil
}
