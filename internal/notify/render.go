package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

const (
	customerSubject = "Thank You for Your Travel Inquiry"
	businessSubject = "New Travel Inquiry Submission"

	noMessage  = "No message provided"
	openEnded  = "TBD"
	travelTeam = "The Travel Team"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
)

// Content is a rendered message body pair with its subject.
type Content struct {
	Subject   string
	PlainText string
	HTML      string
}

// row is one labelled value in a summary list or details table.
type row struct {
	Label string
	Value string
}

// view is the single data model both renderings of a message are executed
// against, so the plain-text and HTML bodies cannot carry different facts.
type view struct {
	Title     string
	Name      string
	Reference string
	Rows      []row
	SignOff   string
}

// RenderCustomer renders the confirmation sent to the person who submitted
// the inquiry. Summary rows appear only for fields that were provided.
func RenderCustomer(s domain.Submission) (Content, error) {
	var rows []row
	if s.Destination != nil {
		rows = append(rows, row{"Destination", *s.Destination})
	}
	if dates, ok := travelDates(s); ok {
		rows = append(rows, row{"Travel Dates", dates})
	}
	if s.Travelers != nil {
		rows = append(rows, row{"Number of Travelers", *s.Travelers})
	}

	v := view{
		Title:     customerSubject,
		Name:      s.Name,
		Reference: s.Reference(),
		Rows:      rows,
		SignOff:   travelTeam,
	}
	return render(customerSubject, "customer", v)
}

// RenderBusiness renders the operator notification. It lists every field of
// the record; the message row is always present.
func RenderBusiness(s domain.Submission) (Content, error) {
	rows := []row{
		{"Reference ID", s.Reference()},
		{"Name", s.Name},
		{"Email", s.Email},
	}
	if s.Phone != nil {
		rows = append(rows, row{"Phone", *s.Phone})
	}
	if s.Destination != nil {
		rows = append(rows, row{"Destination", *s.Destination})
	}
	if dates, ok := travelDates(s); ok {
		rows = append(rows, row{"Travel Dates", dates})
	}
	if s.Travelers != nil {
		rows = append(rows, row{"Travelers", *s.Travelers})
	}
	rows = append(rows,
		row{"Message", valueOr(s.Message, noMessage)},
		row{"Submitted At", s.Timestamp()},
	)

	v := view{
		Title:     "New Travel Inquiry",
		Name:      s.Name,
		Reference: s.Reference(),
		Rows:      rows,
	}
	return render(businessSubject, "business", v)
}

func render(subject, name string, v view) (Content, error) {
	var text, html bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, name+".txt.tmpl", v); err != nil {
		return Content{}, fmt.Errorf("notify.render: %s text: %w", name, err)
	}
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html.tmpl", v); err != nil {
		return Content{}, fmt.Errorf("notify.render: %s html: %w", name, err)
	}
	return Content{Subject: subject, PlainText: text.String(), HTML: html.String()}, nil
}

// travelDates formats the travel window. It is only shown when a start date
// was given; a missing end date reads "TBD".
func travelDates(s domain.Submission) (string, bool) {
	if s.TravelDateStart == nil {
		return "", false
	}
	return *s.TravelDateStart + " to " + valueOr(s.TravelDateEnd, openEnded), true
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
