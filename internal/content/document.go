package content

import (
	"encoding/json"
	"strings"
)

// Document is the site content tree: global site settings plus the four
// public pages. It is persisted as a single JSON value under the "content"
// settings key and edited as a whole through the admin panel.
type Document struct {
	Site  Site  `json:"site"`
	Pages Pages `json:"pages"`
}

type Site struct {
	Name       string    `json:"name"`
	Tagline    string    `json:"tagline"`
	Colors     Colors    `json:"colors"`
	Navigation []NavItem `json:"navigation"`
	Footer     Footer    `json:"footer"`
	Flags      Flags     `json:"flags"`
}

type Colors struct {
	Primary     string `json:"primary"`
	PrimaryDark string `json:"primary_dark"`
	Accent      string `json:"accent"`
	Background  string `json:"background"`
	Text        string `json:"text"`
	Muted       string `json:"muted"`
}

type NavItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Footer struct {
	Description string       `json:"description"`
	Visit       VisitBlock   `json:"visit"`
	Contact     ContactBlock `json:"contact"`
}

type VisitBlock struct {
	Lines []string `json:"lines"`
}

type ContactBlock struct {
	Lines []ContactLine `json:"lines"`
}

// ContactLine is one footer contact entry. The URL key is absent from the
// serialized form when empty (label-only lines render as plain text).
type ContactLine struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

type Flags struct {
	ShowAdminBorder bool `json:"show_admin_border"`
}

type Pages struct {
	Home     HomePage     `json:"home"`
	Services ServicesPage `json:"services"`
	Contact  ContactPage  `json:"contact"`
	Store    StorePage    `json:"store"`
}

type Meta struct {
	Title string `json:"title"`
}

type Hero struct {
	Badge       string `json:"badge"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CTAText     string `json:"cta_text"`
	CTALink     string `json:"cta_link"`
	Image       string `json:"image"`
	ImageAlt    string `json:"image_alt"`
}

// Card is one repeated content block. Bullets is only used by the bulleted
// sections and Price only by the priced ones; both stay out of the JSON
// for the sections that never set them.
type Card struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets,omitempty"`
	Image       string   `json:"image"`
	ImageAlt    string   `json:"image_alt"`
	Price       string   `json:"price,omitempty"`
}

type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type CardSection struct {
	Title string `json:"title"`
	Items []Card `json:"items"`
}

type TestimonialSection struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

type HomePage struct {
	Meta         Meta               `json:"meta"`
	Hero         Hero               `json:"hero"`
	WhatWePrint  CardSection        `json:"what_we_print"`
	WhyChoose    CardSection        `json:"why_choose"`
	Testimonials TestimonialSection `json:"testimonials"`
}

type ProcessCTA struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
	Link        string `json:"link"`
}

type ProcessSection struct {
	Title string     `json:"title"`
	Steps []Card     `json:"steps"`
	CTA   ProcessCTA `json:"cta"`
}

type ServicesPage struct {
	Meta         Meta           `json:"meta"`
	Hero         Hero           `json:"hero"`
	Capabilities CardSection    `json:"capabilities"`
	Bundles      CardSection    `json:"bundles"`
	Process      ProcessSection `json:"process"`
}

type Studio struct {
	VisitTitle string   `json:"visit_title"`
	Address    []string `json:"address"`
	HoursTitle string   `json:"hours_title"`
	Hours      []string `json:"hours"`
	PhoneTitle string   `json:"phone_title"`
	Phone      string   `json:"phone"`
	PhoneHref  string   `json:"phone_href"`
	EmailTitle string   `json:"email_title"`
	Email      string   `json:"email"`
}

type FormField struct {
	Label       string `json:"label"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
}

type ContactForm struct {
	Title      string      `json:"title"`
	SubmitText string      `json:"submit_text"`
	Fields     []FormField `json:"fields"`
}

type AboutCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AboutSection struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Cards       []AboutCard `json:"cards"`
}

type ContactPage struct {
	Meta   Meta         `json:"meta"`
	Hero   Hero         `json:"hero"`
	Studio Studio       `json:"studio"`
	Form   ContactForm  `json:"form"`
	About  AboutSection `json:"about"`
}

type StoreIntro struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type StorePage struct {
	Meta       Meta        `json:"meta"`
	Hero       Hero        `json:"hero"`
	Intro      StoreIntro  `json:"intro"`
	Highlights CardSection `json:"highlights"`
}

// Decode parses a serialized content document.
func Decode(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode serializes the document the way the settings store expects it.
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// PageTitle returns the browser title for a page: the page meta title when
// set, then the site tagline, then the site name.
func (d *Document) PageTitle(page string) string {
	var meta Meta
	switch page {
	case "home":
		meta = d.Pages.Home.Meta
	case "services":
		meta = d.Pages.Services.Meta
	case "contact":
		meta = d.Pages.Contact.Meta
	case "store":
		meta = d.Pages.Store.Meta
	}
	if meta.Title != "" {
		return meta.Title
	}
	if d.Site.Tagline != "" {
		return d.Site.Tagline
	}
	return d.Site.Name
}

// BodyClass composes the body CSS class list, appending the admin border
// marker when the flag is on.
func (d *Document) BodyClass(extra ...string) string {
	classes := make([]string, 0, len(extra)+1)
	for _, cls := range extra {
		if cls != "" {
			classes = append(classes, cls)
		}
	}
	if d.Site.Flags.ShowAdminBorder {
		classes = append(classes, "admin-border")
	}
	return strings.Join(classes, " ")
}
