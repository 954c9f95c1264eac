// Package forms translates flat admin form submissions into the nested
// content document. Field names match the admin templates (home_hero_title,
// services_bundles_price, footer_contact_lines, ...).
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"printstudio/internal/content"
)

// ErrUnsupportedPage is returned when an edit submission names a page the
// mapper does not know.
var ErrUnsupportedPage = errors.New("unsupported page kind")

// PageKinds are the accepted values for the page argument of Apply. "site"
// is the cross-cutting site-settings section.
var PageKinds = []string{"home", "services", "contact", "store", "site"}

// Apply mutates exactly one page section of doc from the submitted form.
// Scalar fields that are absent from the submission keep their prior value;
// submitted-but-empty fields clear it. Repeated card sections are rebuilt
// when any of their correlated fields is present.
func Apply(doc *content.Document, page string, form url.Values) error {
	switch page {
	case "site":
		applySite(doc, form)
	case "home":
		applyHome(&doc.Pages.Home, form)
	case "services":
		applyServices(&doc.Pages.Services, form)
	case "contact":
		applyContact(&doc.Pages.Contact, form)
	case "store":
		applyStore(&doc.Pages.Store, form)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedPage, page)
	}
	return nil
}

// AdminPassword returns the requested new admin password, trimmed, or ""
// when the site-settings form left it blank. Password changes bypass the
// draft: they take effect immediately.
func AdminPassword(form url.Values) string {
	return strings.TrimSpace(form.Get("admin_password"))
}

func applySite(doc *content.Document, form url.Values) {
	site := &doc.Site
	site.Name = scalar(form, "site_name", site.Name)
	site.Tagline = scalar(form, "site_tagline", site.Tagline)
	site.Footer.Description = scalar(form, "footer_description", site.Footer.Description)
	site.Flags.ShowAdminBorder = form.Get("site_show_admin_border") != ""

	site.Colors.Primary = scalar(form, "color_primary", site.Colors.Primary)
	site.Colors.PrimaryDark = scalar(form, "color_primary_dark", site.Colors.PrimaryDark)
	site.Colors.Accent = scalar(form, "color_accent", site.Colors.Accent)
	site.Colors.Background = scalar(form, "color_background", site.Colors.Background)
	site.Colors.Text = scalar(form, "color_text", site.Colors.Text)
	site.Colors.Muted = scalar(form, "color_muted", site.Colors.Muted)

	if form.Has("footer_visit_lines") {
		site.Footer.Visit.Lines = splitLines(form.Get("footer_visit_lines"))
	}
	if form.Has("footer_contact_lines") {
		site.Footer.Contact.Lines = parseContactLines(form.Get("footer_contact_lines"))
	}
}

func applyHome(p *content.HomePage, form url.Values) {
	applyHero(&p.Hero, form, "home_hero")

	p.WhatWePrint.Title = scalar(form, "home_what_we_print_heading", p.WhatWePrint.Title)
	if hasCardFields(form, "home_what_we_print") {
		p.WhatWePrint.Items = parseCardsWithBullets(form, "home_what_we_print", false)
	}
	p.WhyChoose.Title = scalar(form, "home_why_choose_heading", p.WhyChoose.Title)
	if hasCardFields(form, "home_why_choose") {
		p.WhyChoose.Items = parseCards(form, "home_why_choose")
	}
	p.Testimonials.Title = scalar(form, "home_testimonials_heading", p.Testimonials.Title)
	if hasAny(form, "home_testimonials_quote", "home_testimonials_author") {
		p.Testimonials.Items = parseTestimonials(form)
	}
}

func applyServices(p *content.ServicesPage, form url.Values) {
	applyHero(&p.Hero, form, "services_hero")

	p.Capabilities.Title = scalar(form, "services_capabilities_heading", p.Capabilities.Title)
	if hasCardFields(form, "services_capabilities") {
		p.Capabilities.Items = parseCardsWithBullets(form, "services_capabilities", false)
	}
	p.Bundles.Title = scalar(form, "services_bundles_heading", p.Bundles.Title)
	if hasCardFields(form, "services_bundles") {
		p.Bundles.Items = parseCardsWithBullets(form, "services_bundles", true)
	}
	p.Process.Title = scalar(form, "services_process_heading", p.Process.Title)
	if hasCardFields(form, "services_process") {
		p.Process.Steps = parseCards(form, "services_process")
	}
	p.Process.CTA.Title = scalar(form, "services_process_cta_title", p.Process.CTA.Title)
	p.Process.CTA.Description = scalar(form, "services_process_cta_description", p.Process.CTA.Description)
	p.Process.CTA.Text = scalar(form, "services_process_cta_text", p.Process.CTA.Text)
	p.Process.CTA.Link = scalar(form, "services_process_cta_link", p.Process.CTA.Link)
}

func applyContact(p *content.ContactPage, form url.Values) {
	applyHero(&p.Hero, form, "contact_hero")

	p.Studio.VisitTitle = scalar(form, "contact_visit_title", p.Studio.VisitTitle)
	if form.Has("contact_address_lines") {
		p.Studio.Address = splitLines(form.Get("contact_address_lines"))
	}
	p.Studio.HoursTitle = scalar(form, "contact_hours_title", p.Studio.HoursTitle)
	if form.Has("contact_hours_lines") {
		p.Studio.Hours = splitLines(form.Get("contact_hours_lines"))
	}
	p.Studio.PhoneTitle = scalar(form, "contact_phone_title", p.Studio.PhoneTitle)
	p.Studio.Phone = scalar(form, "contact_phone", p.Studio.Phone)
	p.Studio.PhoneHref = scalar(form, "contact_phone_href", p.Studio.PhoneHref)
	p.Studio.EmailTitle = scalar(form, "contact_email_title", p.Studio.EmailTitle)
	p.Studio.Email = scalar(form, "contact_email", p.Studio.Email)

	p.Form.Title = scalar(form, "contact_form_title", p.Form.Title)
	p.Form.SubmitText = scalar(form, "contact_form_submit", p.Form.SubmitText)
	if hasAny(form, "contact_form_label", "contact_form_name", "contact_form_type", "contact_form_placeholder") {
		p.Form.Fields = parseFormFields(form)
	}

	p.About.Title = scalar(form, "contact_about_title", p.About.Title)
	p.About.Description = scalar(form, "contact_about_description", p.About.Description)
	if hasAny(form, "contact_about_title_item", "contact_about_description_item") {
		p.About.Cards = parseAboutCards(form)
	}
}

func applyStore(p *content.StorePage, form url.Values) {
	applyHero(&p.Hero, form, "store_hero")

	p.Intro.Title = scalar(form, "store_intro_title", p.Intro.Title)
	p.Intro.Description = scalar(form, "store_intro_description", p.Intro.Description)

	p.Highlights.Title = scalar(form, "store_highlights_heading", p.Highlights.Title)
	if hasCardFields(form, "store_highlights") {
		p.Highlights.Items = parseCards(form, "store_highlights")
	}
}

func applyHero(h *content.Hero, form url.Values, prefix string) {
	h.Badge = scalar(form, prefix+"_badge", h.Badge)
	h.Title = scalar(form, prefix+"_title", h.Title)
	h.Description = scalar(form, prefix+"_description", h.Description)
	h.CTAText = scalar(form, prefix+"_cta_text", h.CTAText)
	h.CTALink = scalar(form, prefix+"_cta_link", h.CTALink)
	h.Image = scalar(form, prefix+"_image", h.Image)
	h.ImageAlt = scalar(form, prefix+"_image_alt", h.ImageAlt)
}

// scalar implements omitted-preserves / submitted-empty-clears semantics.
func scalar(form url.Values, key, current string) string {
	if !form.Has(key) {
		return current
	}
	return strings.TrimSpace(form.Get(key))
}

func hasAny(form url.Values, keys ...string) bool {
	for _, k := range keys {
		if form.Has(k) {
			return true
		}
	}
	return false
}

func hasCardFields(form url.Values, prefix string) bool {
	return hasAny(form,
		prefix+"_title", prefix+"_description", prefix+"_bullets",
		prefix+"_image", prefix+"_image_alt", prefix+"_price")
}

// splitLines breaks textarea input into trimmed non-empty lines. It always
// returns a non-nil slice so a cleared textarea clears the stored list.
func splitLines(value string) []string {
	out := []string{}
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseContactLines parses one footer contact entry per line, splitting on
// the first "|" into label and url. Lines without "|" are label-only and
// serialize without a url key; empty labels are dropped.
func parseContactLines(raw string) []content.ContactLine {
	lines := []content.ContactLine{}
	for _, line := range splitLines(raw) {
		label, url := line, ""
		if idx := strings.Index(line, "|"); idx >= 0 {
			label = strings.TrimSpace(line[:idx])
			url = strings.TrimSpace(line[idx+1:])
		}
		if label == "" {
			continue
		}
		lines = append(lines, content.ContactLine{Label: label, URL: url})
	}
	return lines
}

// parseCards correlates same-prefixed list fields by position. An entry is
// kept when its title or description is non-empty; image fields are
// optional trailing lists that default to "".
func parseCards(form url.Values, prefix string) []content.Card {
	titles := form[prefix+"_title"]
	descriptions := form[prefix+"_description"]
	images := form[prefix+"_image"]
	imageAlts := form[prefix+"_image_alt"]

	items := []content.Card{}
	for i := 0; i < min(len(titles), len(descriptions)); i++ {
		title := strings.TrimSpace(titles[i])
		description := strings.TrimSpace(descriptions[i])
		if title == "" && description == "" {
			continue
		}
		items = append(items, content.Card{
			Title:       title,
			Description: description,
			Image:       at(images, i),
			ImageAlt:    at(imageAlts, i),
		})
	}
	return items
}

// parseCardsWithBullets is the bulleted card variant: the bullets field is
// multi-line text stored as a nested list. With includePrice the price
// field joins the keep-if-any-non-empty test.
func parseCardsWithBullets(form url.Values, prefix string, includePrice bool) []content.Card {
	titles := form[prefix+"_title"]
	descriptions := form[prefix+"_description"]
	bullets := form[prefix+"_bullets"]
	images := form[prefix+"_image"]
	imageAlts := form[prefix+"_image_alt"]
	var prices []string
	if includePrice {
		prices = form[prefix+"_price"]
	}

	items := []content.Card{}
	for i := 0; i < min(len(titles), len(descriptions), len(bullets)); i++ {
		title := strings.TrimSpace(titles[i])
		description := strings.TrimSpace(descriptions[i])
		bulletText := strings.TrimSpace(bullets[i])
		price := ""
		if includePrice {
			price = at(prices, i)
		}
		if title == "" && description == "" && bulletText == "" && price == "" {
			continue
		}
		card := content.Card{
			Title:       title,
			Description: description,
			Bullets:     splitLines(bulletText),
			Image:       at(images, i),
			ImageAlt:    at(imageAlts, i),
		}
		if includePrice {
			card.Price = price
		}
		items = append(items, card)
	}
	return items
}

func parseTestimonials(form url.Values) []content.Testimonial {
	quotes := form["home_testimonials_quote"]
	authors := form["home_testimonials_author"]

	items := []content.Testimonial{}
	for i := 0; i < min(len(quotes), len(authors)); i++ {
		quote := strings.TrimSpace(quotes[i])
		if quote == "" {
			continue
		}
		items = append(items, content.Testimonial{
			Quote:  quote,
			Author: strings.TrimSpace(authors[i]),
		})
	}
	return items
}

func parseFormFields(form url.Values) []content.FormField {
	labels := form["contact_form_label"]
	names := form["contact_form_name"]
	types := form["contact_form_type"]
	placeholders := form["contact_form_placeholder"]

	fields := []content.FormField{}
	for i := 0; i < min(len(labels), len(names), len(types), len(placeholders)); i++ {
		name := strings.TrimSpace(names[i])
		if name == "" {
			continue
		}
		label := strings.TrimSpace(labels[i])
		if label == "" {
			label = titleCase(name)
		}
		fieldType := strings.TrimSpace(types[i])
		if fieldType == "" {
			fieldType = "text"
		}
		fields = append(fields, content.FormField{
			Label:       label,
			Name:        name,
			Type:        fieldType,
			Placeholder: strings.TrimSpace(placeholders[i]),
		})
	}
	return fields
}

func parseAboutCards(form url.Values) []content.AboutCard {
	titles := form["contact_about_title_item"]
	descriptions := form["contact_about_description_item"]

	cards := []content.AboutCard{}
	for i := 0; i < min(len(titles), len(descriptions)); i++ {
		title := strings.TrimSpace(titles[i])
		description := strings.TrimSpace(descriptions[i])
		if title == "" && description == "" {
			continue
		}
		cards = append(cards, content.AboutCard{Title: title, Description: description})
	}
	return cards
}

// at reads a positional optional list, returning "" past its end.
func at(values []string, i int) string {
	if i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
