package mailer

import (
	"fmt"
	"strings"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// message is a rendered email ready for any transport.
type message struct {
	Subject string
	Text    string
	HTML    string
}

func datesLine(inq *domain.Inquiry, loc domain.Locale) string {
	if inq.CheckIn == nil || inq.CheckOut == nil {
		return loc.Pick("Dates: flexible", "Reisedaten: flexibel")
	}
	label := loc.Pick("Dates", "Reisedaten")
	return fmt.Sprintf("%s: %s – %s", label, inq.CheckIn, inq.CheckOut)
}

func propertyBlock(prop *domain.Property, loc domain.Locale) (text, html string) {
	if prop == nil {
		return "", ""
	}
	name := prop.Name(loc)
	specs := fmt.Sprintf(loc.Pick("%d guests · %d bedrooms · %d bathrooms", "%d Gäste · %d Schlafzimmer · %d Badezimmer"),
		prop.Guests, prop.Bedrooms, prop.Bathrooms)
	if prop.Kind == domain.KindYacht {
		specs = fmt.Sprintf(loc.Pick("%d guests · %d cabins", "%d Gäste · %d Kabinen"), prop.Guests, prop.Cabins)
		if prop.LengthM != nil {
			specs += fmt.Sprintf(" · %.0f m", *prop.LengthM)
		}
	}

	text = fmt.Sprintf("%s\n%s\n", name, specs)
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3>", name)
	if prop.HeroImage != "" {
		fmt.Fprintf(&b, `<p><img src="%s" alt="%s" width="480"/></p>`, prop.HeroImage, name)
	}
	fmt.Fprintf(&b, "<p>%s</p>", specs)
	return text, b.String()
}

func renderConfirmation(inq *domain.Inquiry, prop *domain.Property) message {
	loc := inq.Locale

	subject := loc.Pick("We received your inquiry", "Wir haben Ihre Anfrage erhalten")
	if prop != nil {
		subject = fmt.Sprintf(loc.Pick("Your inquiry for %s", "Ihre Anfrage für %s"), prop.Name(loc))
	}

	greeting := fmt.Sprintf(loc.Pick("Dear %s,", "Liebe(r) %s,"), inq.FullName)
	body := loc.Pick(
		"thank you for your inquiry. Our team will get back to you within 24 hours.",
		"vielen Dank für Ihre Anfrage. Unser Team meldet sich innerhalb von 24 Stunden bei Ihnen.",
	)
	propText, propHTML := propertyBlock(prop, loc)
	dates := datesLine(inq, loc)

	text := fmt.Sprintf("%s\n\n%s\n\n%s%s\n", greeting, body, propText, dates)
	html := fmt.Sprintf(`
		<p>%s</p>
		<p>%s</p>
		%s
		<p>%s</p>
	`, greeting, body, propHTML, dates)

	return message{Subject: subject, Text: text, HTML: html}
}

func renderAlert(inq *domain.Inquiry, prop *domain.Property) message {
	// back office reads English regardless of the customer's locale
	loc := domain.LocaleEN

	subject := fmt.Sprintf("New inquiry from %s", inq.FullName)
	if prop != nil {
		subject = fmt.Sprintf("New inquiry: %s — %s", prop.Name(loc), inq.FullName)
	}

	propText, propHTML := propertyBlock(prop, loc)

	var lines []string
	lines = append(lines,
		"Name: "+inq.FullName,
		"Email: "+inq.Email,
	)
	if inq.Phone != "" {
		lines = append(lines, "Phone: "+inq.Phone)
	}
	lines = append(lines, datesLine(inq, loc))
	if inq.Guests != nil {
		lines = append(lines, fmt.Sprintf("Guests: %d", *inq.Guests))
	}
	if inq.Message != "" {
		lines = append(lines, "", inq.Message)
	}
	if inq.SourceURL != "" {
		lines = append(lines, "", "Submitted from: "+inq.SourceURL)
	}

	text := propText + strings.Join(lines, "\n") + "\n"
	var b strings.Builder
	b.WriteString(propHTML)
	for _, line := range lines {
		fmt.Fprintf(&b, "<p>%s</p>", line)
	}

	return message{Subject: subject, Text: text, HTML: b.String()}
}
