package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Intent is the closed set of inbound message intents
type Intent string

const (
	IntentFAQ     Intent = "faq"
	IntentBooking Intent = "booking"
	IntentPayment Intent = "payment"
)

var (
	paymentPattern = regexp.MustCompile(`(?i)(pay|deposit|card|payment|visa|mastercard)`)
	bookingPattern = regexp.MustCompile(`(?i)(book|booking|appointment|appt|massage|hair|facial|slot|reserve|schedule)`)
)

// Classify maps free text onto an intent. Order matters: payment keywords win
// over booking keywords when both appear in the same message; everything else
// is a FAQ.
func Classify(text string) Intent {
	if paymentPattern.MatchString(text) {
		return IntentPayment
	}
	if bookingPattern.MatchString(text) {
		return IntentBooking
	}
	return IntentFAQ
}

var (
	minutesPattern = regexp.MustCompile(`\b(\d{1,3})\s*(m|min|mins|minute|minutes)\b`)
	hoursPattern   = regexp.MustCompile(`\b(\d{1,2})\s*(h|hr|hrs|hour|hours)\b`)
	massagePattern = regexp.MustCompile(`massage`)
	facialPattern  = regexp.MustCompile(`facial`)
	hairPattern    = regexp.MustCompile(`hair(cut| style| color)?|blow ?dry`)
	nailsPattern   = regexp.MustCompile(`manicure|pedicure|nails?`)
	spaPattern     = regexp.MustCompile(`spa|treatment`)
	bookishPattern = regexp.MustCompile(`book|booking|appointment|appt|reserve|schedule|slot`)
)

// ExtractService derives a normalized service label from free text: an
// optional duration prefix ("60m") plus a category picked by priority.
// "general" when nothing recognizable appears.
func ExtractService(text string) string {
	t := strings.ToLower(text)

	var duration string
	if m := minutesPattern.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		duration = fmt.Sprintf("%dm", n)
	} else if m := hoursPattern.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		duration = fmt.Sprintf("%dm", n*60)
	}

	var service string
	switch {
	case massagePattern.MatchString(t):
		service = "massage"
	case facialPattern.MatchString(t):
		service = "facial"
	case hairPattern.MatchString(t):
		service = "hair"
	case nailsPattern.MatchString(t):
		service = "nails"
	case spaPattern.MatchString(t):
		service = "treatment"
	case bookishPattern.MatchString(t):
		// Booking words with no explicit service
		service = "appointment"
	}

	if service == "" {
		return "general"
	}
	if duration != "" {
		return duration + " " + service
	}
	return service
}
