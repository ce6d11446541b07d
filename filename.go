package proposalpdf

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/porticus-lab/go-proposal-pdf/internal/normalize"
	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FileName returns a filesystem-safe name for doc of the form
// DDMMYYYY_SYSTEM_AGENCY_CITY.pdf. The date is the event start date, then
// the creation date, then today. The system is the event type, the agency
// the contracting company or the client, and the city is taken from the
// event or from the tail of its location after the last "-" or ",".
func FileName(doc *proposal.Document) string {
	return fileName(doc, time.Now())
}

func fileName(doc *proposal.Document, now time.Time) string {
	if doc == nil {
		return "Proposta_sem_numero_" + now.Format("2006-01-02") + ".pdf"
	}

	date := nameDate(doc.Event.StartDate, now)
	if doc.Event.StartDate == "" {
		date = nameDate(doc.Metadata.CreatedDate, now)
	}

	system := doc.Metadata.System
	if system == "" {
		system = doc.Event.Type
	}
	agency := doc.Event.ContractingCompany
	if agency == "" {
		agency = doc.Client.Name
	}
	city := doc.Event.City
	if city == "" {
		city = cityOf(doc.Event.Location)
	}

	parts := []string{date}
	for _, s := range []string{system, agency, city} {
		if s = slug(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "_") + ".pdf"
}

// nameDate renders raw as DDMMYYYY, falling back to now.
func nameDate(raw string, now time.Time) string {
	if t, err := normalize.ParseDate(raw); err == nil {
		return t.Format("02012006")
	}
	return now.Format("02012006")
}

func cityOf(location string) string {
	if i := strings.LastIndex(location, "-"); i >= 0 {
		return strings.TrimSpace(location[i+1:])
	}
	if i := strings.LastIndex(location, ","); i >= 0 {
		return strings.TrimSpace(location[i+1:])
	}
	return strings.TrimSpace(location)
}

// slug folds accents and joins alphanumeric runs with underscores.
func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(nonAlnum.ReplaceAllString(folded, "_"), "_")
}
