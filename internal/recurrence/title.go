package recurrence

import (
	"regexp"
	"time"
)

// Occurrence titles embed their date as "<base> - MM/DD/YYYY". Titles are
// stored as-is, so this suffix grammar is a persisted format shared with the
// rest of the system; nothing else may reinterpret it.
const titleDateLayout = "01/02/2006"

var titleDateSuffix = regexp.MustCompile(`\s*-\s*\d{2}/\d{2}/\d{4}\s*$`)

// EncodeTitle appends the date suffix to a base title. A title that already
// ends in a date suffix has it replaced rather than stacked, so re-encoding
// is idempotent.
func EncodeTitle(base string, date time.Time) string {
	return DecodeTitle(base) + " - " + date.Format(titleDateLayout)
}

// DecodeTitle strips one trailing date suffix, tolerating extra whitespace
// around the dash. Only the final suffix goes; date-like text elsewhere in
// the title stays. A title without a suffix comes back unchanged.
func DecodeTitle(title string) string {
	return titleDateSuffix.ReplaceAllString(title, "")
}
