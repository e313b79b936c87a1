package export

import (
	"net/url"
	"strings"

	"github.com/buildledger/jobs_backend/models"
)

// MailtoLink builds a mailto: URL with the quote summary pre-filled so an
// estimator can fire off the numbers without leaving the app.
func MailtoLink(job *models.Job, quote Quote) string {
	var body strings.Builder
	body.WriteString("Quote for " + job.Name + "\n")
	if job.Address != "" {
		body.WriteString(job.Address + "\n")
	}
	body.WriteString("\n")

	for _, section := range quote.Sections {
		body.WriteString(section.Name + "\n")
		for _, r := range section.Rows {
			body.WriteString("  " + r.Label + ": $" + r.Amount.StringFixed(2) + "\n")
		}
		for _, t := range section.Totals {
			body.WriteString("  " + t.Label + ": $" + t.Amount.StringFixed(2) + "\n")
		}
		body.WriteString("\n")
	}
	body.WriteString("Quote Total: $" + quote.FinalTotal.StringFixed(2) + "\n")

	values := url.Values{}
	values.Set("subject", "Quote - "+job.Name)
	values.Set("body", body.String())

	// url.Values encodes spaces as '+', which mail clients render literally.
	query := strings.ReplaceAll(values.Encode(), "+", "%20")
	return "mailto:?" + query
}
