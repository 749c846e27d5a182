package opentimetables

import (
	"encoding/base64"
	"net/url"

	"github.com/pkg/browser"
)

// Hosted single-page ICS viewer. The calendar travels in the URL fragment, so
// nothing is uploaded anywhere.
const viewerBaseURL = "https://larrybolt.github.io/online-ics-feed-viewer/"

// Returns a viewer link with the serialized calendar embedded as a base64
// data feed in the URL fragment.
func ViewerURL(calendar []byte, title string) string {
	fragment := url.Values{
		"feed":  {"data:text/calendar;base64," + base64.StdEncoding.EncodeToString(calendar)},
		"cors":  {"false"},
		"title": {title},
	}
	return viewerBaseURL + "#" + fragment.Encode()
}

// Opens the serialized calendar in the default browser via the hosted viewer.
func OpenInViewer(calendar []byte, title string) error {
	return browser.OpenURL(ViewerURL(calendar, title))
}
