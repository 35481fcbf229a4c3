package sdui

import (
	"bytes"
	"io"
	"net/url"

	"github.com/sduikit/sdui/internal/logging"
)

// Poster executes the submission POST.
// Implemented by api.Client; tests substitute their own.
type Poster interface {
	// Post sends the body with the given Content-Type header value and
	// returns the HTTP status code. An error means the request never
	// produced a response.
	Post(url, contentType string, body io.Reader) (int, error)
}

// Submit snapshots the form, encodes the snapshot as multipart/form-data
// and posts it to endpoint.
//
// The form's status flags follow the submission: the in-flight flag is
// set for the duration of the call and reset on every path; afterwards
// either Succeeded reports true or LastError carries the user-facing
// message. The structured reason is the returned error (see
// IsInvalidEndpoint, IsServerError, IsTransportFailure).
//
// Only one submission should run per form at a time. The design relies
// on the presentation layer disabling the submit affordance while
// Submitting is true; Submit itself does not serialize callers.
func Submit(p Poster, f *Form, endpoint string) (err error) {
	f.beginSubmit()
	defer func() {
		f.endSubmit(err)
	}()

	u, uerr := url.Parse(endpoint)
	if uerr != nil || u.Scheme == "" || u.Host == "" {
		return newInvalidEndpoint(endpoint)
	}

	body, contentType, err := EncodeMultipart(f.Snapshot())
	if err != nil {
		return err
	}

	logging.Debug("submit %d bytes to %q", len(body), endpoint)

	status, perr := p.Post(endpoint, contentType, bytes.NewReader(body))
	if perr != nil {
		logging.Debug("submit transport failure: %v", perr)
		return newTransportFailure(perr)
	}

	if status < 200 || status > 299 {
		logging.Debug("submit rejected with status %v", status)
		return newServerError(status)
	}

	return nil
}
