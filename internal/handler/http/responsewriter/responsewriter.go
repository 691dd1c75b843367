// Package responsewriter records the status and body size of a response as
// it passes through middleware.
package responsewriter

import "net/http"

// Recorder is an http.ResponseWriter that remembers what was sent.
type Recorder struct {
	http.ResponseWriter
	status int
	size   int
}

// Wrap returns a Recorder around w. Wrapping a Recorder returns it unchanged,
// so stacked middleware share a single record.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w}
}

// WriteHeader forwards the first status only.
func (r *Recorder) WriteHeader(code int) {
	if r.status != 0 {
		return
	}
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Status is the status sent to the client. A handler that wrote nothing
// gets an implicit 200 from net/http, so that is reported too.
func (r *Recorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Size is the number of body bytes written.
func (r *Recorder) Size() int { return r.size }

// Wrote reports whether a status line has been sent.
func (r *Recorder) Wrote() bool { return r.status != 0 }

// Flush implements http.Flusher when the underlying writer does.
func (r *Recorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		if r.status == 0 {
			r.WriteHeader(http.StatusOK)
		}
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
