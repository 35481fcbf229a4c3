package sdui

import (
	"sync"
)

// Value is a single user-entered form value.
// The concrete types form a closed set matching the interactive node
// kinds: free text, a chosen option, recorded audio, a captured photo
// or a geo coordinate.
type Value interface {
	formValue()
}

type TextValue string

type ChoiceValue string

type VoiceValue []byte

type PhotoValue []byte

type LocationValue struct {
	Lat  float64
	Lon  float64
	Name *string
}

func (TextValue) formValue()     {}
func (ChoiceValue) formValue()   {}
func (VoiceValue) formValue()    {}
func (PhotoValue) formValue()    {}
func (LocationValue) formValue() {}

// Form collects the values entered on one page-view session, keyed by
// the `key` field of the node that owns them, plus the status of the
// most recent submission.
//
// Writes are last-writer-wins: nothing stops two nodes that share a key
// from overwriting each other with incompatible value types. That is
// the document author's responsibility, not the store's.
//
// A Form is safe for concurrent use.
type Form struct {
	mx sync.RWMutex

	values     map[string]Value
	submitting bool
	lastError  string
	succeeded  bool
}

// NewForm creates an empty form store for one page-view session.
func NewForm() *Form {
	return &Form{values: make(map[string]Value)}
}

// Set stores the value for key, overwriting any prior value.
func (f *Form) Set(key string, v Value) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.values[key] = v
}

// Get returns the value for key, or false if it was never set or has
// been cleared.
func (f *Form) Get(key string) (Value, bool) {
	f.mx.RLock()
	defer f.mx.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Clear removes the entry for key, e.g. when a recording or upload is
// discarded.
func (f *Form) Clear(key string) {
	f.mx.Lock()
	defer f.mx.Unlock()
	delete(f.values, key)
}

// Snapshot returns a copy of the current key/value mapping.
// Submission reads the store exactly once, through this.
func (f *Form) Snapshot() map[string]Value {
	f.mx.RLock()
	defer f.mx.RUnlock()

	snap := make(map[string]Value, len(f.values))
	for k, v := range f.values {
		snap[k] = v
	}
	return snap
}

// Submitting reports whether a submission is currently in flight.
// The flag is advisory, for disabling the submit affordance; it does
// not serialize submissions.
func (f *Form) Submitting() bool {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.submitting
}

// LastError returns the user-facing message of the last failed
// submission, or "" if the last submission succeeded or none ran yet.
func (f *Form) LastError() string {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.lastError
}

// Succeeded reports whether the last submission completed successfully.
func (f *Form) Succeeded() bool {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return f.succeeded
}

func (f *Form) beginSubmit() {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.submitting = true
	f.lastError = ""
	f.succeeded = false
}

func (f *Form) endSubmit(err error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.submitting = false
	if err != nil {
		f.lastError = "submit failed"
	} else {
		f.succeeded = true
	}
}
