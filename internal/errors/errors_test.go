package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NewNotFound("no page named %q", "home")
	if !IsNotFound(err) {
		t.Errorf("expected a not found error")
	}

	if IsNotFound(fmt.Errorf("some other error")) {
		t.Errorf("unexpected not found error")
	}
	if IsNotFound(nil) {
		t.Errorf("unexpected not found error")
	}
}

func TestExpectStatus(t *testing.T) {
	res := &http.Response{StatusCode: http.StatusOK}
	if err := ExpectOK(res, "request failed"); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	res = &http.Response{StatusCode: http.StatusNotFound}
	err := ExpectOK(res, "request failed")
	if !IsNotFound(err) {
		t.Errorf("expected a not found error, got %v", err)
	}

	res = &http.Response{StatusCode: http.StatusInternalServerError}
	err = ExpectOK(res, "request failed")
	if err == nil || IsNotFound(err) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(fmt.Errorf("inner"), "outer %v", 1)
	if err.Error() != "outer 1: inner" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
