package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelWrapping(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{Validationf("bad input %q", "x"), ErrValidation},
		{TooLargef("limit exceeded"), ErrTooLarge},
		{NotFoundf("document %s", "abc"), ErrNotFound},
		{Extractionf("no text in %s", "f.pdf"), ErrExtraction},
		{Gateway("upsert vectors", errors.New("boom")), ErrGateway},
	}

	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("%v does not match sentinel %v", tc.err, tc.sentinel)
		}
	}
}

func TestWrappedSentinelSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFoundf("document %s", "abc"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("sentinel lost through wrapping")
	}
}

func TestIsClientFault(t *testing.T) {
	if !IsClientFault(Validationf("bad")) {
		t.Error("validation errors are client faults")
	}
	if !IsClientFault(TooLargef("big")) {
		t.Error("too-large errors are client faults")
	}
	if !IsClientFault(NotFoundf("gone")) {
		t.Error("not-found errors are client faults")
	}
	if IsClientFault(Gateway("op", errors.New("down"))) {
		t.Error("gateway errors are server faults")
	}
	if IsClientFault(errors.New("bare")) {
		t.Error("unclassified errors are server faults")
	}
}
