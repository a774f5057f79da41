package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	roomMissing := New(KindNotFound, "room not found")
	wrapped := fmt.Errorf("load room: %w", roomMissing)

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind sentinel", roomMissing, ErrNotFound, true},
		{"wrapped sentinel", wrapped, ErrNotFound, true},
		{"same instance", wrapped, roomMissing, true},
		{"other kind", roomMissing, ErrConflict, false},
		{"same kind other message", roomMissing, New(KindNotFound, "guest not found"), false},
		{"plain error", errors.New("boom"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", New(KindNotFound, "booking not found"), http.StatusNotFound},
		{"conflict", New(KindConflict, "room is not available"), http.StatusBadRequest},
		{"transition", New(KindInvalidTransition, "booking must be confirmed"), http.StatusBadRequest},
		{"validation", fmt.Errorf("create: %w", New(KindValidation, "bad dates")), http.StatusBadRequest},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageHidesInternalErrors(t *testing.T) {
	if got := Message(errors.New("dial tcp 10.0.0.1:3306: refused")); got != "internal server error" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(New(KindConflict, "room number already exists")); got != "room number already exists" {
		t.Errorf("Message() = %q", got)
	}
}
