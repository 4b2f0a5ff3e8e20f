package pvclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus_String(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.String())
	assert.Equal(t, "NotFound", StatusNotFound.String())
	assert.Equal(t, "ImATeapot", StatusImATeapot.String())
	assert.Equal(t, "HTTPStatus(299)", HTTPStatus(299).String())
}

func TestHTTPStatus_Known(t *testing.T) {
	assert.True(t, StatusInternalServerError.Known())
	assert.True(t, StatusUnused.Known())
	assert.False(t, HTTPStatus(299).Known())
	assert.False(t, HTTPStatus(0).Known())
}

func TestHTTPStatus_MatchesNetHTTP(t *testing.T) {
	for status := range statusNames {
		if status == StatusUnused {
			continue
		}
		assert.NotEmpty(t, http.StatusText(int(status)), "status %d", int(status))
	}
}

func TestHTTPStatus_Class(t *testing.T) {
	tests := []struct {
		status HTTPStatus
		class  int
		check  func(HTTPStatus) bool
	}{
		{StatusContinue, 1, HTTPStatus.IsInformational},
		{StatusOK, 2, HTTPStatus.IsSuccess},
		{StatusNoContent, 2, HTTPStatus.IsSuccess},
		{StatusPermanentRedirect, 3, HTTPStatus.IsRedirection},
		{StatusNotFound, 4, HTTPStatus.IsClientError},
		{StatusInternalServerError, 5, HTTPStatus.IsServerError},
	}

	for _, test := range tests {
		assert.Equal(t, test.class, test.status.Class(), test.status.String())
		assert.True(t, test.check(test.status), test.status.String())
	}

	assert.False(t, StatusNotFound.IsSuccess())
	assert.False(t, HTTPStatus(199).IsSuccess())
	assert.True(t, HTTPStatus(299).IsSuccess())
}
