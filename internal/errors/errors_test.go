package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocServeError_ErrorIncludesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, CategoryFileSystem, SeverityError, "read failed")
	require.Contains(t, err.Error(), "read failed")
	require.Contains(t, err.Error(), "boom")
	require.Equal(t, cause, err.Unwrap())
}

func TestIsCategory_UnwrapsWrappedErrors(t *testing.T) {
	inner := NotFoundError("no such document")
	outer := fmt.Errorf("compose: %w", inner)
	require.True(t, IsCategory(outer, CategoryNotFound))
	require.False(t, IsCategory(outer, CategoryValidation))
}

func TestCategoryOf_UnclassifiedIsInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, CategoryOf(fmt.Errorf("plain")))
}

func TestHTTPErrorAdapter_StatusCodes(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ValidationError("bad slug"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{ComposeError("cycle"), http.StatusUnprocessableEntity},
		{New(CategoryRuntime, SeverityError, "shutting down"), http.StatusServiceUnavailable},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, adapter.StatusCodeFor(tc.err))
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tree/children", nil)

	err := ValidationError("not a directory").WithContext("slug", "guide/intro")
	adapter.WriteErrorResponse(rec, req, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "not a directory")
	require.Contains(t, rec.Body.String(), "guide/intro")
}

func TestHTTPErrorAdapter_UnclassifiedErrorIsOpaque(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	resp := adapter.FormatErrorResponse(fmt.Errorf("secret database path"))
	require.Equal(t, "internal server error", resp.Error)
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	require.Equal(t, 0, adapter.ExitCodeFor(nil))
	require.Equal(t, 2, adapter.ExitCodeFor(ValidationError("x")))
	require.Equal(t, 4, adapter.ExitCodeFor(NotFoundError("x")))
	require.Equal(t, 11, adapter.ExitCodeFor(ComposeError("x")))
	require.Equal(t, 1, adapter.ExitCodeFor(fmt.Errorf("plain")))
}

func TestCLIErrorAdapter_FormatVerbose(t *testing.T) {
	err := ComposeError("circular include")
	terse := NewCLIErrorAdapter(false, nil).FormatError(err)
	verbose := NewCLIErrorAdapter(true, nil).FormatError(err)
	require.Equal(t, "compose: circular include", terse)
	require.Contains(t, verbose, "error")
}
