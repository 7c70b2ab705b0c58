package response

import (
	"net/http"

	"github.com/hris-authority/attendance-payroll/internal/apperr"
)

// HandleError writes err as a response envelope. A business error (one
// carrying an apperr.Code) is always written as a 200 with success=false
// and its code. Anything else is an infrastructure failure: it is
// surfaced as a generic 500, and the caller is expected to have already
// logged the underlying error.
func HandleError(w http.ResponseWriter, err error) {
	if code, ok := apperr.CodeOf(err); ok {
		Fail(w, err.Error(), string(code))
		return
	}
	InfrastructureFailure(w, http.StatusInternalServerError, err.Error())
}
