// Maps domain errors to API errors.

package handlers

import (
	"errors"
	"net/http"

	"github.com/maruel/tabdb/internal/server/dto"
	"github.com/maruel/tabdb/internal/tabular"
)

// kinds maps each tabular error kind to its HTTP status and code.
var kinds = []struct {
	kind   error
	status int
	code   dto.ErrorCode
}{
	{tabular.ErrNotFound, http.StatusNotFound, dto.ErrorCodeNotFound},
	{tabular.ErrDuplicateName, http.StatusBadRequest, dto.ErrorCodeDuplicateName},
	{tabular.ErrMissingField, http.StatusBadRequest, dto.ErrorCodeMissingField},
	{tabular.ErrTypeMismatch, http.StatusBadRequest, dto.ErrorCodeTypeMismatch},
	{tabular.ErrStructureMismatch, http.StatusBadRequest, dto.ErrorCodeStructureMismatch},
	{tabular.ErrInvalidSchema, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{tabular.ErrIO, http.StatusInternalServerError, dto.ErrorCodeStorageError},
}

// toAPIError converts a storage error into an error carrying an HTTP status.
// Unknown errors become internal errors.
func toAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *dto.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var te *tabular.Error
	if !errors.As(err, &te) {
		return dto.InternalWithError("internal error", err)
	}
	for _, k := range kinds {
		if errors.Is(te.Kind, k.kind) {
			msg := te.Error()
			if k.kind == tabular.ErrIO {
				// The cause may leak file system details.
				msg = "failed to persist database"
			}
			return dto.NewAPIError(k.status, k.code, msg).WithDetails(te.Details()).Wrap(err)
		}
	}
	return dto.InternalWithError("internal error", err)
}
