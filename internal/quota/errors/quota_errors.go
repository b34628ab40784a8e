package quotaerrors

import (
	"net/http"

	"github.com/naywayne90/arti-key-web/internal/shared/apperror"
)

var (
	ErrQuotaExceeded = apperror.New(
		apperror.CodeQuotaExceeded,
		"leave quota exceeded for this employee and leave type",
		http.StatusUnprocessableEntity,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required for a quota adjustment",
		http.StatusBadRequest,
	)
	ErrAdjustmentUnderflow = apperror.New(
		apperror.CodeQuotaExceeded,
		"adjustment would leave remaining days below zero",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrLedgerNotFound = apperror.New(
		apperror.CodeNotFound,
		"quota ledger entry not found",
		http.StatusNotFound,
	)
)
