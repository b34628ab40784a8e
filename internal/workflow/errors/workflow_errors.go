package workflowerrors

import (
	"net/http"

	"github.com/naywayne90/arti-key-web/internal/shared/apperror"
)

var (
	ErrUnknownAction = apperror.New(
		apperror.CodeInvalidInput,
		"unknown workflow action",
		http.StatusBadRequest,
	)
	ErrRoleNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"your role is not allowed to perform this action",
		http.StatusForbidden,
	)
	ErrNotManagerOfDepartment = apperror.New(
		apperror.CodeForbidden,
		"managers may only act on requests from their own department",
		http.StatusForbidden,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"this action is not allowed from the request's current state",
		http.StatusConflict,
	)
	ErrRequestTerminal = apperror.New(
		apperror.CodeInvalidState,
		"the request already reached a terminal state",
		http.StatusConflict,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a comment is required for rejection actions",
		http.StatusBadRequest,
	)
	ErrQuotaDeltaRequired = apperror.New(
		apperror.CodeInvalidInput,
		"quota_delta is required for a quota adjustment action",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor employee id",
		http.StatusBadRequest,
	)
	ErrTransitionConflict = apperror.New(
		apperror.CodeConflict,
		"another transition was applied concurrently, reload and retry",
		http.StatusConflict,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrHistoryNotVisible = apperror.New(
		apperror.CodeForbidden,
		"you do not have access to this request's history",
		http.StatusForbidden,
	)
)
