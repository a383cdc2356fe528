package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeGameInProgress     = "GAME_ALREADY_IN_PROGRESS"
	ErrCodeGameNotInProgress  = "GAME_NOT_IN_PROGRESS"
	ErrCodeAidAlreadyUsed     = "AID_ALREADY_USED"
	ErrCodeNotEnoughQuestions = "NOT_ENOUGH_QUESTIONS"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "GAME_ALREADY_IN_PROGRESS")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewGameAlreadyInProgressError signals that the player already has an
// unfinished game. The existing game id is included so callers can point
// the player back at it.
func NewGameAlreadyInProgressError(gameID int64) *AppError {
	return &AppError{
		Code:    ErrCodeGameInProgress,
		Message: fmt.Sprintf("a game is already in progress: %d", gameID),
		Status:  409,
	}
}

// NewGameNotInProgressError creates an error for actions on a finished game
func NewGameNotInProgressError() *AppError {
	return &AppError{
		Code:    ErrCodeGameNotInProgress,
		Message: "game is not in progress",
		Status:  409,
	}
}

// NewAidAlreadyUsedError creates an error for a repeated help request
func NewAidAlreadyUsedError(kind string) *AppError {
	return &AppError{
		Code:    ErrCodeAidAlreadyUsed,
		Message: fmt.Sprintf("help %q was already used in this game", kind),
		Status:  409,
	}
}

// NewNotEnoughQuestionsError signals that the question bank cannot supply a
// required difficulty level. This is a data problem, not a player mistake.
func NewNotEnoughQuestionsError(level int) *AppError {
	return &AppError{
		Code:    ErrCodeNotEnoughQuestions,
		Message: fmt.Sprintf("question bank has no questions for level %d", level),
		Status:  500,
	}
}
