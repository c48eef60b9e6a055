package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrSaveNotFound      = "SAVE_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrSameSquare        = "SAME_SQUARE"
	ErrEmptyOrigin       = "EMPTY_ORIGIN"
	ErrWrongColor        = "WRONG_COLOR"
	ErrOwnPiece          = "OWN_PIECE_AT_DESTINATION"
	ErrSelfCheck         = "ILLEGAL_SELF_CHECK"
	ErrMalformedSquare   = "MALFORMED_COORDINATE"
	ErrCorruptSave       = "CORRUPT_SAVE"
	ErrNothingToUndo     = "NOTHING_TO_UNDO"
	ErrGameOver          = "GAME_OVER"
	ErrSeatTaken         = "SEAT_TAKEN"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidFEN        = "INVALID_FEN"
	ErrInternalError     = "INTERNAL_ERROR"
	ErrStorageDisabled   = "STORAGE_DISABLED"
	ErrUnauthorized      = "UNAUTHORIZED"
)
