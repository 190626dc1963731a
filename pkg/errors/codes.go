package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeValidation     ErrorCode = "COMMON_004"
	ErrCodeNotImplemented ErrorCode = "COMMON_005"
)

// Reaction module error codes.
const (
	// ErrCodeReactionFormat marks a reaction string that does not contain
	// exactly two '>' group separators, or a factory input without a '>>'.
	ErrCodeReactionFormat ErrorCode = "RXN_001"

	// ErrCodeEqualityType marks a comparison between an enzymatic reaction
	// and a value of a different type.
	ErrCodeEqualityType ErrorCode = "RXN_002"

	// ErrCodeECDepth marks an EC number with more than four levels.
	ErrCodeECDepth ErrorCode = "RXN_003"
)

// Molecule module error codes.
const (
	ErrCodeMoleculeInvalidSMILES ErrorCode = "MOL_001"
	ErrCodeInvalidPattern        ErrorCode = "MOL_002"
)

// Tokenizer module error codes.
const (
	ErrCodeTokenization ErrorCode = "TOK_001"
)

// Short aliases used at call sites throughout the engine.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	CodeReactionFormat = ErrCodeReactionFormat
	CodeEqualityType   = ErrCodeEqualityType
	CodeECDepth        = ErrCodeECDepth
	CodeInvalidSMILES  = ErrCodeMoleculeInvalidSMILES
	CodeInvalidPattern = ErrCodeInvalidPattern
	CodeTokenization   = ErrCodeTokenization
)
