package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidStrategy      ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeUnsupportedOperator  ErrorCode = 120
	ErrCodeUnsupportedSignal    ErrorCode = 121
	ErrCodeInvalidBalance       ErrorCode = 122

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound        ErrorCode = 200
	ErrCodeMissingField        ErrorCode = 201
	ErrCodeNoDataFound         ErrorCode = 204
	ErrCodeUnorderedSeries     ErrorCode = 205
	ErrCodeDataFileReadFailed  ErrorCode = 206
	ErrCodeUnsupportedDataFile ErrorCode = 207

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyLoadFailed ErrorCode = 400
	ErrCodeVersionMismatch    ErrorCode = 404

	// Backtest errors (600-699)
	ErrCodeBacktestAborted   ErrorCode = 600
	ErrCodeBacktestCancelled ErrorCode = 601
	ErrCodeCallbackFailed    ErrorCode = 602

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidInterval       ErrorCode = 703
	ErrCodeInvalidProvider       ErrorCode = 704
)
