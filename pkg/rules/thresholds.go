package rules

import "errors"

// Thresholds are the fixed limits the heuristics use.
// They are not runtime configurable; DefaultThresholds returns
// the values every checker is calibrated for. Tests may override them.
type Thresholds struct {
	// MagicNumberDigits is the minimum length of a bare numeral
	// which is reported as a magic number.
	MagicNumberDigits int
	// ExpressionLength is the parameter JSON length, in UTF-16 code
	// units, above which expressions are counted.
	ExpressionLength int
	// ExpressionCount is the number of expressions above which
	// a node is too complex.
	ExpressionCount int
	// ErrorHandlingRatio is the minimum fraction of API-like nodes
	// which should have explicit error handling.
	ErrorHandlingRatio float64
	// LayoutTolerance is how far a node may be placed behind its
	// predecessor on both axes before the layout is disorganized.
	LayoutTolerance float64
	// DuplicateTypeCount is the number of nodes of one type above
	// which consolidation is suggested.
	DuplicateTypeCount int
	// EnvAdvisoryNodes is the number of nodes above which workflows
	// are expected to reference environment variables.
	EnvAdvisoryNodes int

	RateLimitNodes  int
	PaginationNodes int
	SetNodes        int

	// SlowExecution is the estimated duration above which
	// a workflow is slow.
	SlowExecution float64

	// Cost table of the execution time estimate, in seconds.
	HTTPCost        float64
	DatabaseCost    float64
	SpreadsheetCost float64
	DefaultWaitCost float64
	OtherCost       float64
}

// DefaultThresholds returns the default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MagicNumberDigits:  4,
		ExpressionLength:   500,
		ExpressionCount:    5,
		ErrorHandlingRatio: 0.5,
		LayoutTolerance:    200,
		DuplicateTypeCount: 3,
		EnvAdvisoryNodes:   2,
		RateLimitNodes:     5,
		PaginationNodes:    2,
		SetNodes:           5,
		SlowExecution:      30,
		HTTPCost:           2,
		DatabaseCost:       1,
		SpreadsheetCost:    3,
		DefaultWaitCost:    1,
		OtherCost:          0.1,
	}
}

func (t Thresholds) Validate() error {
	if t.MagicNumberDigits < 1 {
		return errors.New("thresholds: MagicNumberDigits must be at least 1")
	}
	if t.ErrorHandlingRatio < 0 || t.ErrorHandlingRatio > 1 {
		return errors.New("thresholds: ErrorHandlingRatio must be between 0 and 1")
	}
	return nil
}
