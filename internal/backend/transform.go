package backend

import (
	"context"
	"errors"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
	"github.com/houhuawei23/text-processing-tool/internal/textops"
)

// TextTransform runs format/statistics/analysis operations in-process
type TextTransform struct{}

// Submit executes the requested operations against the input text.
// When no operations are named, all of them run.
func (TextTransform) Submit(_ context.Context, input string, params domain.Params) (domain.Result, error) {
	ops := params.Operations
	if len(ops) == 0 {
		ops = domain.DefaultOperations
	}

	result := &domain.TextTransformResult{
		ProcessedText: input,
		Operations:    ops,
	}
	for _, op := range ops {
		switch op {
		case domain.OpFormat:
			result.ProcessedText = textops.Format(input)
		case domain.OpStatistics:
			result.Statistics = textops.Statistics(input)
		case domain.OpAnalysis:
			result.AnalysisData = textops.Analyze(input)
		}
	}
	return result, nil
}

// RegexTransform applies user-supplied replacement rules in order
type RegexTransform struct{}

// Submit applies the rules; an invalid pattern fails the task with an
// error naming the bad rule.
func (RegexTransform) Submit(_ context.Context, input string, params domain.Params) (domain.Result, error) {
	if len(params.Rules) == 0 {
		return nil, errors.New("regex rules cannot be empty")
	}
	processed, err := textops.ApplyRules(input, params.Rules)
	if err != nil {
		return nil, err
	}
	return &domain.RegexTransformResult{
		ProcessedText: processed,
		RulesApplied:  len(params.Rules),
	}, nil
}
