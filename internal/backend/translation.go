package backend

import (
	"context"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
	"github.com/houhuawei23/text-processing-tool/internal/translate"
)

// Translation bridges the translation service into the backend contract
type Translation struct {
	Service *translate.Service
}

// Submit translates the input using the task's prompt and service
func (t Translation) Submit(ctx context.Context, input string, params domain.Params) (domain.Result, error) {
	return t.Service.Translate(ctx, input, params.Prompt, params.Service)
}
