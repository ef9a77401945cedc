package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/go-playground/validator/v10"

	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// typedTool decodes arguments into I, validates them and runs the handler.
// Failures never escape as errors: they become {"error": ...} payloads so the
// model can read them and the turn continues.
type typedTool[I, O any] struct {
	info     *schema.ToolInfo
	validate *validator.Validate
	run      func(ctx context.Context, in *I) (O, error)
}

func newTool[I, O any](info *schema.ToolInfo, v *validator.Validate, run func(ctx context.Context, in *I) (O, error)) tool.InvokableTool {
	return &typedTool[I, O]{info: info, validate: v, run: run}
}

func (t *typedTool[I, O]) Info(_ context.Context) (*schema.ToolInfo, error) {
	return t.info, nil
}

func (t *typedTool[I, O]) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in := new(I)
	if s := strings.TrimSpace(argumentsInJSON); s != "" && s != "null" {
		if err := json.Unmarshal([]byte(s), in); err != nil {
			return ErrorPayload(errx.InvalidArgument("invalid arguments for "+t.info.Name, err)), nil
		}
	}

	if err := t.validate.Struct(in); err != nil {
		var invalid *validator.InvalidValidationError
		if !errors.As(err, &invalid) {
			return ErrorPayload(errx.Validation("invalid arguments for "+t.info.Name, err)), nil
		}
	}

	out, err := t.run(ctx, in)
	if err != nil {
		logx.Warn().Err(err).Str("tool_name", t.info.Name).Msg("tool returned an error payload")
		return ErrorPayload(err), nil
	}

	b, err := json.Marshal(out)
	if err != nil {
		return ErrorPayload(errx.Internal(err)), nil
	}
	return string(b), nil
}

// ErrorPayload renders err as the JSON object tools return on failure.
func ErrorPayload(err error) string {
	b, mErr := json.Marshal(map[string]string{"error": err.Error()})
	if mErr != nil {
		return `{"error":"internal server error"}`
	}
	return string(b)
}
