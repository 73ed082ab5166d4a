package form

import (
	"context"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/model"
)

// Invoker runs a model. backend.Backend satisfies it.
type Invoker interface {
	InvokeModel(ctx context.Context, project string, inputs map[string]any) (*backend.InvokeResult, error)
}

// Submit validates values and, when they pass, invokes the model with the
// normalised inputs. Validation failures return a *ValidationError without
// calling the invoker. Invoker errors and handler error payloads come back as
// an insight error section with a nil error.
func Submit(ctx context.Context, invoker Invoker, project string, meta model.Meta, values map[string]any) ([]insight.Node, error) {
	if messages := Validate(meta, values); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	res, err := invoker.InvokeModel(ctx, project, Normalize(meta, values))
	if err != nil {
		return insight.ErrorResult(backend.Message(err)), nil
	}
	if res == nil {
		return nil, nil
	}
	if res.Failed() {
		return insight.ErrorResult(res.Error), nil
	}
	return res.Sections, nil
}
