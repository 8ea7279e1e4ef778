package builder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-courier/logr"
)

func NewResolver(model SourceModel) *Resolver {
	return &Resolver{model: model}
}

// Resolver lists field descriptors of a type.
type Resolver struct {
	model SourceModel
}

// Resolve returns fields of typeRef in declaration order, duplicates kept as is.
func (r *Resolver) Resolve(ctx context.Context, typeRef string) ([]FieldDescriptor, error) {
	_, l := logr.FromContext(ctx).Start(ctx, "Resolve", slog.String("target", typeRef))
	defer l.End()

	if typeRef == "" {
		return nil, resolutionErrorf(typeRef, nil, "empty type reference")
	}

	fields, err := r.model.FieldsOf(ctx, typeRef)
	if err != nil {
		resolutionErr := &ResolutionError{}
		if errors.As(err, &resolutionErr) {
			return nil, resolutionErr
		}
		return nil, resolutionErrorf(typeRef, err, "type not found")
	}

	if len(fields) == 0 {
		return nil, resolutionErrorf(typeRef, nil, "no accessible fields")
	}

	for _, f := range fields {
		if f.Type == "" {
			return nil, resolutionErrorf(typeRef, nil, "type of field `%s` unresolved", f.Name)
		}
	}

	l.Debug("fields: %s", spew.Sdump(fields))

	return append([]FieldDescriptor(nil), fields...), nil
}
