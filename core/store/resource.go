package store

import (
	"context"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/campus"
	"github.com/trezcool/campus/core/request"
)

// Deps are the collaborators shared by every store.
type Deps struct {
	Client    *request.Client
	Validator *Validator
	Logger    core.Logger
	Options   Options
}

func (d Deps) check(caller string) error {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(d.Client, "Client"),
		vala.IsNotNil(d.Validator, "Validator"),
		vala.IsNotNil(d.Logger, "Logger"),
	).Check(); err != nil {
		return errors.Wrap(err, caller)
	}
	return nil
}

// Validator checks payloads before they are sent to the API.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() *Validator {
	validate, translator := core.NewValidator()
	campus.InitValidators(validate, translator)
	return &Validator{validate: validate, translator: translator}
}

// Check validates a struct payload. Maps and other non struct payloads are not checked.
func (v *Validator) Check(payload interface{}) error {
	if payload == nil {
		return nil
	}
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}
	if _, ok := err.(*validator.InvalidValidationError); ok {
		return nil
	}
	return core.NewFieldsValidationError(err, v.translator)
}

// Fetcher is anything that can be loaded from the API.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, filters request.Filters) error
}

// Resource binds a Collection to its API endpoint.
type Resource[T campus.Entity] struct {
	*Collection[T]
	endpoint string
	unscoped bool
	client   *request.Client
	valid    *Validator
	logger   core.Logger
}

var _ Fetcher = (*Resource[campus.Student])(nil) // interface compliance check

func newResource[T campus.Entity](name, endpoint string, deps Deps) *Resource[T] {
	return &Resource[T]{
		Collection: NewCollection[T](name, deps.Options),
		endpoint:   endpoint,
		client:     deps.Client,
		valid:      deps.Validator,
		logger:     deps.Logger,
	}
}

// newUnscopedResource returns a Resource listed without the tenant segment.
func newUnscopedResource[T campus.Entity](name, endpoint string, deps Deps) *Resource[T] {
	r := newResource[T](name, endpoint, deps)
	r.unscoped = true
	return r
}

func (r *Resource[T]) Endpoint() string { return r.endpoint }

// Fetch loads the records matching filters, replacing the current ones on success.
// On failure the current records are kept and the error message is stored.
func (r *Resource[T]) Fetch(ctx context.Context, filters request.Filters) error {
	gen := r.begin()

	var env request.Envelope
	if r.unscoped {
		env = r.client.GetUnscoped(ctx, r.endpoint, filters)
	} else {
		env = r.client.Get(ctx, r.endpoint, filters)
	}

	var items []T
	err := env.Decode(&items)
	if !r.finish(gen, items, err) {
		r.logger.Debug("stale response discarded", map[string]interface{}{"collection": r.name, "generation": gen})
	}
	return err
}

// Create validates rec, sends it and appends the record the API returned.
func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var created T
	if err := r.valid.Check(rec); err != nil {
		return created, err
	}
	env := r.client.SendMutation(ctx, rest.Post, r.endpoint, "", rec)
	if err := env.Decode(&created); err != nil {
		return created, err
	}
	r.add(created)
	return created, nil
}

// Update sends a partial update of the record id and replaces it with the record the API returned.
func (r *Resource[T]) Update(ctx context.Context, id string, patch interface{}) (T, error) {
	if err := r.valid.Check(patch); err != nil {
		var zero T
		return zero, err
	}
	return r.mutate(ctx, rest.Put, r.endpoint, id, patch)
}

// Delete removes the record id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if err := r.client.SendMutation(ctx, rest.Delete, r.endpoint, id, nil).Err(); err != nil {
		return err
	}
	r.remove(id)
	return nil
}

// patch sends a PATCH to a sub-resource of the record id (e.g. /status).
func (r *Resource[T]) patch(ctx context.Context, id, sub string, body interface{}) (T, error) {
	return r.mutate(ctx, rest.Patch, request.JoinPath(r.endpoint, id), sub, body)
}

func (r *Resource[T]) mutate(ctx context.Context, method rest.Method, endpoint, id string, body interface{}) (T, error) {
	var updated T
	env := r.client.SendMutation(ctx, method, endpoint, id, body)
	if err := env.Decode(&updated); err != nil {
		return updated, err
	}
	r.replace(updated)
	return updated, nil
}

// FetchAll fetches every collection concurrently with the same filters and returns the first error.
// Collections are independent: a failing fetch does not stop the others.
func FetchAll(ctx context.Context, filters request.Filters, fetchers ...Fetcher) error {
	var wg sync.WaitGroup
	errs := make([]error, len(fetchers))
	for i, f := range fetchers {
		wg.Add(1)
		go func(i int, f Fetcher) {
			defer wg.Done()
			if err := f.Fetch(ctx, filters); err != nil {
				errs[i] = errors.Wrapf(err, "fetching %s", f.Name())
			}
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
