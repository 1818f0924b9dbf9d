package params

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrEmptyID        = errors.New("empty parameter id")
	ErrDuplicateID    = errors.New("duplicate parameter id")
	ErrNoChoices      = errors.New("select has no choices")
	ErrDefaultOutside = errors.New("default outside declared options")
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks the caller responsibilities the constructors leave open:
// non-empty and unique ids, non-empty select choices, and defaults that sit
// inside their declared options. It reports every problem found. Nothing in
// this module calls it implicitly.
func Validate(list []Parameter) error {
	var errs []error
	seen := make(map[string]struct{}, len(list))
	for i, p := range list {
		if p.ID() == "" {
			errs = append(errs, fmt.Errorf("parameter %d: %w", i, ErrEmptyID))
		} else if _, dup := seen[p.ID()]; dup {
			errs = append(errs, fmt.Errorf("parameter %q: %w", p.ID(), ErrDuplicateID))
		}
		seen[p.ID()] = struct{}{}

		if err := validateDefault(p); err != nil {
			errs = append(errs, fmt.Errorf("parameter %q: %w", p.ID(), err))
		}
	}
	return errors.Join(errs...)
}

func validateDefault(p Parameter) error {
	switch v := p.(type) {
	case Number:
		def, ok := v.Default()
		opts, hasOpts := v.Options()
		if !ok || !hasOpts {
			return nil
		}
		if (opts.Min != nil && def < *opts.Min) || (opts.Max != nil && def > *opts.Max) {
			return fmt.Errorf("%w: %v", ErrDefaultOutside, def)
		}
	case BigInt:
		def, ok := v.Default()
		opts, hasOpts := v.Options()
		if !ok || !hasOpts {
			return nil
		}
		if (opts.Min != nil && def.Cmp(opts.Min) < 0) || (opts.Max != nil && def.Cmp(opts.Max) > 0) {
			return fmt.Errorf("%w: %s", ErrDefaultOutside, def)
		}
	case String:
		def, ok := v.Default()
		opts, hasOpts := v.Options()
		if !ok || !hasOpts {
			return nil
		}
		n := len([]rune(def))
		if (opts.MinLength != nil && n < *opts.MinLength) || (opts.MaxLength != nil && n > *opts.MaxLength) {
			return fmt.Errorf("%w: length %d", ErrDefaultOutside, n)
		}
	case Select:
		choices := v.Choices()
		if len(choices) == 0 {
			return ErrNoChoices
		}
		if def, ok := v.Default(); ok && !slices.Contains(choices, def) {
			return fmt.Errorf("%w: %q", ErrDefaultOutside, def)
		}
	}
	return nil
}
