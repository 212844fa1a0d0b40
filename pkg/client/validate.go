package client

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/wataki/wataki-go/pkg/apierrors"
)

// validator collects argument problems so they are all reported at once.
type validator struct {
	errs *multierror.Error
}

func (v *validator) required(name, value string) *validator {
	if value == "" {
		v.errs = multierror.Append(v.errs, fmt.Errorf("%s is required", name))
	}
	return v
}

func (v *validator) check(ok bool, format string, args ...interface{}) *validator {
	if !ok {
		v.errs = multierror.Append(v.errs, fmt.Errorf(format, args...))
	}
	return v
}

func (v *validator) err() error {
	if v.errs == nil {
		return nil
	}
	v.errs.ErrorFormat = inlineFormat
	return apierrors.NewInvalidRequestError(v.errs.ErrorOrNil())
}

func inlineFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func requireID(name, value string) error {
	return (&validator{}).required(name, value).err()
}
