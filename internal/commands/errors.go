package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so log pipelines and API
// consumers can route blog command failures without parsing messages.
const (
	codeValidation      = "BLOG_COMMAND_INVALID"
	codeCanceled        = "BLOG_COMMAND_CANCELED"
	codeDeadline        = "BLOG_COMMAND_DEADLINE"
	codeContextFailure  = "BLOG_COMMAND_CONTEXT_FAILURE"
	codeExecutionFailed = "BLOG_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "blog command rejected by validation").
		WithTextCode(codeValidation)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "blog command canceled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "blog command exceeded its deadline").
			WithTextCode(codeDeadline)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "blog command context failed").
			WithTextCode(codeContextFailure)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "blog command failed").
		WithTextCode(codeExecutionFailed)
}
