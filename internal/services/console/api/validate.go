package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateBody checks a request body before anything is sent.
func (c *Client) validateBody(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return platformerrors.Wrap(platformerrors.CodeAPIInvalidArgument, err.Error(), err)
	}
	metadata := map[string]string{platformerrors.MetaField: fieldErrs[0].Field()}
	message := c.messages.Format(string(platformerrors.CodeAPIInvalidArgument), metadata)
	return platformerrors.WrapWithMetadata(platformerrors.CodeAPIInvalidArgument, message, metadata, err)
}

// requireName rejects blank path identifiers.
func (c *Client) requireName(field, value string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	metadata := map[string]string{platformerrors.MetaField: field}
	message := c.messages.Format(string(platformerrors.CodeAPIInvalidArgument), metadata)
	return platformerrors.WithMetadata(platformerrors.CodeAPIInvalidArgument, message, metadata)
}
