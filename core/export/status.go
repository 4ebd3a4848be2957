package export

import (
	"errors"

	"github.com/anoideaopen/mx/core/config"
	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/dispatch"
	"github.com/anoideaopen/mx/core/marker"
	"github.com/anoideaopen/mx/core/naming"
	"github.com/anoideaopen/mx/core/policy"
	"github.com/anoideaopen/mx/core/reflectx"
	"github.com/anoideaopen/mx/core/registry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{dispatch.ErrValidation, codes.InvalidArgument},
	{dispatch.ErrTypeNotFound, codes.InvalidArgument},
	{dispatch.ErrAmbiguous, codes.InvalidArgument},
	{dispatch.ErrAmbiguousType, codes.InvalidArgument},
	{descriptor.ErrAmbiguousSignature, codes.InvalidArgument},
	{descriptor.ErrTypeMismatch, codes.InvalidArgument},
	{naming.ErrMalformedName, codes.InvalidArgument},
	{config.ErrUnknownBehavior, codes.InvalidArgument},
	{reflectx.ErrInvalidArgumentValue, codes.InvalidArgument},
	{reflectx.ErrIncorrectArgumentCount, codes.InvalidArgument},
	{descriptor.ErrAttributeNotFound, codes.NotFound},
	{descriptor.ErrOperationNotFound, codes.NotFound},
	{registry.ErrNotRegistered, codes.NotFound},
	{descriptor.ErrNotReadable, codes.PermissionDenied},
	{descriptor.ErrNotWritable, codes.PermissionDenied},
	{ErrRegistrationConflict, codes.AlreadyExists},
	{registry.ErrAlreadyRegistered, codes.AlreadyExists},
	{descriptor.ErrDuplicateDefinition, codes.FailedPrecondition},
	{marker.ErrMalformedMarker, codes.FailedPrecondition},
	{policy.ErrMemberNotFound, codes.FailedPrecondition},
	{policy.ErrUnknownPolicy, codes.FailedPrecondition},
	{policy.ErrMissingParameter, codes.FailedPrecondition},
	{reflectx.ErrPanic, codes.Internal},
}

// Status maps err onto a gRPC status for transport adaptors. Errors returned by
// managed code are Unknown whatever they wrap. Panics and unrecognized errors are
// Internal.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	var invocation *descriptor.InvocationError
	if errors.As(err, &invocation) {
		if errors.Is(err, reflectx.ErrPanic) {
			return status.New(codes.Internal, err.Error())
		}
		return status.New(codes.Unknown, err.Error())
	}

	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return status.New(sc.code, err.Error())
		}
	}

	return status.New(codes.Internal, err.Error())
}
