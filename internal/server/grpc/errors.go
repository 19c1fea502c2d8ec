package grpc

import (
	"errors"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. The message carries the
// sentinel text so the client can map it back.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrAuthRequired):
		return status.Error(codes.Unauthenticated, common.ErrAuthRequired.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, common.ErrorValidation.Error())
	case errors.Is(err, common.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, common.ErrInvalidAmount.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}
