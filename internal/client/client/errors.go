package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrUnavailable = errors.New("server unavailable")

// mapError converts a gRPC status into the matching sentinel.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.Unauthenticated:
		if st.Message() == common.ErrorUnauthorized.Error() {
			return common.ErrorUnauthorized
		}
		return fmt.Errorf("%w: %s", common.ErrAuthRequired, st.Message())
	case codes.InvalidArgument:
		if st.Message() == common.ErrInvalidAmount.Error() {
			return common.ErrInvalidAmount
		}
		return common.ErrorValidation
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, st.Message())
	}
}
