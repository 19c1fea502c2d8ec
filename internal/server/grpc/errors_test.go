package grpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("wrap: %w", common.ErrorNotFound), codes.NotFound},
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrAuthRequired, codes.Unauthenticated},
		{common.ErrorValidation, codes.InvalidArgument},
		{common.ErrInvalidAmount, codes.InvalidArgument},
		{errors.New("db error: boom"), codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, status.Code(toStatus(tt.err)), tt.err.Error())
	}
	assert.NoError(t, toStatus(nil))
}
