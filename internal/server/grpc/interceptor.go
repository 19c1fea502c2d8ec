package grpc

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/api/marketv1"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	requestIDKey ctxKey = "requestID"
)

// publicMethods do not require an access token.
var publicMethods = map[string]struct{}{
	marketv1.FullMethod(marketv1.MethodRegister): {},
	marketv1.FullMethod(marketv1.MethodLogin):    {},
	marketv1.FullMethod(marketv1.MethodPing):     {},
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, common.ErrAuthRequired.Error())
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}

// observeInterceptor tags each call with a request id, logs its outcome and
// records RPC metrics.
func (s *GRPCServer) observeInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	method := path.Base(info.FullMethod)

	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	code := status.Code(err)
	s.metrics.observe(method, code.String(), elapsed.Seconds())

	args := []any{"request_id", requestID, "method", method, "code", code.String(), "duration", elapsed}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "rpc failed", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "rpc rejected", append(args, "error", err)...)
	}

	return resp, err
}
