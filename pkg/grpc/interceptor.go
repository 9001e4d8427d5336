package grpc

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
)

const metadataKeyAuthorization = "authorization"

type claimsKey struct{}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

func userLimiterKey(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// CreateAuthInterceptor requires a valid session token in the authorization metadata and
// stores its claims on the context.
func (s *MaintenanceServer) CreateAuthInterceptor() grpc.UnaryServerInterceptor {
	logger := common.GetLoggerWith(common.LoggerNameGrpcServer)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get(metadataKeyAuthorization)
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing session token")
		}

		claims, err := s.Sessions.Parse(values[0])
		if err != nil {
			logger.Debug("Rejected call", zap.String("method", info.FullMethod), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		return handler(context.WithValue(ctx, claimsKey{}, claims), req)
	}
}

// CreateRateLimitInterceptor throttles targetMethods per signed-in user. It must run after the
// auth interceptor.
func (s *MaintenanceServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			if claims, ok := ClaimsFromContext(ctx); ok {
				if !s.CheckUserLimiter(userLimiterKey(claims.UserID)) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
