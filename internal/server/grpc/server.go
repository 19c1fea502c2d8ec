// Package grpc exposes the marketplace services over gRPC using the
// marketv1 JSON contract.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/talentledger/internal/api/marketv1"
	"github.com/dmitrijs2005/talentledger/internal/logging"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (string, error)
}

type MarketService interface {
	ListCandidates(ctx context.Context, userID string) ([]*models.Candidate, error)
	ApprovedIDs(ctx context.Context) ([]string, error)
	FindPreferences(ctx context.Context, filter models.PreferenceFilter) ([]*models.Preference, error)
	UpsertPreference(ctx context.Context, p *models.Preference) error
	GetBalance(ctx context.Context, userID string) (int64, error)
	SetBalance(ctx context.Context, userID string, balance int64) error
	GetGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	PutGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	ListGrants(ctx context.Context, userID string) ([]*models.UnlockGrant, error)
	RecordUsage(ctx context.Context, u *models.Usage) (*models.Usage, error)
}

type PhotoService interface {
	PhotoURLs(ctx context.Context, candidateIDs []string) (map[string]string, error)
}

type GRPCServer struct {
	address   string
	users     UserService
	market    MarketService
	photos    PhotoService
	logger    logging.Logger
	jwtSecret []byte
	metrics   *rpcMetrics
}

// NewGRPCServer wires the services behind the marketv1 contract. RPC
// metrics are registered on reg when it is non-nil.
func NewGRPCServer(address string, l logging.Logger, us UserService, ms MarketService, ps PhotoService, secretKey string, reg prometheus.Registerer) *GRPCServer {
	m := &rpcMetrics{}
	m.Register(reg)
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		market:    ms,
		photos:    ps,
		jwtSecret: []byte(secretKey),
		metrics:   m,
	}
}

// NewServer builds a grpc.Server with the interceptor chain and the market
// service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.observeInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	marketv1.RegisterMarketServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
