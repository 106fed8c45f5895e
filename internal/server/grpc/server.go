// Package grpc exposes the gateway services over the PageKeeper gRPC
// service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/pagekeeper/internal/logging"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/rpc"
	srvmodels "github.com/dmitrijs2005/pagekeeper/internal/server/models"
	"github.com/dmitrijs2005/pagekeeper/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*srvmodels.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) (string, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	UserIDFromAccessToken(token string) (string, error)
}

type PageService interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetPageByPath(ctx context.Context, path string) (*models.Page, error)
	GetPageByUserID(ctx context.Context, userID string) (*models.Page, error)
	UpsertProfile(ctx context.Context, callerID string, p *models.Profile) (*models.Profile, error)
	UpsertPage(ctx context.Context, callerID string, p *models.Page) (*models.Page, error)
}

type AvatarService interface {
	UploadSlot(ctx context.Context, userID, contentType string) (*services.AvatarSlot, error)
}

type GRPCServer struct {
	rpc.UnimplementedPageKeeperServer
	address string
	users   UserService
	pages   PageService
	avatars AvatarService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ps PageService, as AvatarService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		pages:   ps,
		avatars: as,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	rpc.RegisterPageKeeperServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	// starts accepting incoming connections
	return srv.Serve(lis)
}
