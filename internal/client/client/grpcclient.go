package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
	"github.com/dmitrijs2005/pagekeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.PageKeeperClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()
	if access == "" || method == rpc.FullMethod(rpc.MethodRefreshToken) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewPageKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewPageKeeperClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, username string, salt []byte, verifier []byte) (string, error) {
	resp, err := s.client.RegisterUser(ctx, &rpc.RegisterUserRequest{Username: username, Salt: salt, Verifier: verifier})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.UserID, nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &rpc.GetSaltRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

// Login authenticates and keeps the issued tokens for subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, username string, verifier []byte) (string, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: username, Verifier: verifier})
	if err != nil {
		return "", s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.UserID, nil
}

func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &rpc.GetProfileRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Profile == nil {
		return nil, common.ErrorNotFound
	}
	return resp.Profile, nil
}

func (s *GRPCClient) GetPageByPath(ctx context.Context, path string) (*models.Page, error) {
	resp, err := s.client.GetPageByPath(ctx, &rpc.GetPageByPathRequest{Path: path})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Page == nil {
		return nil, common.ErrorNotFound
	}
	return resp.Page, nil
}

func (s *GRPCClient) GetPageByUserID(ctx context.Context, userID string) (*models.Page, error) {
	resp, err := s.client.GetPageByUserID(ctx, &rpc.GetPageByUserIDRequest{UserID: userID})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Page == nil {
		return nil, common.ErrorNotFound
	}
	return resp.Page, nil
}

func (s *GRPCClient) UpsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	resp, err := s.client.UpsertProfile(ctx, &rpc.UpsertProfileRequest{Profile: p})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) UpsertPage(ctx context.Context, p *models.Page) (*models.Page, error) {
	resp, err := s.client.UpsertPage(ctx, &rpc.UpsertPageRequest{Page: p})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Page, nil
}

func (s *GRPCClient) GetAvatarUploadURL(ctx context.Context, contentType string) (*AvatarUpload, error) {
	resp, err := s.client.GetAvatarUploadURL(ctx, &rpc.GetAvatarUploadURLRequest{ContentType: contentType})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &AvatarUpload{Key: resp.Key, UploadURL: resp.UploadURL, PublicURL: resp.PublicURL}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return common.ErrorForbidden
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return common.ErrorInvalidInput
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
