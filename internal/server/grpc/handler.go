package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Unknown errors are logged
// and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, common.ErrorAlreadyExists.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrorInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	}
	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func (s *GRPCServer) callerID(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Internal, "no user in context")
	}
	return id, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *rpc.RegisterUserRequest) (*rpc.RegisterUserResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	user, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodRegisterUser, err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "user_id", user.ID)
	return &rpc.RegisterUserResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *rpc.GetSaltRequest) (*rpc.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetSalt, err)
	}
	return &rpc.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	userID, tokens, err := s.users.Login(ctx, req.Username, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodLogin, err)
	}
	return &rpc.LoginResponse{UserID: userID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodRefreshToken, err)
	}
	return &rpc.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.GetProfileRequest) (*rpc.ProfileResponse, error) {
	p, err := s.pages.GetProfile(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetProfile, err)
	}
	return &rpc.ProfileResponse{Profile: p}, nil
}

func (s *GRPCServer) GetPageByPath(ctx context.Context, req *rpc.GetPageByPathRequest) (*rpc.PageResponse, error) {
	p, err := s.pages.GetPageByPath(ctx, req.Path)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetPageByPath, err)
	}
	return &rpc.PageResponse{Page: p}, nil
}

func (s *GRPCServer) GetPageByUserID(ctx context.Context, req *rpc.GetPageByUserIDRequest) (*rpc.PageResponse, error) {
	p, err := s.pages.GetPageByUserID(ctx, req.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetPageByUserID, err)
	}
	return &rpc.PageResponse{Page: p}, nil
}

func (s *GRPCServer) UpsertProfile(ctx context.Context, req *rpc.UpsertProfileRequest) (*rpc.ProfileResponse, error) {
	callerID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.pages.UpsertProfile(ctx, callerID, req.Profile)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUpsertProfile, err)
	}

	s.logger.Info(ctx, "Profile saved", "user_id", callerID)
	return &rpc.ProfileResponse{Profile: p}, nil
}

func (s *GRPCServer) UpsertPage(ctx context.Context, req *rpc.UpsertPageRequest) (*rpc.PageResponse, error) {
	callerID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.pages.UpsertPage(ctx, callerID, req.Page)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUpsertPage, err)
	}

	s.logger.Info(ctx, "Page saved", "user_id", callerID, "path", p.Path)
	return &rpc.PageResponse{Page: p}, nil
}

func (s *GRPCServer) GetAvatarUploadURL(ctx context.Context, req *rpc.GetAvatarUploadURLRequest) (*rpc.GetAvatarUploadURLResponse, error) {
	callerID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}

	slot, err := s.avatars.UploadSlot(ctx, callerID, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetAvatarUploadURL, err)
	}
	return &rpc.GetAvatarUploadURLResponse{Key: slot.Key, UploadURL: slot.UploadURL, PublicURL: slot.PublicURL}, nil
}
