package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// PageKeeperClient is the client stub for the PageKeeper service.
type PageKeeperClient interface {
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	GetPageByPath(ctx context.Context, in *GetPageByPathRequest, opts ...grpc.CallOption) (*PageResponse, error)
	GetPageByUserID(ctx context.Context, in *GetPageByUserIDRequest, opts ...grpc.CallOption) (*PageResponse, error)
	UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpsertPage(ctx context.Context, in *UpsertPageRequest, opts ...grpc.CallOption) (*PageResponse, error)
	GetAvatarUploadURL(ctx context.Context, in *GetAvatarUploadURLRequest, opts ...grpc.CallOption) (*GetAvatarUploadURLResponse, error)
}

type pageKeeperClient struct {
	cc grpc.ClientConnInterface
}

func NewPageKeeperClient(cc grpc.ClientConnInterface) PageKeeperClient {
	return &pageKeeperClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pageKeeperClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *pageKeeperClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *pageKeeperClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *pageKeeperClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *pageKeeperClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *pageKeeperClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *pageKeeperClient) GetPageByPath(ctx context.Context, in *GetPageByPathRequest, opts ...grpc.CallOption) (*PageResponse, error) {
	return invoke[PageResponse](ctx, c.cc, MethodGetPageByPath, in, opts)
}

func (c *pageKeeperClient) GetPageByUserID(ctx context.Context, in *GetPageByUserIDRequest, opts ...grpc.CallOption) (*PageResponse, error) {
	return invoke[PageResponse](ctx, c.cc, MethodGetPageByUserID, in, opts)
}

func (c *pageKeeperClient) UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodUpsertProfile, in, opts)
}

func (c *pageKeeperClient) UpsertPage(ctx context.Context, in *UpsertPageRequest, opts ...grpc.CallOption) (*PageResponse, error) {
	return invoke[PageResponse](ctx, c.cc, MethodUpsertPage, in, opts)
}

func (c *pageKeeperClient) GetAvatarUploadURL(ctx context.Context, in *GetAvatarUploadURLRequest, opts ...grpc.CallOption) (*GetAvatarUploadURLResponse, error) {
	return invoke[GetAvatarUploadURLResponse](ctx, c.cc, MethodGetAvatarUploadURL, in, opts)
}
