package rpc

import (
	"context"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	MethodRegisterUser       = "RegisterUser"
	MethodGetSalt            = "GetSalt"
	MethodLogin              = "Login"
	MethodRefreshToken       = "RefreshToken"
	MethodPing               = "Ping"
	MethodGetProfile         = "GetProfile"
	MethodGetPageByPath      = "GetPageByPath"
	MethodGetPageByUserID    = "GetPageByUserID"
	MethodUpsertProfile      = "UpsertProfile"
	MethodUpsertPage         = "UpsertPage"
	MethodGetAvatarUploadURL = "GetAvatarUploadURL"
)

// FullMethod returns the "/service/method" name gRPC routes on.
func FullMethod(method string) string {
	return "/" + common.ServiceName + "/" + method
}

// PageKeeperServer is implemented by the remote gateway.
type PageKeeperServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	GetPageByPath(context.Context, *GetPageByPathRequest) (*PageResponse, error)
	GetPageByUserID(context.Context, *GetPageByUserIDRequest) (*PageResponse, error)
	UpsertProfile(context.Context, *UpsertProfileRequest) (*ProfileResponse, error)
	UpsertPage(context.Context, *UpsertPageRequest) (*PageResponse, error)
	GetAvatarUploadURL(context.Context, *GetAvatarUploadURLRequest) (*GetAvatarUploadURLResponse, error)
}

// UnimplementedPageKeeperServer answers every call with codes.Unimplemented.
// Embed it to satisfy PageKeeperServer partially.
type UnimplementedPageKeeperServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedPageKeeperServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, unimplemented(MethodRegisterUser)
}
func (UnimplementedPageKeeperServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, unimplemented(MethodGetSalt)
}
func (UnimplementedPageKeeperServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented(MethodLogin)
}
func (UnimplementedPageKeeperServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented(MethodRefreshToken)
}
func (UnimplementedPageKeeperServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedPageKeeperServer) GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodGetProfile)
}
func (UnimplementedPageKeeperServer) GetPageByPath(context.Context, *GetPageByPathRequest) (*PageResponse, error) {
	return nil, unimplemented(MethodGetPageByPath)
}
func (UnimplementedPageKeeperServer) GetPageByUserID(context.Context, *GetPageByUserIDRequest) (*PageResponse, error) {
	return nil, unimplemented(MethodGetPageByUserID)
}
func (UnimplementedPageKeeperServer) UpsertProfile(context.Context, *UpsertProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodUpsertProfile)
}
func (UnimplementedPageKeeperServer) UpsertPage(context.Context, *UpsertPageRequest) (*PageResponse, error) {
	return nil, unimplemented(MethodUpsertPage)
}
func (UnimplementedPageKeeperServer) GetAvatarUploadURL(context.Context, *GetAvatarUploadURLRequest) (*GetAvatarUploadURLResponse, error) {
	return nil, unimplemented(MethodGetAvatarUploadURL)
}

func unary[Req, Resp any](method string, call func(PageKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PageKeeperServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PageKeeperServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for the PageKeeper service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: common.ServiceName,
	HandlerType: (*PageKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegisterUser, PageKeeperServer.RegisterUser),
		unary(MethodGetSalt, PageKeeperServer.GetSalt),
		unary(MethodLogin, PageKeeperServer.Login),
		unary(MethodRefreshToken, PageKeeperServer.RefreshToken),
		unary(MethodPing, PageKeeperServer.Ping),
		unary(MethodGetProfile, PageKeeperServer.GetProfile),
		unary(MethodGetPageByPath, PageKeeperServer.GetPageByPath),
		unary(MethodGetPageByUserID, PageKeeperServer.GetPageByUserID),
		unary(MethodUpsertProfile, PageKeeperServer.UpsertProfile),
		unary(MethodUpsertPage, PageKeeperServer.UpsertPage),
		unary(MethodGetAvatarUploadURL, PageKeeperServer.GetAvatarUploadURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pagekeeper.json",
}

func RegisterPageKeeperServer(s grpc.ServiceRegistrar, srv PageKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}
