// Package skinsrpc defines the Connect services of the skins server: their
// procedures, wire messages, and handler and client constructors.
package skinsrpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// SkinsServiceName is the fully-qualified name of the SkinsService.
	SkinsServiceName = "skins.v1.SkinsService"
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "skins.v1.AuthService"
)

// Procedure paths.
const (
	SkinsServiceCalculateSkinsProcedure = "/skins.v1.SkinsService/CalculateSkins"
	AuthServiceRegisterProcedure        = "/skins.v1.AuthService/Register"
	AuthServiceLoginProcedure           = "/skins.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure  = "/skins.v1.AuthService/GetCurrentUser"
)

// SkinsServiceHandler serves skins calculations.
type SkinsServiceHandler interface {
	CalculateSkins(context.Context, *connect.Request[CalculateSkinsRequest]) (*connect.Response[CalculateSkinsResponse], error)
}

// AuthServiceHandler serves account registration and login.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec),
		connect.WithCodec(jsonCharsetCodec),
	}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec)}, opts...)
}

// NewSkinsServiceHandler returns the mount path and handler for a SkinsService.
func NewSkinsServiceHandler(svc SkinsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	calculate := connect.NewUnaryHandler(
		SkinsServiceCalculateSkinsProcedure,
		svc.CalculateSkins,
		opts...,
	)
	return "/" + SkinsServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SkinsServiceCalculateSkinsProcedure:
			calculate.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewAuthServiceHandler returns the mount path and handler for an AuthService.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	register := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	login := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	currentUser := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			register.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			login.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			currentUser.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SkinsServiceClient calls a remote SkinsService.
type SkinsServiceClient struct {
	calculateSkins *connect.Client[CalculateSkinsRequest, CalculateSkinsResponse]
}

// NewSkinsServiceClient creates a client for the SkinsService at baseURL.
func NewSkinsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SkinsServiceClient {
	return &SkinsServiceClient{
		calculateSkins: connect.NewClient[CalculateSkinsRequest, CalculateSkinsResponse](
			httpClient,
			baseURL+SkinsServiceCalculateSkinsProcedure,
			clientOptions(opts)...,
		),
	}
}

// CalculateSkins calls skins.v1.SkinsService.CalculateSkins.
func (c *SkinsServiceClient) CalculateSkins(ctx context.Context, req *connect.Request[CalculateSkinsRequest]) (*connect.Response[CalculateSkinsResponse], error) {
	return c.calculateSkins.CallUnary(ctx, req)
}

// AuthServiceClient calls a remote AuthService.
type AuthServiceClient struct {
	register    *connect.Client[RegisterRequest, RegisterResponse]
	login       *connect.Client[LoginRequest, LoginResponse]
	currentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient creates a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:    connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:       connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		currentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

// Register calls skins.v1.AuthService.Register.
func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

// Login calls skins.v1.AuthService.Login.
func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// GetCurrentUser calls skins.v1.AuthService.GetCurrentUser.
func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.currentUser.CallUnary(ctx, req)
}

// BearerToken returns a client interceptor that sends token on every call.
func BearerToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient && token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
