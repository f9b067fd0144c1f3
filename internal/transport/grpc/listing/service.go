package listing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "listing.v1.ListingService"

const (
	getListingMethod   = "/" + ServiceName + "/GetListing"
	listListingsMethod = "/" + ServiceName + "/ListListings"
)

// ListingServiceServer is the server API for listing.v1.ListingService.
// Requests and replies are google.protobuf.Struct documents.
type ListingServiceServer interface {
	GetListing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListListings(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes listing.v1.ListingService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ListingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetListing", Handler: getListingHandler},
		{MethodName: "ListListings", Handler: listListingsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "listing/v1/listing.proto",
}

func RegisterListingServiceServer(s grpc.ServiceRegistrar, srv ListingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func getListingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ListingServiceServer).GetListing(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getListingMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ListingServiceServer).GetListing(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listListingsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ListingServiceServer).ListListings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listListingsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ListingServiceServer).ListListings(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ListingServiceClient is the client API for listing.v1.ListingService.
type ListingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewListingServiceClient(cc grpc.ClientConnInterface) *ListingServiceClient {
	return &ListingServiceClient{cc: cc}
}

func (c *ListingServiceClient) GetListing(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getListingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ListingServiceClient) ListListings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listListingsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
