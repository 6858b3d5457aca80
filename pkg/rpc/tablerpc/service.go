package tablerpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "elementhub.TableService"

// TableServiceServer is implemented by internal/grpcserver.
type TableServiceServer interface {
	ListElements(context.Context, *ListElementsRequest) (*ListElementsResponse, error)
	GetElement(context.Context, *GetElementRequest) (*GetElementResponse, error)
	GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error)
	GetLegend(context.Context, *GetLegendRequest) (*GetLegendResponse, error)
}

// UnimplementedTableServiceServer can be embedded for forward compatibility.
type UnimplementedTableServiceServer struct{}

func (UnimplementedTableServiceServer) ListElements(context.Context, *ListElementsRequest) (*ListElementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListElements not implemented")
}
func (UnimplementedTableServiceServer) GetElement(context.Context, *GetElementRequest) (*GetElementResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetElement not implemented")
}
func (UnimplementedTableServiceServer) GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTable not implemented")
}
func (UnimplementedTableServiceServer) GetLegend(context.Context, *GetLegendRequest) (*GetLegendResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLegend not implemented")
}

func RegisterTableServiceServer(s grpc.ServiceRegistrar, srv TableServiceServer) {
	s.RegisterService(&TableService_ServiceDesc, srv)
}

// unary adapts a typed method to grpc's method handler shape.
func unary[Req any](method string, call func(TableServiceServer, context.Context, *Req) (any, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TableServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TableServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var TableService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TableServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListElements", func(s TableServiceServer, ctx context.Context, in *ListElementsRequest) (any, error) {
			return s.ListElements(ctx, in)
		}),
		unary("GetElement", func(s TableServiceServer, ctx context.Context, in *GetElementRequest) (any, error) {
			return s.GetElement(ctx, in)
		}),
		unary("GetTable", func(s TableServiceServer, ctx context.Context, in *GetTableRequest) (any, error) {
			return s.GetTable(ctx, in)
		}),
		unary("GetLegend", func(s TableServiceServer, ctx context.Context, in *GetLegendRequest) (any, error) {
			return s.GetLegend(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "elementhub/pkg/rpc/tablerpc",
}

// TableServiceClient wraps a connection. Every call forces the JSON codec.
type TableServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTableServiceClient(cc grpc.ClientConnInterface) *TableServiceClient {
	return &TableServiceClient{cc: cc}
}

func (c *TableServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *TableServiceClient) ListElements(ctx context.Context, in *ListElementsRequest, opts ...grpc.CallOption) (*ListElementsResponse, error) {
	out := new(ListElementsResponse)
	if err := c.invoke(ctx, "ListElements", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TableServiceClient) GetElement(ctx context.Context, in *GetElementRequest, opts ...grpc.CallOption) (*GetElementResponse, error) {
	out := new(GetElementResponse)
	if err := c.invoke(ctx, "GetElement", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TableServiceClient) GetTable(ctx context.Context, in *GetTableRequest, opts ...grpc.CallOption) (*GetTableResponse, error) {
	out := new(GetTableResponse)
	if err := c.invoke(ctx, "GetTable", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TableServiceClient) GetLegend(ctx context.Context, in *GetLegendRequest, opts ...grpc.CallOption) (*GetLegendResponse, error) {
	out := new(GetLegendResponse)
	if err := c.invoke(ctx, "GetLegend", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
