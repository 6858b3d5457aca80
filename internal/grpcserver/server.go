package grpcserver

import (
	"context"

	"github.com/cockroachdb/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"elementhub/internal/display"
	"elementhub/internal/elements"
	"elementhub/internal/filter"
	"elementhub/pkg/catalog"
	"elementhub/pkg/logger"
	"elementhub/pkg/rpc/tablerpc"
)

type Server struct {
	tablerpc.UnimplementedTableServiceServer
	Service *elements.Service
}

func NewServer(svc *elements.Service) *Server {
	return &Server{Service: svc}
}

// New returns a grpc.Server with TableService registered and calls logged.
func New(svc *elements.Service, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logUnary()))
	gs := grpc.NewServer(opts...)
	tablerpc.RegisterTableServiceServer(gs, NewServer(svc))
	return gs
}

func (s *Server) ListElements(ctx context.Context, req *tablerpc.ListElementsRequest) (*tablerpc.ListElementsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	fs, err := parseFilters(req.Filters)
	if err != nil {
		return nil, toStatus(err)
	}
	items := s.Service.List(fs)
	return &tablerpc.ListElementsResponse{
		Total:   len(items),
		Summary: display.Summarize(fs),
		Items:   items,
	}, nil
}

func (s *Server) GetElement(ctx context.Context, req *tablerpc.GetElementRequest) (*tablerpc.GetElementResponse, error) {
	if req == nil || req.AtomicNumber <= 0 {
		return nil, status.Error(codes.InvalidArgument, "atomic_number must be positive")
	}
	e, err := s.Service.Get(req.AtomicNumber)
	if err != nil {
		return nil, toStatus(err)
	}
	return &tablerpc.GetElementResponse{Element: e, Detail: display.NewDetail(e)}, nil
}

func (s *Server) GetTable(ctx context.Context, req *tablerpc.GetTableRequest) (*tablerpc.GetTableResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	if req.Active < 0 {
		return nil, status.Error(codes.InvalidArgument, "active must not be negative")
	}
	fs, err := parseFilters(req.Filters)
	if err != nil {
		return nil, toStatus(err)
	}
	t := s.Service.Table(fs, req.Active)
	return &tablerpc.GetTableResponse{
		Summary: display.Summarize(fs),
		Counts:  t.Counts(),
		Table:   t,
	}, nil
}

func (s *Server) GetLegend(ctx context.Context, req *tablerpc.GetLegendRequest) (*tablerpc.GetLegendResponse, error) {
	return &tablerpc.GetLegendResponse{Items: s.Service.Legend()}, nil
}

func parseFilters(f tablerpc.Filters) (filter.Set, error) {
	return filter.Parse(f.Categories, f.States, f.Periods, f.Blocks)
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, filter.ErrInvalidFilter):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func logUnary() grpc.UnaryServerInterceptor {
	log := logger.Component("grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			log.Infow("call failed", logger.FieldMethod, info.FullMethod, logger.FieldStatus, status.Code(err).String(), logger.FieldError, err)
		} else {
			log.Debugw("call", logger.FieldMethod, info.FullMethod)
		}
		return resp, err
	}
}
