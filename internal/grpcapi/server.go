// Package grpcapi exposes the search driver as a gRPC server-streaming
// service, grounded on the driver server's grpc.NewServer / reflection.Register
// / graceful-stop pattern.
package grpcapi

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/reflection"

	v1 "seedsearch/internal/proto/seedsearch/v1"
	"seedsearch/pkg/seedsearch/search"
	"seedsearch/pkg/seedsearch/weather"
)

func init() {
	encoding.RegisterCodec(v1.Codec{})
}

// server implements the SeedSearchService service described in
// seedsearch.proto.
type server struct{}

func toSearchRequest(req *v1.SearchRequest) (search.SearchRequest, error) {
	conds := make([]weather.WeatherCondition, 0, len(req.WeatherConditions))
	for i, wc := range req.WeatherConditions {
		season, ok := weather.ParseSeason(wc.Season)
		if !ok {
			return search.SearchRequest{}, search.InvalidRequestError(fmt.Sprintf("condition %d: unknown season %q", i, wc.Season))
		}
		conds = append(conds, weather.WeatherCondition{
			Season:      season,
			StartDay:    int(wc.StartDay),
			EndDay:      int(wc.EndDay),
			MinRainDays: int(wc.MinRainDays),
		})
	}
	return search.SearchRequest{
		StartSeed:       req.StartSeed,
		EndSeed:         req.EndSeed,
		UseLegacyRandom: req.UseLegacyRandom,
		Conditions:      conds,
		OutputLimit:     int(req.OutputLimit),
	}, nil
}

func toWireEvent(ev search.Event) *v1.Event {
	return &v1.Event{
		Type:         ev.Type,
		Total:        ev.Total,
		CheckedCount: ev.Checked,
		Progress:     ev.Progress,
		Speed:        ev.Speed,
		Elapsed:      ev.Elapsed,
		Seed:         ev.Seed,
		TotalFound:   int32(ev.TotalFound),
	}
}

// Search runs a search for the lifetime of the stream, sending one Event
// per driver callback. It returns an error only when the request fails
// validation before the first frame is sent.
func (s *server) Search(req *v1.SearchRequest, stream grpc.ServerStreamingServer[v1.Event]) error {
	sreq, err := toSearchRequest(req)
	if err != nil {
		return err
	}
	if err := search.Validate(sreq); err != nil {
		return err
	}

	sink := search.EventSink{Emit: func(ev search.Event) {
		_ = stream.Send(toWireEvent(ev))
	}}

	_, err = search.Search(stream.Context(), sreq, sink)
	return err
}

func searchHandler(srv any, stream grpc.ServerStream) error {
	m := new(v1.SearchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(*server).Search(m, &grpc.GenericServerStream[v1.SearchRequest, v1.Event]{ServerStream: stream})
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "seedsearch.v1.SeedSearchService",
	HandlerType: (*any)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Search",
			ServerStreams: true,
			Handler:       searchHandler,
		},
	},
	Metadata: "seedsearch.proto",
}

// Run starts the gRPC server on addr, registers it for reflection, and
// blocks until SIGINT/SIGTERM triggers a graceful stop.
func Run(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	grpcServer.RegisterService(&serviceDesc, &server{})
	reflection.Register(grpcServer)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down grpc api server...")
		grpcServer.GracefulStop()
	}()

	log.Printf("seedsearch grpc api listening on %s", addr)
	return grpcServer.Serve(lis)
}
