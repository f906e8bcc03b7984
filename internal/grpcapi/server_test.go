package grpcapi

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	v1 "seedsearch/internal/proto/seedsearch/v1"
)

const bufSize = 1 << 20

func dialServer(t *testing.T) (*grpc.ClientConn, func()) {
	t.Helper()
	lis := bufconn.Listen(bufSize)

	grpcServer := grpc.NewServer()
	grpcServer.RegisterService(&serviceDesc, &server{})
	go func() { _ = grpcServer.Serve(lis) }()

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		grpcServer.Stop()
	}
}

func TestSearchStreamsEventsOverBufconn(t *testing.T) {
	conn, cleanup := dialServer(t)
	defer cleanup()

	req := &v1.SearchRequest{StartSeed: 0, EndSeed: 2000, OutputLimit: 2}

	stream, err := conn.NewStream(context.Background(), &grpc.StreamDesc{ServerStreams: true}, "/seedsearch.v1.SeedSearchService/Search")
	require.NoError(t, err)
	require.NoError(t, stream.SendMsg(req))
	require.NoError(t, stream.CloseSend())

	var types []string
	for {
		ev := new(v1.Event)
		if err := stream.RecvMsg(ev); err != nil {
			break
		}
		types = append(types, ev.Type)
	}

	require.NotEmpty(t, types)
	require.Equal(t, "start", types[0])
	require.Equal(t, "complete", types[len(types)-1])
}

func TestSearchRejectsInvalidRequest(t *testing.T) {
	s := &server{}
	req := &v1.SearchRequest{StartSeed: 10, EndSeed: 5, OutputLimit: 1}

	err := s.Search(req, nil)
	require.Error(t, err)
}
