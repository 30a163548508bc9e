// Code generated by protoc-gen-go-grpc from sidecar.proto. Hand-maintained
// alongside sidecar.pb.go; see the note there.

package sidecarproto

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

const (
	ShellService_Exec_FullMethodName           = "/sidecarproto.ShellService/Exec"
	FileLoaderService_LoadFiles_FullMethodName = "/sidecarproto.FileLoaderService/LoadFiles"
)

// ShellServiceClient is the client API for ShellService.
type ShellServiceClient interface {
	Exec(ctx context.Context, in *ShellRequest, opts ...grpc.CallOption) (ShellService_ExecClient, error)
}

type shellServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewShellServiceClient(cc grpc.ClientConnInterface) ShellServiceClient {
	return &shellServiceClient{cc}
}

func (c *shellServiceClient) Exec(ctx context.Context, in *ShellRequest, opts ...grpc.CallOption) (ShellService_ExecClient, error) {
	stream, err := c.cc.NewStream(ctx, &ShellService_ServiceDesc.Streams[0], ShellService_Exec_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &shellServiceExecClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ShellService_ExecClient is the stream returned by Exec.
type ShellService_ExecClient interface {
	Recv() (*ShellResponse, error)
	grpc.ClientStream
}

type shellServiceExecClient struct {
	grpc.ClientStream
}

func (x *shellServiceExecClient) Recv() (*ShellResponse, error) {
	m := new(ShellResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ShellServiceServer is the server API for ShellService.
type ShellServiceServer interface {
	Exec(*ShellRequest, ShellService_ExecServer) error
}

// UnimplementedShellServiceServer can be embedded to satisfy forward
// compatibility with new methods added to ShellServiceServer.
type UnimplementedShellServiceServer struct{}

func (UnimplementedShellServiceServer) Exec(*ShellRequest, ShellService_ExecServer) error {
	return status.Errorf(codes.Unimplemented, "method Exec not implemented")
}

type ShellService_ExecServer interface {
	Send(*ShellResponse) error
	grpc.ServerStream
}

type shellServiceExecServer struct {
	grpc.ServerStream
}

func (x *shellServiceExecServer) Send(m *ShellResponse) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterShellServiceServer(s grpc.ServiceRegistrar, srv ShellServiceServer) {
	s.RegisterService(&ShellService_ServiceDesc, srv)
}

func _ShellService_Exec_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(ShellRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ShellServiceServer).Exec(m, &shellServiceExecServer{stream})
}

var ShellService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sidecarproto.ShellService",
	HandlerType: (*ShellServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Exec",
			Handler:       _ShellService_Exec_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "sidecar.proto",
}

// FileLoaderServiceClient is the client API for FileLoaderService.
type FileLoaderServiceClient interface {
	LoadFiles(ctx context.Context, in *LoadFilesRequest, opts ...grpc.CallOption) (FileLoaderService_LoadFilesClient, error)
}

type fileLoaderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFileLoaderServiceClient(cc grpc.ClientConnInterface) FileLoaderServiceClient {
	return &fileLoaderServiceClient{cc}
}

func (c *fileLoaderServiceClient) LoadFiles(ctx context.Context, in *LoadFilesRequest, opts ...grpc.CallOption) (FileLoaderService_LoadFilesClient, error) {
	stream, err := c.cc.NewStream(ctx, &FileLoaderService_ServiceDesc.Streams[0], FileLoaderService_LoadFiles_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &fileLoaderServiceLoadFilesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type FileLoaderService_LoadFilesClient interface {
	Recv() (*NodeResponse, error)
	grpc.ClientStream
}

type fileLoaderServiceLoadFilesClient struct {
	grpc.ClientStream
}

func (x *fileLoaderServiceLoadFilesClient) Recv() (*NodeResponse, error) {
	m := new(NodeResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// FileLoaderServiceServer is the server API for FileLoaderService.
type FileLoaderServiceServer interface {
	LoadFiles(*LoadFilesRequest, FileLoaderService_LoadFilesServer) error
}

type UnimplementedFileLoaderServiceServer struct{}

func (UnimplementedFileLoaderServiceServer) LoadFiles(*LoadFilesRequest, FileLoaderService_LoadFilesServer) error {
	return status.Errorf(codes.Unimplemented, "method LoadFiles not implemented")
}

type FileLoaderService_LoadFilesServer interface {
	Send(*NodeResponse) error
	grpc.ServerStream
}

type fileLoaderServiceLoadFilesServer struct {
	grpc.ServerStream
}

func (x *fileLoaderServiceLoadFilesServer) Send(m *NodeResponse) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterFileLoaderServiceServer(s grpc.ServiceRegistrar, srv FileLoaderServiceServer) {
	s.RegisterService(&FileLoaderService_ServiceDesc, srv)
}

func _FileLoaderService_LoadFiles_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(LoadFilesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(FileLoaderServiceServer).LoadFiles(m, &fileLoaderServiceLoadFilesServer{stream})
}

var FileLoaderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sidecarproto.FileLoaderService",
	HandlerType: (*FileLoaderServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "LoadFiles",
			Handler:       _FileLoaderService_LoadFiles_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "sidecar.proto",
}
