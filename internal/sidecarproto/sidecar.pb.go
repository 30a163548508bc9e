// Code generated by protoc-gen-go from sidecar.proto. Hand-maintained in
// this tree since no protobuf compiler runs as part of the build; keep it
// in sync with sidecar.proto by hand when the wire contract changes.

package sidecarproto

import (
	proto "github.com/golang/protobuf/proto"
)

// ShellResponse_Stream distinguishes stdout from stderr chunks within a
// single Exec stream.
type ShellResponse_Stream int32

const (
	ShellResponse_STDOUT ShellResponse_Stream = 0
	ShellResponse_STDERR ShellResponse_Stream = 1
)

var ShellResponse_Stream_name = map[int32]string{
	0: "STDOUT",
	1: "STDERR",
}

func (x ShellResponse_Stream) String() string {
	return ShellResponse_Stream_name[int32(x)]
}

type ShellRequest struct {
	Command string `protobuf:"bytes,1,opt,name=command,proto3" json:"command,omitempty"`
}

func (m *ShellRequest) Reset()         { *m = ShellRequest{} }
func (m *ShellRequest) String() string { return proto.CompactTextString(m) }
func (*ShellRequest) ProtoMessage()    {}

func (m *ShellRequest) GetCommand() string {
	if m != nil {
		return m.Command
	}
	return ""
}

type ShellResponse struct {
	Stream   ShellResponse_Stream `protobuf:"varint,1,opt,name=stream,proto3,enum=sidecarproto.ShellResponse_Stream" json:"stream,omitempty"`
	Data     []byte               `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
	Done     bool                 `protobuf:"varint,3,opt,name=done,proto3" json:"done,omitempty"`
	ExitCode int32                `protobuf:"varint,4,opt,name=exit_code,json=exitCode,proto3" json:"exit_code,omitempty"`
}

func (m *ShellResponse) Reset()         { *m = ShellResponse{} }
func (m *ShellResponse) String() string { return proto.CompactTextString(m) }
func (*ShellResponse) ProtoMessage()    {}

func (m *ShellResponse) GetStream() ShellResponse_Stream {
	if m != nil {
		return m.Stream
	}
	return ShellResponse_STDOUT
}

func (m *ShellResponse) GetData() []byte {
	if m != nil {
		return m.Data
	}
	return nil
}

func (m *ShellResponse) GetDone() bool {
	if m != nil {
		return m.Done
	}
	return false
}

func (m *ShellResponse) GetExitCode() int32 {
	if m != nil {
		return m.ExitCode
	}
	return 0
}

type LoadFilesRequest struct {
	RootPath       string   `protobuf:"bytes,1,opt,name=root_path,json=rootPath,proto3" json:"root_path,omitempty"`
	FileExtensions []string `protobuf:"bytes,2,rep,name=file_extensions,json=fileExtensions,proto3" json:"file_extensions,omitempty"`
}

func (m *LoadFilesRequest) Reset()         { *m = LoadFilesRequest{} }
func (m *LoadFilesRequest) String() string { return proto.CompactTextString(m) }
func (*LoadFilesRequest) ProtoMessage()    {}

func (m *LoadFilesRequest) GetRootPath() string {
	if m != nil {
		return m.RootPath
	}
	return ""
}

func (m *LoadFilesRequest) GetFileExtensions() []string {
	if m != nil {
		return m.FileExtensions
	}
	return nil
}

type NodeResponse struct {
	Path         string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Chunk        []byte `protobuf:"bytes,2,opt,name=chunk,proto3" json:"chunk,omitempty"`
	OriginalSize int32  `protobuf:"varint,3,opt,name=original_size,json=originalSize,proto3" json:"original_size,omitempty"`
}

func (m *NodeResponse) Reset()         { *m = NodeResponse{} }
func (m *NodeResponse) String() string { return proto.CompactTextString(m) }
func (*NodeResponse) ProtoMessage()    {}

func (m *NodeResponse) GetPath() string {
	if m != nil {
		return m.Path
	}
	return ""
}

func (m *NodeResponse) GetChunk() []byte {
	if m != nil {
		return m.Chunk
	}
	return nil
}

func (m *NodeResponse) GetOriginalSize() int32 {
	if m != nil {
		return m.OriginalSize
	}
	return 0
}
