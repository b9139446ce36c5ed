// Package missionsv1 описывает gRPC-контракт дашборда миссий.
//
// Запросы и ответы — google.protobuf.Struct с camelCase-полями в том же
// виде, в каком их отдаёт REST-дашборд, поэтому .proto-схема сообщений
// не генерируется: сервисы регистрируются через ServiceDesc вручную.
package missionsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	MissionServiceName   = "florist.missions.v1.MissionService"
	DirectoryServiceName = "florist.missions.v1.DirectoryService"
)

// MissionServiceServer — миссии, назначения, канбан и аналитика.
type MissionServiceServer interface {
	CreateEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EventHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssignFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RespondAssignment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveAssignment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MoveStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Board(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DayAgenda(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SweepAutoTransitions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Analytics(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DirectoryServiceServer — флористы, их недоступность и клиенты.
type DirectoryServiceServer interface {
	CreateFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListFlorists(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddUnavailability(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetUnavailabilityActive(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AvailableFlorists(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FloristCalendar(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListClients(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClientHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type method[S any] struct {
	name string
	call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var missionMethods = []method[MissionServiceServer]{
	{"CreateEvent", MissionServiceServer.CreateEvent},
	{"UpdateEvent", MissionServiceServer.UpdateEvent},
	{"GetEvent", MissionServiceServer.GetEvent},
	{"ListEvents", MissionServiceServer.ListEvents},
	{"EventHistory", MissionServiceServer.EventHistory},
	{"AssignFlorist", MissionServiceServer.AssignFlorist},
	{"RespondAssignment", MissionServiceServer.RespondAssignment},
	{"RemoveAssignment", MissionServiceServer.RemoveAssignment},
	{"MoveStatus", MissionServiceServer.MoveStatus},
	{"CancelEvent", MissionServiceServer.CancelEvent},
	{"Board", MissionServiceServer.Board},
	{"DayAgenda", MissionServiceServer.DayAgenda},
	{"SweepAutoTransitions", MissionServiceServer.SweepAutoTransitions},
	{"Analytics", MissionServiceServer.Analytics},
}

var directoryMethods = []method[DirectoryServiceServer]{
	{"CreateFlorist", DirectoryServiceServer.CreateFlorist},
	{"UpdateFlorist", DirectoryServiceServer.UpdateFlorist},
	{"GetFlorist", DirectoryServiceServer.GetFlorist},
	{"ListFlorists", DirectoryServiceServer.ListFlorists},
	{"AddUnavailability", DirectoryServiceServer.AddUnavailability},
	{"SetUnavailabilityActive", DirectoryServiceServer.SetUnavailabilityActive},
	{"AvailableFlorists", DirectoryServiceServer.AvailableFlorists},
	{"FloristCalendar", DirectoryServiceServer.FloristCalendar},
	{"CreateClient", DirectoryServiceServer.CreateClient},
	{"UpdateClient", DirectoryServiceServer.UpdateClient},
	{"GetClient", DirectoryServiceServer.GetClient},
	{"ListClients", DirectoryServiceServer.ListClients},
	{"ClientHistory", DirectoryServiceServer.ClientHistory},
}

// MissionService_ServiceDesc используется в grpc.ServiceRegistrar.RegisterService.
var MissionService_ServiceDesc = serviceDesc(MissionServiceName, (*MissionServiceServer)(nil), missionMethods)

var DirectoryService_ServiceDesc = serviceDesc(DirectoryServiceName, (*DirectoryServiceServer)(nil), directoryMethods)

func RegisterMissionServiceServer(s grpc.ServiceRegistrar, srv MissionServiceServer) {
	s.RegisterService(&MissionService_ServiceDesc, srv)
}

func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&DirectoryService_ServiceDesc, srv)
}

func serviceDesc[S any](name string, handlerType any, methods []method[S]) grpc.ServiceDesc {
	desc := grpc.ServiceDesc{
		ServiceName: name,
		HandlerType: handlerType,
		Streams:     []grpc.StreamDesc{},
	}
	for _, m := range methods {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: m.name,
			Handler:    unary(FullMethod(name, m.name), m.call),
		})
	}
	return desc
}

// FullMethod — "/<service>/<method>".
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

func unary[S any](fullMethod string, call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UnimplementedMissionServiceServer встраивается в реализации, чтобы
// новые методы не ломали сборку.
type UnimplementedMissionServiceServer struct{}

func (UnimplementedMissionServiceServer) CreateEvent(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("CreateEvent")
}
func (UnimplementedMissionServiceServer) UpdateEvent(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("UpdateEvent")
}
func (UnimplementedMissionServiceServer) GetEvent(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetEvent")
}
func (UnimplementedMissionServiceServer) ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ListEvents")
}
func (UnimplementedMissionServiceServer) EventHistory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("EventHistory")
}
func (UnimplementedMissionServiceServer) AssignFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("AssignFlorist")
}
func (UnimplementedMissionServiceServer) RespondAssignment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("RespondAssignment")
}
func (UnimplementedMissionServiceServer) RemoveAssignment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("RemoveAssignment")
}
func (UnimplementedMissionServiceServer) MoveStatus(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("MoveStatus")
}
func (UnimplementedMissionServiceServer) CancelEvent(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("CancelEvent")
}
func (UnimplementedMissionServiceServer) Board(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Board")
}
func (UnimplementedMissionServiceServer) DayAgenda(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("DayAgenda")
}
func (UnimplementedMissionServiceServer) SweepAutoTransitions(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("SweepAutoTransitions")
}
func (UnimplementedMissionServiceServer) Analytics(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Analytics")
}

type UnimplementedDirectoryServiceServer struct{}

func (UnimplementedDirectoryServiceServer) CreateFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("CreateFlorist")
}
func (UnimplementedDirectoryServiceServer) UpdateFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("UpdateFlorist")
}
func (UnimplementedDirectoryServiceServer) GetFlorist(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetFlorist")
}
func (UnimplementedDirectoryServiceServer) ListFlorists(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ListFlorists")
}
func (UnimplementedDirectoryServiceServer) AddUnavailability(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("AddUnavailability")
}
func (UnimplementedDirectoryServiceServer) SetUnavailabilityActive(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("SetUnavailabilityActive")
}
func (UnimplementedDirectoryServiceServer) AvailableFlorists(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("AvailableFlorists")
}
func (UnimplementedDirectoryServiceServer) FloristCalendar(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("FloristCalendar")
}
func (UnimplementedDirectoryServiceServer) CreateClient(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("CreateClient")
}
func (UnimplementedDirectoryServiceServer) UpdateClient(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("UpdateClient")
}
func (UnimplementedDirectoryServiceServer) GetClient(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetClient")
}
func (UnimplementedDirectoryServiceServer) ListClients(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ListClients")
}
func (UnimplementedDirectoryServiceServer) ClientHistory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("ClientHistory")
}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}
