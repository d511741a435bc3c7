package grpc_control

import (
	"fmt"
	"net"

	"trade-stats/src/interfaces"
	"trade-stats/src/logger"
	"trade-stats/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service names reported through the standard gRPC health protocol.
const (
	EngineService  = "tradestats.engine"
	JournalService = "tradestats.journal"
)

// -----------------------------------------------------------------------------
// ControlServer exposes the control plane over gRPC: the stock health
// service with per-component serving states, which orchestrators and
// load balancers already speak.
// -----------------------------------------------------------------------------

type ControlServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	Engine interfaces.IStatsEngine

	server *grpc.Server
	health *health.Server
}

// -----------------------------------------------------------------------------

// NewControlServer creates a new instance of ControlServer
func NewControlServer(cfg *models.MConfig, log *logger.Logger, engine interfaces.IStatsEngine) *ControlServer {
	s := &ControlServer{
		Config: cfg,
		Logger: log,
		Engine: engine,
		server: grpc.NewServer(),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.server, s.health)

	// The engine is pure in-memory computation: once constructed it serves.
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(EngineService, healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(JournalService, healthpb.HealthCheckResponse_NOT_SERVING)

	return s
}

// -----------------------------------------------------------------------------

// Start listens on the configured gRPC address and serves until stopped.
func (s *ControlServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.GrpcHost, s.Config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.Logger.Info("Starting gRPC control server on %s", addr)
	return s.server.Serve(lis)
}

// -----------------------------------------------------------------------------

// SetJournalServing flips the journal component's health state.
func (s *ControlServer) SetJournalServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(JournalService, status)
}

// -----------------------------------------------------------------------------

// Stop marks all services NOT_SERVING and drains in-flight RPCs.
func (s *ControlServer) Stop() {
	status := s.Engine.Status()
	s.Logger.Info("Stopping gRPC control server (engine held %d observations across %d symbols)",
		status.TotalObservations, status.Symbols)

	s.health.Shutdown()
	s.server.GracefulStop()
}
