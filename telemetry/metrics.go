package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3"
	"google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	monitoringpb "google.golang.org/genproto/googleapis/monitoring/v3"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// MetricsClient Google Cloud Monitoring 클라이언트를 래핑합니다
type MetricsClient struct {
	client    *monitoring.MetricClient
	projectID string
	enabled   bool
}

// NewMetricsClient 새로운 MetricsClient 인스턴스를 생성합니다
func NewMetricsClient(projectID string) *MetricsClient {
	if projectID == "" {
		utils.Warn("Project ID not provided, telemetry disabled")
		return &MetricsClient{enabled: false}
	}

	// Firebase 인증 정보를 임시 파일로 만들어 Google Cloud 인증에 재사용
	if err := setupGoogleCloudCredentials(); err != nil {
		utils.Warn("Failed to setup Google Cloud credentials: %v", err)
		utils.Warn("Telemetry disabled - ensure Firebase credentials are available")
		return &MetricsClient{enabled: false}
	}

	client, err := monitoring.NewMetricClient(context.Background())
	if err != nil {
		utils.Warn("Failed to create monitoring client: %v", err)
		utils.Warn("Telemetry disabled")
		return &MetricsClient{enabled: false}
	}

	utils.Info("Google Cloud Monitoring telemetry enabled for project: %s", projectID)
	return &MetricsClient{
		client:    client,
		projectID: projectID,
		enabled:   true,
	}
}

// SendCommandUsed 명령어 사용 메트릭을 전송합니다
func (m *MetricsClient) SendCommandUsed(command string) {
	if m == nil || !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "smashx/commands/usage", 1.0, now, map[string]string{
		"command": command,
	}); err != nil {
		utils.Warn("Failed to send command usage metric: %v", err)
	}
}

// SendMatchRecorded 경기 기록 메트릭을 전송합니다
func (m *MetricsClient) SendMatchRecorded(sessionID string, queueDepth int) {
	if m == nil || !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "smashx/matches/recorded", 1.0, now, map[string]string{
		"session_id": sessionID,
	}); err != nil {
		utils.Warn("Failed to send match recorded metric: %v", err)
	}

	if err := m.sendCustomMetric(ctx, "smashx/queue/depth", float64(queueDepth), now); err != nil {
		utils.Warn("Failed to send queue depth metric: %v", err)
	}

	utils.Debug("Match metric sent for session %s (queue depth: %d)", sessionID, queueDepth)
}

// SendConflictRollback 쓰기 거부로 인한 롤백 메트릭을 전송합니다
func (m *MetricsClient) SendConflictRollback(operation string) {
	if m == nil || !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "smashx/conflicts/rollbacks", 1.0, now, map[string]string{
		"operation": operation,
	}); err != nil {
		utils.Warn("Failed to send conflict rollback metric: %v", err)
	}
}

// SendSettlement 정산 메트릭을 전송합니다
func (m *MetricsClient) SendSettlement(sessionID string, totalCost, participantCount int) {
	if m == nil || !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "smashx/settlement/total_cost", float64(totalCost), now, map[string]string{
		"session_id": sessionID,
	}); err != nil {
		utils.Warn("Failed to send settlement cost metric: %v", err)
	}

	if err := m.sendCustomMetric(ctx, "smashx/settlement/participants", float64(participantCount), now); err != nil {
		utils.Warn("Failed to send settlement participant metric: %v", err)
	}

	utils.Debug("Settlement metric sent: %s (cost: %d, participants: %d)", sessionID, totalCost, participantCount)
}

// SendOperationDuration 작업 성능 메트릭을 전송합니다
func (m *MetricsClient) SendOperationDuration(operation string, duration time.Duration, success bool) {
	if m == nil || !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "smashx/performance/duration", duration.Seconds(), now, map[string]string{
		"operation": operation,
		"success":   fmt.Sprintf("%t", success),
	}); err != nil {
		utils.Warn("Failed to send performance duration metric: %v", err)
	}
}

// sendCustomMetric 단순한 커스텀 메트릭을 전송합니다
func (m *MetricsClient) sendCustomMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp) error {
	return m.sendLabeledMetric(ctx, metricType, value, timestamp, nil)
}

// sendLabeledMetric 라벨이 포함된 커스텀 메트릭을 전송합니다
func (m *MetricsClient) sendLabeledMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp, labels map[string]string) error {
	if labels == nil {
		labels = make(map[string]string)
	}

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name: fmt.Sprintf("projects/%s", m.projectID),
		TimeSeries: []*monitoringpb.TimeSeries{
			{
				Metric: &metric.Metric{
					Type:   fmt.Sprintf("custom.googleapis.com/%s", metricType),
					Labels: labels,
				},
				Resource: &monitoredres.MonitoredResource{
					Type: "generic_task",
					Labels: map[string]string{
						"project_id": m.projectID,
						"location":   "global",
						"namespace":  "smashx",
						"job":        "arena-engine",
						"task_id":    "main",
					},
				},
				Points: []*monitoringpb.Point{
					{
						Interval: &monitoringpb.TimeInterval{
							EndTime: timestamp,
						},
						Value: &monitoringpb.TypedValue{
							Value: &monitoringpb.TypedValue_DoubleValue{
								DoubleValue: value,
							},
						},
					},
				},
			},
		},
	}

	return m.client.CreateTimeSeries(ctx, req)
}

// Close 클라이언트를 정리합니다
func (m *MetricsClient) Close() error {
	if m == nil || !m.enabled || m.client == nil {
		return nil
	}
	return m.client.Close()
}

// setupGoogleCloudCredentials Firebase 인증 정보를 Google Cloud 인증으로 설정합니다
func setupGoogleCloudCredentials() error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		return nil
	}

	firebaseCredentials := os.Getenv(constants.EnvFirebaseCredentials)
	if firebaseCredentials == "" {
		return fmt.Errorf("neither GOOGLE_APPLICATION_CREDENTIALS nor %s is set", constants.EnvFirebaseCredentials)
	}

	tempDir := os.TempDir()
	credFile := filepath.Join(tempDir, "smashx-gcloud-credentials.json")

	if err := os.WriteFile(credFile, []byte(firebaseCredentials), 0600); err != nil {
		return fmt.Errorf("failed to write temporary credentials file: %v", err)
	}

	os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", credFile)

	utils.Debug("Created temporary Google Cloud credentials file: %s", credFile)
	return nil
}
