package telemetry

import (
	"testing"
	"time"
)

func TestDisabledClientIsNoOp(t *testing.T) {
	// 프로젝트 ID가 없으면 비활성 클라이언트가 반환됩니다
	client := NewMetricsClient("")
	if client.enabled {
		t.Fatal("Client without project ID should be disabled")
	}

	// 비활성 클라이언트의 메트릭 호출은 모두 무시되어야 합니다
	client.SendCommandUsed("ping")
	client.SendMatchRecorded("session-1", 3)
	client.SendConflictRollback("assign_court")
	client.SendSettlement("session-1", 100000, 4)
	client.SendOperationDuration("record_match_result", time.Second, true)

	if err := client.Close(); err != nil {
		t.Errorf("Close on disabled client should be nil, got %v", err)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	// 텔레메트리가 꺼진 배포에서는 클라이언트가 nil 포인터로 전달됩니다
	var client *MetricsClient

	client.SendCommandUsed("ping")
	client.SendMatchRecorded("session-1", 3)
	client.SendConflictRollback("assign_court")
	client.SendSettlement("session-1", 100000, 4)
	client.SendOperationDuration("record_match_result", time.Second, false)

	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should be nil, got %v", err)
	}
}
