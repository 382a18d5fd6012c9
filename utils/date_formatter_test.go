package utils

import (
	"testing"
	"time"
)

func TestFormatWaitTime(t *testing.T) {
	now := time.Date(2025, 11, 8, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		since    time.Time
		expected string
	}{
		{"방금 체크인", now.Add(-30 * time.Second), "방금 전"},
		{"1분 대기", now.Add(-1 * time.Minute), "1분"},
		{"45분 대기", now.Add(-45 * time.Minute), "45분"},
		{"정확히 1시간", now.Add(-60 * time.Minute), "1시간 0분"},
		{"1시간 30분", now.Add(-90 * time.Minute), "1시간 30분"},
		{"3시간 5분", now.Add(-185 * time.Minute), "3시간 5분"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWaitTime(tt.since, now); got != tt.expected {
				t.Errorf("FormatWaitTime() = %q, 예상값 %q", got, tt.expected)
			}
		})
	}
}

func TestFormatSessionWindow(t *testing.T) {
	start := time.Date(2025, 11, 8, 19, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 8, 22, 30, 0, 0, time.UTC)

	got := FormatSessionWindow(start, end)
	expected := "2025-11-08 19:00 ~ 22:30"
	if got != expected {
		t.Errorf("FormatSessionWindow() = %q, 예상값 %q", got, expected)
	}
}
