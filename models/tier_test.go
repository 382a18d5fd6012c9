package models

import "testing"

func TestGetTierByRating(t *testing.T) {
	tm := GetTierManager()

	tests := []struct {
		rating   int
		expected string
	}{
		{-500, "Unpolished"},
		{0, "Unpolished"},
		{1099, "Unpolished"},
		{1100, "Spark"},
		{1299, "Spark"},
		{1300, "Flow"},
		{1600, "Combustion"},
		{2000, "Prism"},
		{2500, "Void"},
		{2999, "Void"},
		{3000, "Ascended"},
		{9999, "Ascended"},
	}

	for _, tt := range tests {
		if got := tm.GetTierName(tt.rating); got != tt.expected {
			t.Errorf("Rating %d: expected %s, got %s", tt.rating, tt.expected, got)
		}
	}
}

func TestGetTierManagerSingleton(t *testing.T) {
	if GetTierManager() != GetTierManager() {
		t.Error("GetTierManager should always return the same instance")
	}
}

func TestNextTierProgress(t *testing.T) {
	tm := GetTierManager()

	// Spark(1100) → Flow(1300) 구간의 정중앙
	progress, remaining, next := tm.NextTierProgress(1200)
	if progress != 50 {
		t.Errorf("Expected 50%% progress, got %.1f", progress)
	}
	if remaining != 100 {
		t.Errorf("Expected 100 points remaining, got %d", remaining)
	}
	if next != "Flow" {
		t.Errorf("Expected next tier Flow, got %s", next)
	}

	// 최상위 티어
	progress, remaining, next = tm.NextTierProgress(3500)
	if progress != 100 || remaining != 0 || next != "Max" {
		t.Errorf("Top tier should report (100, 0, Max), got (%.0f, %d, %s)", progress, remaining, next)
	}

	// 음수 레이팅은 진행률 0으로 고정됩니다
	progress, _, _ = tm.NextTierProgress(-100)
	if progress != 0 {
		t.Errorf("Negative rating should clamp progress to 0, got %.1f", progress)
	}
}

func TestTierColors(t *testing.T) {
	tm := GetTierManager()

	if tm.GetTierColor(1100) == tm.GetTierColor(1300) {
		t.Error("Adjacent tiers should carry distinct embed colors")
	}
	if tm.GetTierANSIColor(0) != "\x1b[0m" {
		t.Errorf("Unpolished ANSI color should be the reset code, got %q", tm.GetTierANSIColor(0))
	}
}
