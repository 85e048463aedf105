package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("orders_cached", 42)

	metrics := m.GetMetrics()

	value, exists := metrics["orders_cached"]
	if !exists {
		t.Fatalf("Expected 'orders_cached' to be present in metrics, but it was not")
	}
	if value != 42 {
		t.Errorf("Expected 'orders_cached' to be 42, but got %v", value)
	}

	if _, exists = metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_IncrCounter(t *testing.T) {
	m := NewMonitor()

	m.IncrCounter("logins")
	m.IncrCounter("logins")
	m.IncrCounter("logins")

	value, _ := m.GetMetric("logins")
	if value != 3 {
		t.Errorf("Expected 'logins' to be 3 after three increments, but got %v", value)
	}

	// a non-integer value is replaced rather than panicking
	m.RecordMetric("logins", "broken")
	m.IncrCounter("logins")
	value, _ = m.GetMetric("logins")
	if value != 1 {
		t.Errorf("Expected 'logins' to restart at 1 after type clash, but got %v", value)
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("orders_cached", 42)

	m.Reset()

	metrics := m.GetMetrics()
	if _, exists := metrics["orders_cached"]; exists {
		t.Errorf("Expected 'orders_cached' to be removed after Reset(), but it was present")
	}
	if _, exists := metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
