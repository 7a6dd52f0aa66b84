package logging

import "testing"

func TestNoOpLoggerDiscardsEverything(t *testing.T) {
	var l Logger = NewNoOpLogger()
	l.Debug(nil, "unreachable %d", 1)
	l.WithFields(map[string]any{"k": "v"}).Info(nil, "still unreachable")
}

func TestStandardLoggerImplementsLogger(t *testing.T) {
	var l Logger = New(Debug, FormatJSON)
	l.Info(map[string]any{"component": "test"}, "hello %s", "world")
	l.WithFields(map[string]any{"request_id": "abc"}).Warn(nil, "warned")
}

func TestLevelToLogrus(t *testing.T) {
	tests := []Level{Error, Warn, Info, Debug}
	for _, lvl := range tests {
		if got := lvl.toLogrus(); got.String() == "" {
			t.Errorf("Level(%d).toLogrus() produced an empty logrus level", lvl)
		}
	}
}
