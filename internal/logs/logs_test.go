package logs

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", log.Formatter)
	}

	log, err = New("", "")
	if err != nil {
		t.Fatalf("New with defaults: %v", err)
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info level, got %s", log.GetLevel())
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := New("loud", "text"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
