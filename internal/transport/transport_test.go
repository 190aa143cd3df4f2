package transport

import (
	"testing"

	"github.com/aquamind/aquamind/internal/types"
	"github.com/aquamind/aquamind/pkg/payload"
	"go.uber.org/zap"
)

func TestSimulatedLifecycle(t *testing.T) {
	link := NewSimulated(payload.FormatJSON, zap.NewNop().Sugar())

	if link.Connected() {
		t.Error("expected link disconnected before Connect")
	}
	if err := link.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if !link.Connected() {
		t.Error("expected link connected after Connect")
	}
	if err := link.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if link.Connected() {
		t.Error("expected link disconnected after Close")
	}
}

func TestSimulatedSend(t *testing.T) {
	for _, format := range []payload.Format{payload.FormatJSON, payload.FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			link := NewSimulated(format, zap.NewNop().Sugar())

			record := &types.AnalysisRecord{
				ID:       "test-record",
				Verdict:  types.VerdictSafe,
				JalScore: 95.5,
			}
			if err := link.Send(record); err != nil {
				t.Fatalf("Send failed: %v", err)
			}

			data := link.LastSent()
			if len(data) == 0 {
				t.Fatal("expected encoded payload to be retained")
			}
			decoded, err := payload.Decode(data, format)
			if err != nil {
				t.Fatalf("payload not decodable: %v", err)
			}
			if decoded.ID != record.ID || decoded.Verdict != record.Verdict {
				t.Errorf("expected round-trippable payload, got %+v", decoded)
			}
		})
	}
}
