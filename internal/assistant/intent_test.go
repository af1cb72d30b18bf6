package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/devconnect/devconnect-backend/internal/domain"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return f.reply, f.err
}

func TestParseIntentReply(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantIntent string
		wantDomain string
	}{
		{
			name:       "clean json",
			reply:      `{"intent": "find_people", "domain": "React frontend"}`,
			wantIntent: "find_people",
			wantDomain: "React frontend",
		},
		{
			name:       "fields reversed",
			reply:      `{"domain": "Go backend", "intent": "find_projects"}`,
			wantIntent: "find_projects",
			wantDomain: "Go backend",
		},
		{
			name: "multiline json in code fence",
			reply: "```json\n{\n  \"intent\": \"find_people\",\n  \"domain\": \"machine learning\"\n}\n```",
			wantIntent: "find_people",
			wantDomain: "machine learning",
		},
		{
			name:       "json wrapped in prose",
			reply:      `Sure! Here is the classification: {"intent": "find_projects", "domain": "Rust systems"} Hope that helps.`,
			wantIntent: "find_projects",
			wantDomain: "Rust systems",
		},
		{
			name:       "no intent field",
			reply:      "I am not able to classify this message.",
			wantIntent: "",
			wantDomain: "",
		},
		{
			name:       "domain present without intent is ignored",
			reply:      `{"domain": "React"}`,
			wantIntent: "",
			wantDomain: "",
		},
		{
			name:       "empty domain",
			reply:      `{"intent": "other", "domain": ""}`,
			wantIntent: "other",
			wantDomain: "",
		},
		{
			name:       "values padded with whitespace",
			reply:      `{"intent": " find_people ", "domain": "  Go backend "}`,
			wantIntent: "find_people",
			wantDomain: "Go backend",
		},
		{
			name:       "whitespace only domain",
			reply:      `{"intent": "find_projects", "domain": "   "}`,
			wantIntent: "find_projects",
			wantDomain: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIntentReply(tt.reply)
			if got.Intent != tt.wantIntent {
				t.Errorf("intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Domain != tt.wantDomain {
				t.Errorf("domain = %q, want %q", got.Domain, tt.wantDomain)
			}
		})
	}
}

func TestParseIntentReplyPaddedIntentRoutes(t *testing.T) {
	got := ParseIntentReply(`{"intent": " find_people ", "domain": " Go "}`)
	if !got.Recognized() {
		t.Errorf("padded intent %q should still be recognized", got.Intent)
	}
	if got.Domain != "Go" {
		t.Errorf("domain = %q, want Go", got.Domain)
	}
}

func TestExtractPropagatesTransportError(t *testing.T) {
	wantErr := errors.New("upstream down")
	extractor := NewIntentExtractor(&fakeCompleter{err: wantErr})

	_, err := extractor.Extract(context.Background(), "find me a dev")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestExtractUnparseableReplyIsSoftFailure(t *testing.T) {
	extractor := NewIntentExtractor(&fakeCompleter{reply: "no json here"})

	result, err := extractor.Extract(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Intent != "" || result.Domain != "" {
		t.Errorf("result = %+v, want empty", result)
	}
	if result.Recognized() {
		t.Error("empty result should not be recognized")
	}
}

func TestIntentResultRecognized(t *testing.T) {
	if !(domain.IntentResult{Intent: domain.IntentFindPeople}).Recognized() {
		t.Error("find_people should be recognized")
	}
	if !(domain.IntentResult{Intent: domain.IntentFindProjects}).Recognized() {
		t.Error("find_projects should be recognized")
	}
	if (domain.IntentResult{Intent: "other"}).Recognized() {
		t.Error("other should not be recognized")
	}
}
