package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAttemptsJSON(t *testing.T) {
	b, err := json.Marshal(UnlimitedAttempts())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"unlimited"` {
		t.Fatalf("got %s", b)
	}

	b, err = json.Marshal(LimitedAttempts(3))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "3" {
		t.Fatalf("got %s", b)
	}

	var a Attempts
	for _, in := range []string{`2`, `"2"`} {
		if err := json.Unmarshal([]byte(in), &a); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if a.Unlimited || a.Limit != 2 {
			t.Fatalf("unmarshal %s: got %+v", in, a)
		}
	}
	if err := json.Unmarshal([]byte(`"Unlimited"`), &a); err != nil || !a.Unlimited {
		t.Fatalf("got %+v, %v", a, err)
	}
	if err := json.Unmarshal([]byte(`"many"`), &a); err == nil {
		t.Fatal("expected error")
	}
	if (Attempts{}).Valid() {
		t.Fatal("zero attempts must be invalid")
	}
}

func sampleAssessment() Assessment {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return Assessment{
		ID: "a-1",
		AssessmentDetails: AssessmentDetails{
			Title:            "Fractions",
			Description:      "Week 3 check",
			AssessmentType:   MultipleChoice,
			Category:         "math",
			PassingScore:     60,
			AttemptsAllowed:  UnlimitedAttempts(),
			TimeLimitMinutes: 15,
		},
		Questions: []Question{
			{ID: "q-1", Type: MultipleChoice, Prompt: "1/2 + 1/4?", Options: []string{"3/4", "2/6"}, CorrectAnswer: "3/4", Points: 2, TimeLimit: 60},
			{ID: "q-2", Type: TrueFalse, Prompt: "1/3 > 1/4", CorrectAnswer: "true", Points: 1, TimeLimit: 30},
			{ID: "q-3", Type: Essay, Prompt: "Explain common denominators", Points: 5, TimeLimit: 300},
		},
		Status:    StatusDraft,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestAssessmentJSONShape(t *testing.T) {
	b, err := json.Marshal(sampleAssessment())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "title", "description", "assessmentType", "category",
		"passingScore", "attemptsAllowed", "questions", "timeLimitMinutes", "status", "createdAt"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing key %q in %s", key, b)
		}
	}
	if !strings.Contains(string(raw["questions"]), `"question":"1/2 + 1/4?"`) {
		t.Fatalf("question prompt should be serialized as \"question\": %s", raw["questions"])
	}
}

func TestAssessmentJSONRoundTrip(t *testing.T) {
	orig := sampleAssessment()
	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back Assessment
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}

	if len(back.Questions) != len(orig.Questions) {
		t.Fatalf("got %d questions, want %d", len(back.Questions), len(orig.Questions))
	}
	for i := range orig.Questions {
		o, g := orig.Questions[i], back.Questions[i]
		if o.ID != g.ID || o.Type != g.Type || o.Points != g.Points {
			t.Fatalf("question %d: got %+v, want %+v", i, g, o)
		}
	}
	if !back.AttemptsAllowed.Unlimited {
		t.Fatal("attempts lost in round trip")
	}
	if !back.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("createdAt changed: %v", back.CreatedAt)
	}
}

func TestAssessmentTotalPointsAndClone(t *testing.T) {
	a := sampleAssessment()
	if got := a.TotalPoints(); got != 8 {
		t.Fatalf("TotalPoints = %d, want 8", got)
	}

	c := a.Clone()
	c.Questions[0].Options[0] = "changed"
	if a.Questions[0].Options[0] != "3/4" {
		t.Fatal("clone shares option storage with original")
	}
}
