package service

import (
	"context"
	"errors"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"testing"
)

func TestScoreSubmissionOverwrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)
	if a.TotalPoints() != 3 {
		t.Fatalf("total points = %d", a.TotalPoints())
	}

	sub, err := f.submissions.Create(CreateSubmissionRequest{
		AssessmentID: a.ID,
		UserID:       "u1",
		UserName:     "Jane Doe",
		Answers:      map[string]string{a.Questions[0].ID: "a", a.Questions[1].ID: "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sub.IsScored() {
		t.Fatal("new submission must be unscored")
	}

	got, err := f.submissions.Score(ctx, sub.ID, 2, "Good job")
	if err != nil {
		t.Fatal(err)
	}
	if *got.Score != 2 || got.Feedback != "Good job" || got.ScoredAt == nil {
		t.Fatalf("unexpected submission: %+v", got)
	}

	got, err = f.submissions.Score(ctx, sub.ID, 3, "Reconsidered")
	if err != nil {
		t.Fatal(err)
	}
	if *got.Score != 3 || got.Feedback != "Reconsidered" {
		t.Fatalf("unexpected submission: %+v", got)
	}

	stored, _ := f.submissions.Get(sub.ID)
	if *stored.Score != 3 {
		t.Fatalf("stored score = %d", *stored.Score)
	}
}

func TestScoreSubmissionRejectsOutOfRange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)
	sub, _ := f.submissions.Create(CreateSubmissionRequest{AssessmentID: a.ID, UserID: "u1", UserName: "Jane"})

	for _, score := range []int{-1, 4} {
		_, err := f.submissions.Score(ctx, sub.ID, score, "")
		ve, ok := util.AsValidation(err)
		if !ok || ve.Field != "score" {
			t.Fatalf("score %d: got %v", score, err)
		}
	}
	stored, _ := f.submissions.Get(sub.ID)
	if stored.IsScored() {
		t.Fatal("rejected score was stored")
	}

	if _, err := f.submissions.Score(ctx, "missing", 1, ""); !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestCreateSubmissionValidation(t *testing.T) {
	f := newFixture()
	a := f.publishedQuiz(t)
	d, err := f.debates.Create(CreateDebateRequest{Topic: "Homework should be optional"})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		req  CreateSubmissionRequest
	}{
		{"no target", CreateSubmissionRequest{UserID: "u", UserName: "U"}},
		{"both targets", CreateSubmissionRequest{AssessmentID: a.ID, DebateID: d.ID, UserID: "u", UserName: "U"}},
		{"foreign question", CreateSubmissionRequest{AssessmentID: a.ID, UserID: "u", UserName: "U", Answers: map[string]string{"nope": "x"}}},
		{"debate without position", CreateSubmissionRequest{DebateID: d.ID, UserID: "u", UserName: "U"}},
		{"quiz with position", CreateSubmissionRequest{AssessmentID: a.ID, UserID: "u", UserName: "U", Position: model.PositionFor}},
		{"missing user", CreateSubmissionRequest{AssessmentID: a.ID, UserName: "U"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.submissions.Create(tc.req); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := f.submissions.Create(CreateSubmissionRequest{AssessmentID: "missing", UserID: "u", UserName: "U"}); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestDebateSubmissionScoredAgainstDebateMax(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d, _ := f.debates.Create(CreateDebateRequest{Topic: "Uniforms", MaxScore: 10})

	sub, err := f.submissions.Create(CreateSubmissionRequest{
		DebateID: d.ID, UserID: "JD", UserName: "John Doe", Position: model.PositionAgainst, Response: "Uniforms limit expression",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.submissions.Score(ctx, sub.ID, 11, ""); err == nil {
		t.Fatal("score above debate max accepted")
	}
	if _, err := f.submissions.Score(ctx, sub.ID, 10, "Strong rebuttal"); err != nil {
		t.Fatal(err)
	}
}

func TestSubmissionAnalyticsByAssessment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)
	other := f.publishedQuiz(t)

	for i, score := range []int{1, 3, -1} {
		sub, _ := f.submissions.Create(CreateSubmissionRequest{AssessmentID: a.ID, UserID: string(rune('a' + i)), UserName: "S"})
		if score >= 0 {
			f.submissions.Score(ctx, sub.ID, score, "")
		}
	}
	otherSub, _ := f.submissions.Create(CreateSubmissionRequest{AssessmentID: other.ID, UserID: "z", UserName: "Z"})
	f.submissions.Score(ctx, otherSub.ID, 0, "")

	got := f.submissions.Analytics(repository.SubmissionFilter{AssessmentID: a.ID})
	want := model.ScoreStats{Count: 3, CompletedCount: 2, Average: 2, Min: 1, Max: 3}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	scoredOnly := true
	if list := f.submissions.List(repository.SubmissionFilter{AssessmentID: a.ID, Scored: &scoredOnly}); len(list) != 2 {
		t.Fatalf("got %d scored submissions", len(list))
	}
}
