package service

import (
	"context"
	"errors"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
	"testing"
	"time"
)

func TestPreviewLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)

	v, err := f.previews.Create(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if v.State != model.PreviewNotStarted || v.Question != nil || v.Total != 3 {
		t.Fatalf("unexpected initial view: %+v", v)
	}
	if v.RemainingSeconds != 15*60 {
		t.Fatalf("remaining = %d", v.RemainingSeconds)
	}

	v, err = f.previews.Start(v.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if v.State != model.PreviewInProgress || v.Question == nil || v.Question.ID != a.Questions[0].ID {
		t.Fatalf("unexpected started view: %+v", v)
	}
	if v.Question.InputKind != model.InputChoice {
		t.Fatalf("input kind = %s", v.Question.InputKind)
	}

	id := v.SessionID
	f.previews.Answer(id, a.Questions[0].ID, "b")
	v, err = f.previews.Answer(id, a.Questions[0].ID, "a")
	if err != nil {
		t.Fatal(err)
	}
	if v.Answer != "a" || v.AnsweredCount != 1 {
		t.Fatalf("answer not overwritten: %+v", v)
	}

	v, _ = f.previews.Next(id)
	f.previews.Answer(id, a.Questions[1].ID, "c")
	if v.Index != 1 {
		t.Fatalf("index = %d", v.Index)
	}

	res, err := f.previews.Submit(ctx, id, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Answers) != 2 || res.Answers[a.Questions[0].ID] != "a" || res.Submission != nil {
		t.Fatalf("unexpected result: %+v", res)
	}

	v, err = f.previews.View(id)
	if err != nil {
		t.Fatal(err)
	}
	if v.State != model.PreviewSubmitted || v.AnsweredCount != 0 || v.RemainingSeconds != 0 {
		t.Fatalf("answers retained after submit: %+v", v)
	}
}

func TestPreviewInvalidTransitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)
	v, _ := f.previews.Create(a.ID)
	id := v.SessionID

	if _, err := f.previews.Answer(id, a.Questions[0].ID, "a"); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("answer before start: %v", err)
	}
	if _, err := f.previews.Next(id); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("next before start: %v", err)
	}
	if _, err := f.previews.Submit(ctx, id, nil); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("submit before start: %v", err)
	}

	f.previews.Start(id)
	if _, err := f.previews.Start(id); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("double start: %v", err)
	}
	f.previews.Submit(ctx, id, nil)
	if _, err := f.previews.Answer(id, a.Questions[0].ID, "a"); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("answer after submit: %v", err)
	}
	if _, err := f.previews.Submit(ctx, id, nil); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("double submit: %v", err)
	}
}

func TestPreviewCursorIsClamped(t *testing.T) {
	f := newFixture()
	a := f.publishedQuiz(t)
	v, _ := f.previews.Create(a.ID)
	id := v.SessionID
	f.previews.Start(id)

	v, _ = f.previews.Previous(id)
	if v.Index != 0 {
		t.Fatalf("previous at first question moved to %d", v.Index)
	}
	for i := 0; i < 5; i++ {
		v, _ = f.previews.Next(id)
	}
	if v.Index != 2 || v.Question.ID != a.Questions[2].ID {
		t.Fatalf("next past last question: index %d", v.Index)
	}
}

func TestPreviewRejectsForeignQuestion(t *testing.T) {
	f := newFixture()
	a := f.publishedQuiz(t)
	other := f.publishedQuiz(t)
	v, _ := f.previews.Create(a.ID)
	f.previews.Start(v.SessionID)

	if _, err := f.previews.Answer(v.SessionID, other.Questions[0].ID, "a"); !errors.Is(err, util.ErrQuestionNotInScope) {
		t.Fatalf("got %v", err)
	}
}

func TestPreviewRemainingSeconds(t *testing.T) {
	f := newFixture()
	a := f.publishedQuiz(t)
	v, _ := f.previews.Create(a.ID)
	id := v.SessionID
	f.previews.Start(id)

	f.clock.Advance(90 * time.Second)
	v, _ = f.previews.View(id)
	if v.RemainingSeconds != 15*60-90 {
		t.Fatalf("remaining = %d", v.RemainingSeconds)
	}

	f.clock.Advance(time.Hour)
	v, _ = f.previews.View(id)
	if v.RemainingSeconds != 0 || v.State != model.PreviewInProgress {
		t.Fatalf("expired countdown: %+v", v)
	}
}

func TestPreviewSubmitRecordsSubmission(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)
	v, _ := f.previews.Create(a.ID)
	f.previews.Start(v.SessionID)
	f.previews.Answer(v.SessionID, a.Questions[0].ID, "a")

	res, err := f.previews.Submit(ctx, v.SessionID, &Learner{UserID: "u1", UserName: "Jane Doe"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Submission == nil {
		t.Fatal("submission not recorded")
	}
	stored, err := f.submissions.Get(res.Submission.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AssessmentID != a.ID || stored.Answers[a.Questions[0].ID] != "a" || stored.IsScored() {
		t.Fatalf("unexpected submission: %+v", stored)
	}
}

func TestPreviewUsesSnapshot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)
	v, _ := f.previews.Create(a.ID)

	sess, err := f.authoring.OpenSession(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.authoring.ContinueToQuestions(sess.ID); err != nil {
		t.Fatal(err)
	}
	f.addMC(t, sess.ID, "Q4", 1)
	if _, err := f.authoring.Publish(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}

	v, _ = f.previews.View(v.SessionID)
	if v.Total != 3 {
		t.Fatalf("preview picked up later edit: total %d", v.Total)
	}
}

func TestPreviewRequiresQuestions(t *testing.T) {
	f := newFixture()
	if _, err := f.previews.Create("missing"); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v", err)
	}
	if _, err := f.previews.View("missing"); !errors.Is(err, util.ErrPreviewNotFound) {
		t.Fatalf("got %v", err)
	}
}
