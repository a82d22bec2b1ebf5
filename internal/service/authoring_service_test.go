package service

import (
	"context"
	"errors"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
	"testing"
	"time"
)

func TestCreateSessionDefaults(t *testing.T) {
	f := newFixture()
	sess, err := f.authoring.CreateSession(AssessmentDetailsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if sess.Step != model.StepDetails {
		t.Fatalf("step = %s", sess.Step)
	}
	if sess.Details.TimeLimitMinutes != 15 {
		t.Fatalf("timeLimitMinutes = %d, want 15", sess.Details.TimeLimitMinutes)
	}
	if len(sess.Questions) != 0 {
		t.Fatal("new session should have no questions")
	}
}

func TestContinueRequiresTitleAndType(t *testing.T) {
	f := newFixture()
	sess, _ := f.authoring.CreateSession(AssessmentDetailsRequest{Title: strPtr("Quiz")})

	_, err := f.authoring.ContinueToQuestions(sess.ID)
	ve, ok := util.AsValidation(err)
	if !ok || ve.Field != "assessmentType" {
		t.Fatalf("got %v", err)
	}

	if _, err := f.authoring.UpdateDetails(sess.ID, AssessmentDetailsRequest{AssessmentType: strPtr("Multiple Choice")}); err != nil {
		t.Fatal(err)
	}
	sess, err = f.authoring.ContinueToQuestions(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Step != model.StepQuestions {
		t.Fatalf("step = %s", sess.Step)
	}
	if sess.Draft.Type != model.MultipleChoice || len(sess.Draft.Options) != util.DefaultOptionSlots {
		t.Fatalf("draft not reset to multiple choice defaults: %+v", sess.Draft)
	}
}

func TestUpdateDetailsBounds(t *testing.T) {
	f := newFixture()
	sess, _ := f.authoring.CreateSession(AssessmentDetailsRequest{})

	cases := []struct {
		name  string
		req   AssessmentDetailsRequest
		field string
	}{
		{"passing score above 100", AssessmentDetailsRequest{PassingScore: intPtr(101)}, "passingScore"},
		{"negative passing score", AssessmentDetailsRequest{PassingScore: intPtr(-1)}, "passingScore"},
		{"zero time limit", AssessmentDetailsRequest{TimeLimitMinutes: intPtr(0)}, "timeLimitMinutes"},
		{"zero attempts", AssessmentDetailsRequest{AttemptsAllowed: &model.Attempts{}}, "attemptsAllowed"},
		{"unknown type", AssessmentDetailsRequest{AssessmentType: strPtr("matching")}, "assessmentType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.authoring.UpdateDetails(sess.ID, tc.req)
			ve, ok := util.AsValidation(err)
			if !ok || ve.Field != tc.field {
				t.Fatalf("got %v, want validation error on %s", err, tc.field)
			}
		})
	}

	got, _ := f.authoring.GetSession(sess.ID)
	if got.Details.PassingScore != 70 || got.Details.TimeLimitMinutes != 15 {
		t.Fatalf("rejected updates leaked into session: %+v", got.Details)
	}
}

func TestDraftOperationsRequireQuestionsStep(t *testing.T) {
	f := newFixture()
	sess, _ := f.authoring.CreateSession(AssessmentDetailsRequest{})
	if _, err := f.authoring.AddOption(sess.ID); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("got %v", err)
	}
	if _, _, err := f.authoring.AddQuestion(sess.ID); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("got %v", err)
	}
}

func TestAddQuestionRejectsEmptyPrompt(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.Essay)

	for _, prompt := range []string{"", "   "} {
		if _, err := f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Prompt: strPtr(prompt)}); err != nil {
			t.Fatal(err)
		}
		_, _, err := f.authoring.AddQuestion(sess.ID)
		ve, ok := util.AsValidation(err)
		if !ok || ve.Field != "question" {
			t.Fatalf("prompt %q: got %v", prompt, err)
		}
	}

	got, _ := f.authoring.GetSession(sess.ID)
	if len(got.Questions) != 0 {
		t.Fatalf("empty prompt grew the question list to %d", len(got.Questions))
	}
}

func TestAddQuestionFiltersEmptyOptions(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)

	opts := []string{"Paris", "", "  ", "Lyon", "", ""}
	if _, err := f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{
		Prompt:  strPtr("Capital of France?"),
		Options: &opts,
	}); err != nil {
		t.Fatal(err)
	}
	got, q, err := f.authoring.AddQuestion(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Options) != 2 || q.Options[0] != "Paris" || q.Options[1] != "Lyon" {
		t.Fatalf("options = %q", q.Options)
	}
	if q.ID == "" || q.Points != 1 || q.TimeLimit != 60 {
		t.Fatalf("unexpected question defaults: %+v", q)
	}
	if got.Draft.Prompt != "" || len(got.Draft.Options) != util.DefaultOptionSlots {
		t.Fatalf("draft not reset: %+v", got.Draft)
	}
}

func TestAddQuestionNeedsTwoOptions(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)

	opts := []string{"only", "", "", ""}
	f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Prompt: strPtr("Pick"), Options: &opts})
	_, _, err := f.authoring.AddQuestion(sess.ID)
	ve, ok := util.AsValidation(err)
	if !ok || ve.Field != "options" {
		t.Fatalf("got %v", err)
	}
}

func TestMultipleChoiceOptionBounds(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)

	for i := 0; i < 5; i++ {
		got, err := f.authoring.AddOption(sess.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Draft.Options) > util.MaxOptions {
			t.Fatalf("option count %d exceeds %d", len(got.Draft.Options), util.MaxOptions)
		}
	}
	got, _ := f.authoring.GetSession(sess.ID)
	if len(got.Draft.Options) != util.MaxOptions {
		t.Fatalf("got %d options, want %d", len(got.Draft.Options), util.MaxOptions)
	}

	for i := 0; i < 6; i++ {
		if _, err := f.authoring.RemoveOption(sess.ID, 0); err != nil {
			t.Fatal(err)
		}
	}
	got, _ = f.authoring.GetSession(sess.ID)
	if len(got.Draft.Options) != util.MinOptions {
		t.Fatalf("got %d options, want %d", len(got.Draft.Options), util.MinOptions)
	}

	if _, err := f.authoring.RemoveOption(sess.ID, 5); err == nil {
		t.Fatal("out of range index should be rejected")
	}
	if _, err := f.authoring.UpdateOption(sess.ID, 2, "x"); err == nil {
		t.Fatal("out of range index should be rejected")
	}
	got, err := f.authoring.UpdateOption(sess.ID, 1, "second")
	if err != nil {
		t.Fatal(err)
	}
	if got.Draft.Options[1] != "second" {
		t.Fatalf("options = %q", got.Draft.Options)
	}
}

func TestStoredMultipleChoiceQuestionsKeepInvariants(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)

	drafts := [][]string{
		{"a", "b"},
		{"a", "", "b", "", "c", "d"},
		{"", "x", "y", ""},
		{"only"},
	}
	for i, opts := range drafts {
		o := opts
		f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Prompt: strPtr("Q"), Options: &o})
		if _, _, err := f.authoring.AddQuestion(sess.ID); err != nil && i != 3 {
			t.Fatalf("draft %d: %v", i, err)
		}
	}

	got, _ := f.authoring.GetSession(sess.ID)
	if len(got.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(got.Questions))
	}
	for _, q := range got.Questions {
		if q.Prompt == "" {
			t.Fatal("stored question has empty prompt")
		}
		if n := len(q.Options); n < util.MinOptions || n > util.MaxOptions {
			t.Fatalf("stored question has %d options", n)
		}
		for _, o := range q.Options {
			if o == "" {
				t.Fatalf("stored question has empty option: %q", q.Options)
			}
		}
	}
}

func TestTrueFalseAnswerNormalized(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.TrueFalse)

	f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Prompt: strPtr("Sky is blue"), CorrectAnswer: strPtr("Yes")})
	_, q, err := f.authoring.AddQuestion(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if q.CorrectAnswer != "true" {
		t.Fatalf("correctAnswer = %q", q.CorrectAnswer)
	}

	f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Prompt: strPtr("?"), CorrectAnswer: strPtr("maybe")})
	if _, _, err := f.authoring.AddQuestion(sess.ID); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDeleteQuestionIsIdempotent(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)
	q1 := f.addMC(t, sess.ID, "one", 1)
	q2 := f.addMC(t, sess.ID, "two", 1)

	got, err := f.authoring.DeleteQuestion(sess.ID, q1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Questions) != 1 || got.Questions[0].ID != q2.ID {
		t.Fatalf("unexpected questions: %+v", got.Questions)
	}
	got, err = f.authoring.DeleteQuestion(sess.ID, q1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Questions) != 1 {
		t.Fatal("second delete changed the list")
	}
	if q1.ID == q2.ID {
		t.Fatal("question ids must be unique")
	}
}

func TestBackToDetailsKeepsQuestions(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)
	f.addMC(t, sess.ID, "one", 1)

	got, err := f.authoring.BackToDetails(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Step != model.StepDetails || len(got.Questions) != 1 {
		t.Fatalf("unexpected session: step=%s questions=%d", got.Step, len(got.Questions))
	}

	_, err = f.authoring.UpdateDetails(sess.ID, AssessmentDetailsRequest{AssessmentType: strPtr("essay")})
	if _, ok := util.AsValidation(err); !ok {
		t.Fatalf("type change with questions should fail, got %v", err)
	}
	if _, err := f.authoring.UpdateDetails(sess.ID, AssessmentDetailsRequest{Title: strPtr("Renamed")}); err != nil {
		t.Fatal(err)
	}
}

func TestSaveRequiresQuestions(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)

	if _, err := f.authoring.SaveAsDraft(context.Background(), sess.ID); !errors.Is(err, util.ErrNoQuestions) {
		t.Fatalf("got %v", err)
	}
	if _, err := f.authoring.Publish(context.Background(), sess.ID); !errors.Is(err, util.ErrNoQuestions) {
		t.Fatalf("got %v", err)
	}
}

func TestSaveThenPublishPreservesCreatedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sess := f.questionsSession(t, model.MultipleChoice)
	f.addMC(t, sess.ID, "one", 1)

	draft, err := f.authoring.SaveAsDraft(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Status != model.StatusDraft || draft.PublishedAt != nil {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	created := draft.CreatedAt

	f.clock.Advance(time.Hour)
	f.addMC(t, sess.ID, "two", 2)
	pub, err := f.authoring.Publish(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if pub.ID != draft.ID {
		t.Fatalf("publish created a new assessment %s, want %s", pub.ID, draft.ID)
	}
	if !pub.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed from %v to %v", created, pub.CreatedAt)
	}
	if pub.Status != model.StatusPublished || pub.PublishedAt == nil || len(pub.Questions) != 2 {
		t.Fatalf("unexpected published assessment: %+v", pub)
	}
	if !pub.UpdatedAt.Equal(f.clock.Now()) {
		t.Fatalf("updatedAt = %v", pub.UpdatedAt)
	}

	f.clock.Advance(time.Hour)
	back, err := f.authoring.SaveAsDraft(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if back.Status != model.StatusDraft || back.PublishedAt != nil || !back.CreatedAt.Equal(created) {
		t.Fatalf("unexpected draft after unpublish: %+v", back)
	}
}

func TestOpenSessionEditsPublishedAssessment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.publishedQuiz(t)

	sess, err := f.authoring.OpenSession(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sess.AssessmentID != a.ID || len(sess.Questions) != 3 || sess.Status != model.StatusPublished {
		t.Fatalf("unexpected session: %+v", sess)
	}

	f.authoring.ContinueToQuestions(sess.ID)
	f.addMC(t, sess.ID, "Q4", 1)
	updated, err := f.authoring.Publish(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Questions) != 4 || !updated.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if !updated.PublishedAt.Equal(*a.PublishedAt) {
		t.Fatal("republishing should keep the original publishedAt")
	}

	if _, err := f.authoring.OpenSession("missing"); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestUpdateDraftTypeSwitchResetsOptions(t *testing.T) {
	f := newFixture()
	sess := f.questionsSession(t, model.MultipleChoice)

	f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Prompt: strPtr("keep me"), Points: intPtr(3)})
	got, err := f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Type: strPtr("true_false")})
	if err != nil {
		t.Fatal(err)
	}
	if got.Draft.Options != nil || got.Draft.CorrectAnswer != "true" {
		t.Fatalf("draft not reset for true/false: %+v", got.Draft)
	}
	if got.Draft.Prompt != "keep me" || got.Draft.Points != 3 {
		t.Fatalf("shared fields lost: %+v", got.Draft)
	}

	opts := []string{"a", "b"}
	_, err = f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Options: &opts})
	if _, ok := util.AsValidation(err); !ok {
		t.Fatalf("options on true/false should be rejected, got %v", err)
	}
	if _, err := f.authoring.UpdateDraft(sess.ID, QuestionDraftRequest{Points: intPtr(0)}); err == nil {
		t.Fatal("zero points should be rejected")
	}
}
