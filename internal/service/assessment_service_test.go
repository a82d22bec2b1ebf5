package service

import (
	"context"
	"encoding/json"
	"errors"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"math"
	"testing"
	"time"
)

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	orig := f.publishedQuiz(t)

	exported, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var in model.Assessment
	if err := json.Unmarshal(exported, &in); err != nil {
		t.Fatal(err)
	}

	f.clock.Advance(24 * time.Hour)
	got, err := f.assessments.Import(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID == orig.ID {
		t.Fatal("import must create a new assessment")
	}
	if len(got.Questions) != len(orig.Questions) {
		t.Fatalf("got %d questions", len(got.Questions))
	}
	for i := range orig.Questions {
		if got.Questions[i].ID != orig.Questions[i].ID || got.Questions[i].Prompt != orig.Questions[i].Prompt {
			t.Fatalf("question %d changed: %+v", i, got.Questions[i])
		}
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, orig.CreatedAt)
	}
	if got.Status != model.StatusPublished || !got.PublishedAt.Equal(*orig.PublishedAt) {
		t.Fatalf("unexpected publication: %v %v", got.Status, got.PublishedAt)
	}
	if got.TotalPoints() != orig.TotalPoints() {
		t.Fatalf("total points = %d", got.TotalPoints())
	}
}

func TestImportRegeneratesDuplicateQuestionIDs(t *testing.T) {
	f := newFixture()
	in := model.Assessment{
		AssessmentDetails: defaultDetails(),
		Questions: []model.Question{
			{ID: "q1", Type: model.TrueFalse, Prompt: "Sky is blue", CorrectAnswer: "true", Points: 1, TimeLimit: 1},
			{ID: "q1", Type: model.TrueFalse, Prompt: "Grass is red", CorrectAnswer: "false", Points: 1, TimeLimit: 1},
			{Type: model.Essay, Prompt: "Explain", Points: 5, TimeLimit: 10},
		},
	}
	in.Title = "Imported"
	in.AssessmentType = model.TrueFalse

	got, err := f.assessments.Import(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusDraft || got.PublishedAt != nil {
		t.Fatalf("status = %s", got.Status)
	}
	ids := map[string]bool{}
	for _, q := range got.Questions {
		if q.ID == "" || ids[q.ID] {
			t.Fatalf("question ids not unique: %+v", got.Questions)
		}
		ids[q.ID] = true
	}
	if got.Questions[0].ID != "q1" {
		t.Fatalf("first id rewritten to %s", got.Questions[0].ID)
	}
}

func TestImportRejectsInvalidQuestion(t *testing.T) {
	f := newFixture()
	in := model.Assessment{AssessmentDetails: defaultDetails()}
	in.Title = "Broken"
	in.AssessmentType = model.MultipleChoice

	if _, err := f.assessments.Import(context.Background(), in); !errors.Is(err, util.ErrNoQuestions) {
		t.Fatalf("got %v", err)
	}

	in.Questions = []model.Question{
		{Type: model.MultipleChoice, Prompt: "Pick", Options: []string{"only"}, CorrectAnswer: "only", Points: 1, TimeLimit: 1},
	}
	_, err := f.assessments.Import(context.Background(), in)
	ve, ok := util.AsValidation(err)
	if !ok || len(ve.Field) < len("questions[0].") || ve.Field[:len("questions[0].")] != "questions[0]." {
		t.Fatalf("got %v", err)
	}
}

func TestDeleteAssessmentRemovesSubmissions(t *testing.T) {
	f := newFixture()
	a := f.publishedQuiz(t)
	keep := f.publishedQuiz(t)
	f.submissions.Create(CreateSubmissionRequest{AssessmentID: a.ID, UserID: "u1", UserName: "U1"})
	f.submissions.Create(CreateSubmissionRequest{AssessmentID: keep.ID, UserID: "u2", UserName: "U2"})

	if err := f.assessments.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.assessments.Get(a.ID); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v", err)
	}
	if n := len(f.submissions.List(repository.SubmissionFilter{AssessmentID: a.ID})); n != 0 {
		t.Fatalf("%d submissions left for deleted assessment", n)
	}
	if n := len(f.submissions.List(repository.SubmissionFilter{})); n != 1 {
		t.Fatalf("%d submissions left overall", n)
	}
	if err := f.assessments.Delete(a.ID); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestListAssessmentsPaginates(t *testing.T) {
	f := newFixture()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, f.publishedQuiz(t).ID)
		f.clock.Advance(time.Minute)
	}

	page, total := f.assessments.List(repository.AssessmentFilter{}, 1, 2)
	if total != 5 || len(page) != 2 {
		t.Fatalf("total=%d len=%d", total, len(page))
	}
	// 最新的排在前面
	if page[0].ID != ids[4] || page[1].ID != ids[3] {
		t.Fatalf("unexpected order: %s %s", page[0].ID, page[1].ID)
	}
	if page[0].QuestionCount != 3 || page[0].TotalPoints != 3 {
		t.Fatalf("unexpected summary: %+v", page[0])
	}

	page, _ = f.assessments.List(repository.AssessmentFilter{}, 3, 2)
	if len(page) != 1 || page[0].ID != ids[0] {
		t.Fatalf("last page = %+v", page)
	}
	page, total = f.assessments.List(repository.AssessmentFilter{}, math.MaxInt, 2)
	if len(page) != 0 || total != 5 {
		t.Fatalf("out of range page: len=%d total=%d", len(page), total)
	}
	page, _ = f.assessments.List(repository.AssessmentFilter{Status: model.StatusDraft}, 1, 10)
	if len(page) != 0 {
		t.Fatalf("draft filter returned %d", len(page))
	}
}

func TestImportDefaultsMissingPointsAndTimeLimit(t *testing.T) {
	f := newFixture()
	in := model.Assessment{AssessmentDetails: defaultDetails()}
	in.Title = "Legacy export"
	in.AssessmentType = model.Essay
	in.Questions = []model.Question{{ID: "q1", Type: model.Essay, Prompt: "Describe photosynthesis"}}

	got, err := f.assessments.Import(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	q := got.Questions[0]
	if q.Points != util.DefaultPoints || q.TimeLimit != util.DefaultTimeLimit {
		t.Fatalf("points=%d timeLimit=%d", q.Points, q.TimeLimit)
	}

	for _, bad := range []model.Question{
		{Type: model.Essay, Prompt: "Negative points", Points: -1},
		{Type: model.Essay, Prompt: "Negative time", TimeLimit: -30},
	} {
		in.Questions = []model.Question{bad}
		if _, err := f.assessments.Import(context.Background(), in); err == nil {
			t.Fatalf("accepted %+v", bad)
		}
	}
}
