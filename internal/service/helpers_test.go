package service

import (
	"context"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"testing"
	"time"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	clock       *fakeClock
	authoring   *AuthoringService
	assessments *AssessmentService
	submissions *SubmissionService
	previews    *PreviewService
	debates     *DebateService
}

func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)}

	assessmentRepo := repository.NewAssessmentRepository()
	submissionRepo := repository.NewSubmissionRepository()
	debateRepo := repository.NewDebateRepository()

	f := &fixture{clock: clock}
	f.authoring = NewAuthoringService(repository.NewAuthoringSessionRepository(), assessmentRepo)
	f.authoring.Now = clock.Now
	f.assessments = NewAssessmentService(assessmentRepo, submissionRepo)
	f.assessments.Now = clock.Now
	f.submissions = NewSubmissionService(submissionRepo, assessmentRepo, debateRepo)
	f.submissions.Now = clock.Now
	f.previews = NewPreviewService(repository.NewPreviewSessionRepository(), assessmentRepo, f.submissions)
	f.previews.Now = clock.Now
	f.debates = NewDebateService(debateRepo, submissionRepo, 100)
	f.debates.Now = clock.Now
	return f
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// questionsSession 返回已进入题目步骤的会话
func (f *fixture) questionsSession(t *testing.T, qt model.QuestionType) *model.AuthoringSession {
	t.Helper()
	sess, err := f.authoring.CreateSession(AssessmentDetailsRequest{
		Title:          strPtr("Unit quiz"),
		AssessmentType: strPtr(string(qt)),
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	sess, err = f.authoring.ContinueToQuestions(sess.ID)
	if err != nil {
		t.Fatalf("ContinueToQuestions: %v", err)
	}
	return sess
}

// addMC 添加一道选择题
func (f *fixture) addMC(t *testing.T, sessionID, prompt string, points int) model.Question {
	t.Helper()
	opts := []string{"a", "b", "c"}
	_, err := f.authoring.UpdateDraft(sessionID, QuestionDraftRequest{
		Type:          strPtr(string(model.MultipleChoice)),
		Prompt:        strPtr(prompt),
		Options:       &opts,
		CorrectAnswer: strPtr("a"),
		Points:        intPtr(points),
	})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	_, q, err := f.authoring.AddQuestion(sessionID)
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	return *q
}

// publishedQuiz 三道各1分的选择题
func (f *fixture) publishedQuiz(t *testing.T) *model.Assessment {
	t.Helper()
	sess := f.questionsSession(t, model.MultipleChoice)
	for _, p := range []string{"Q1", "Q2", "Q3"} {
		f.addMC(t, sess.ID, p, 1)
	}
	a, err := f.authoring.Publish(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return a
}
