package service

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"lms_authoring_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

const unassignedTeam = "unassigned"

type DebateService struct {
	Debates         *repository.DebateRepository
	Submissions     *repository.SubmissionRepository
	DefaultMaxScore int
	Now             func() time.Time
}

func NewDebateService(debates *repository.DebateRepository, submissions *repository.SubmissionRepository, defaultMaxScore int) *DebateService {
	return &DebateService{
		Debates:         debates,
		Submissions:     submissions,
		DefaultMaxScore: defaultMaxScore,
		Now:             time.Now,
	}
}

type CreateDebateRequest struct {
	Topic        string              `json:"topic" binding:"required"`
	Description  string              `json:"description"`
	MaxScore     int                 `json:"maxScore"`
	Participants []model.Participant `json:"participants"`
}

func (s *DebateService) Create(req CreateDebateRequest) (*model.Debate, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, util.NewValidationError("topic", "is required")
	}
	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = s.DefaultMaxScore
	}
	if maxScore < 1 {
		return nil, util.NewValidationError("maxScore", "must be a positive integer")
	}

	d := &model.Debate{
		ID:           model.NewID(),
		Topic:        topic,
		Description:  req.Description,
		MaxScore:     maxScore,
		Participants: []model.Participant{},
		CreatedAt:    s.Now(),
	}
	for _, p := range req.Participants {
		if err := addParticipant(d, p); err != nil {
			return nil, err
		}
	}
	recomputeTeams(d)

	if err := s.Debates.Create(d); err != nil {
		return nil, err
	}
	logger.Log.Info("debate created", zap.String("debate_id", d.ID), zap.String("topic", d.Topic))
	return d, nil
}

func (s *DebateService) Get(id string) (*model.Debate, error) {
	return s.Debates.FindByID(id)
}

func (s *DebateService) List() []model.Debate {
	return s.Debates.List()
}

func addParticipant(d *model.Debate, p model.Participant) error {
	p.UserID = strings.TrimSpace(p.UserID)
	if p.UserID == "" {
		return util.NewValidationError("userId", "is required")
	}
	if p.Team != "" && !p.Team.Valid() {
		return util.NewValidationError("team", "must be for or against")
	}
	for _, existing := range d.Participants {
		if existing.UserID == p.UserID {
			return util.ErrDuplicate
		}
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = p.UserID
	}
	d.Participants = append(d.Participants, p)
	return nil
}

func (s *DebateService) AddParticipant(debateID string, p model.Participant) (*model.Debate, error) {
	return s.Debates.Update(debateID, func(d *model.Debate) error {
		if err := addParticipant(d, p); err != nil {
			return err
		}
		recomputeTeams(d)
		return nil
	})
}

// AssignTeam 设置参与者的队伍，然后从完整参与者列表重新计算正反方名单
func (s *DebateService) AssignTeam(debateID, userID string, team model.Position) (*model.Debate, error) {
	if !team.Valid() {
		return nil, util.NewValidationError("team", "must be for or against")
	}
	return s.Debates.Update(debateID, func(d *model.Debate) error {
		found := false
		for i := range d.Participants {
			if d.Participants[i].UserID == userID {
				d.Participants[i].Team = team
				found = true
				break
			}
		}
		if !found {
			return util.ErrParticipantNotFound
		}
		recomputeTeams(d)
		return nil
	})
}

// recomputeTeams 不做增量维护，每次全量过滤
func recomputeTeams(d *model.Debate) {
	d.ForUsers = []string{}
	d.AgainstUsers = []string{}
	for _, p := range d.Participants {
		switch p.Team {
		case model.PositionFor:
			d.ForUsers = append(d.ForUsers, p.UserID)
		case model.PositionAgainst:
			d.AgainstUsers = append(d.AgainstUsers, p.UserID)
		}
	}
}

// Analytics 仪表盘统计：提交分数、提交立场分布、队伍人数
func (s *DebateService) Analytics(debateID string) (*model.DebateAnalytics, error) {
	d, err := s.Debates.FindByID(debateID)
	if err != nil {
		return nil, err
	}
	subs := s.Submissions.List(repository.SubmissionFilter{DebateID: d.ID})

	return &model.DebateAnalytics{
		ScoreStats: ComputeAnalytics(subs),
		Positions: CountBy(subs, func(sub model.Submission) string {
			return string(sub.Position)
		}),
		Teams: CountBy(d.Participants, func(p model.Participant) string {
			if p.Team == "" {
				return unassignedTeam
			}
			return string(p.Team)
		}),
	}, nil
}
