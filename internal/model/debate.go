package model

import "time"

type Participant struct {
	UserID string   `json:"userId"`
	Name   string   `json:"name"`
	Team   Position `json:"team,omitempty"`
}

// Debate 辩论活动，ForUsers/AgainstUsers 每次分组后由参与者列表重新计算
type Debate struct {
	ID           string        `json:"id"`
	Topic        string        `json:"topic"`
	Description  string        `json:"description"`
	MaxScore     int           `json:"maxScore"`
	Participants []Participant `json:"participants"`
	ForUsers     []string      `json:"forUsers"`
	AgainstUsers []string      `json:"againstUsers"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func (d Debate) Clone() Debate {
	c := d
	c.Participants = append(make([]Participant, 0, len(d.Participants)), d.Participants...)
	c.ForUsers = append(make([]string, 0, len(d.ForUsers)), d.ForUsers...)
	c.AgainstUsers = append(make([]string, 0, len(d.AgainstUsers)), d.AgainstUsers...)
	return c
}

// DebateAnalytics 教师仪表盘统计
type DebateAnalytics struct {
	ScoreStats
	Positions map[string]int `json:"positions"`
	Teams     map[string]int `json:"teams"`
}
