// Package achievements derives badges from a learner's quiz history.
package achievements

import (
	"strings"

	"github.com/abhisek/quizbuddy/internal/session"
)

// ID identifies an achievement.
type ID string

const (
	FirstQuiz        ID = "first_quiz"
	PerfectScore     ID = "perfect_score"
	StreakMaster     ID = "streak_master"
	TopicExplorer    ID = "topic_explorer"
	LearningChampion ID = "learning_champion"
	KnowledgeSeeker  ID = "knowledge_seeker"
)

// Achievement is one badge and the learner's progress toward it.
type Achievement struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      Rarity `json:"rarity"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"max_progress"`
	Unlocked    bool   `json:"unlocked"`
}

type definition struct {
	id          ID
	name        string
	description string
	icon        string
	rarity      Rarity
	max         int
	measure     func(Stats) int
}

var definitions = []definition{
	{FirstQuiz, "Quiz Explorer", "Complete your first quiz!", "⭐", RarityCommon, 1,
		func(s Stats) int { return s.CompletedQuizzes }},
	{PerfectScore, "Perfect Star", "Get 100% on a quiz!", "👑", RarityEpic, 1,
		func(s Stats) int { return s.PerfectQuizzes }},
	{StreakMaster, "Streak Master", "Answer 3 questions correctly in a row!", "⚡", RarityRare, 3,
		func(s Stats) int { return s.LongestStreak }},
	{TopicExplorer, "Topic Explorer", "Complete quizzes on 3 different topics!", "🎯", RarityRare, 3,
		func(s Stats) int { return s.DistinctTopics }},
	{LearningChampion, "Learning Champion", "Complete 5 quizzes!", "🏆", RarityEpic, 5,
		func(s Stats) int { return s.CompletedQuizzes }},
	{KnowledgeSeeker, "Knowledge Seeker", "Answer 50 questions correctly!", "🏅", RarityLegendary, 50,
		func(s Stats) int { return s.CorrectAnswers }},
}

// Stats summarizes a learner's sessions.
type Stats struct {
	CompletedQuizzes int
	PerfectQuizzes   int
	CorrectAnswers   int
	LongestStreak    int // consecutive correct answers within one session
	DistinctTopics   int // among completed quizzes, case-insensitive
}

// Summarize folds sessions into Stats. In-progress sessions count toward
// correct answers and streaks but not completions.
func Summarize(sessions []session.Session) Stats {
	var st Stats
	topics := make(map[string]struct{})

	for _, s := range sessions {
		streak := 0
		for _, a := range s.Answers {
			if !a.IsCorrect {
				streak = 0
				continue
			}
			st.CorrectAnswers++
			streak++
			st.LongestStreak = max(st.LongestStreak, streak)
		}

		if !s.Complete() {
			continue
		}
		st.CompletedQuizzes++
		if s.Score == len(s.Questions) && len(s.Questions) > 0 {
			st.PerfectQuizzes++
		}
		topics[strings.ToLower(strings.TrimSpace(s.Topic))] = struct{}{}
	}
	st.DistinctTopics = len(topics)
	return st
}

// Evaluate returns every achievement, in display order, with progress
// capped at its maximum.
func Evaluate(sessions []session.Session) []Achievement {
	st := Summarize(sessions)

	out := make([]Achievement, 0, len(definitions))
	for _, d := range definitions {
		progress := min(d.measure(st), d.max)
		out = append(out, Achievement{
			ID:          d.id,
			Name:        d.name,
			Description: d.description,
			Icon:        d.icon,
			Rarity:      d.rarity,
			Progress:    progress,
			MaxProgress: d.max,
			Unlocked:    progress >= d.max,
		})
	}
	return out
}

// Unlocked filters to earned achievements.
func Unlocked(all []Achievement) []Achievement {
	var out []Achievement
	for _, a := range all {
		if a.Unlocked {
			out = append(out, a)
		}
	}
	return out
}
