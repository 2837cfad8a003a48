package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/session"
)

// play runs a fallback quiz for topic with the given answers.
func play(t *testing.T, store *session.Store, topic string, answers ...int) {
	t.Helper()
	sess := store.Start("profile_1", topic, quizgen.Fallback(topic), quizgen.SourceFallback)
	for _, a := range answers {
		_, err := store.SubmitAnswer(sess.ID, a)
		require.NoError(t, err)
	}
}

func byID(all []Achievement) map[ID]Achievement {
	m := make(map[ID]Achievement, len(all))
	for _, a := range all {
		m[a.ID] = a
	}
	return m
}

func TestEvaluate_NoSessions(t *testing.T) {
	all := Evaluate(nil)
	require.Len(t, all, 6)
	for _, a := range all {
		assert.False(t, a.Unlocked, a.ID)
		assert.Equal(t, 0, a.Progress, a.ID)
	}
	assert.Empty(t, Unlocked(all))
}

func TestEvaluate_FirstPerfectQuiz(t *testing.T) {
	store := session.NewStore()
	play(t, store, "dinosaurs", 3, 1, 3, 3)

	got := byID(Evaluate(store.ListByProfile("profile_1")))
	assert.True(t, got[FirstQuiz].Unlocked)
	assert.True(t, got[PerfectScore].Unlocked)
	assert.True(t, got[StreakMaster].Unlocked)
	assert.Equal(t, 3, got[StreakMaster].Progress, "capped at max")
	assert.Equal(t, 1, got[TopicExplorer].Progress)
	assert.Equal(t, 4, got[KnowledgeSeeker].Progress)
	assert.False(t, got[LearningChampion].Unlocked)
}

func TestEvaluate_StreakResetsOnMiss(t *testing.T) {
	store := session.NewStore()
	play(t, store, "ocean", 3, 1, 0, 3)

	got := byID(Evaluate(store.ListByProfile("profile_1")))
	assert.Equal(t, 2, got[StreakMaster].Progress)
	assert.False(t, got[StreakMaster].Unlocked)
	assert.False(t, got[PerfectScore].Unlocked)
	assert.True(t, got[FirstQuiz].Unlocked)
}

func TestEvaluate_StreakDoesNotSpanSessions(t *testing.T) {
	store := session.NewStore()
	play(t, store, "a", 0, 0, 3, 3)
	play(t, store, "b", 3, 0)

	st := Summarize(store.ListByProfile("profile_1"))
	assert.Equal(t, 2, st.LongestStreak)
	assert.Equal(t, 1, st.CompletedQuizzes, "second quiz is unfinished")
	assert.Equal(t, 3, st.CorrectAnswers)
}

func TestEvaluate_TopicsAreCaseInsensitive(t *testing.T) {
	store := session.NewStore()
	play(t, store, "Dinosaurs", 0, 0, 0, 0)
	play(t, store, "dinosaurs ", 0, 0, 0, 0)
	play(t, store, "Space", 0, 0, 0, 0)
	play(t, store, "Art", 0, 0, 0)

	got := byID(Evaluate(store.ListByProfile("profile_1")))
	assert.Equal(t, 2, got[TopicExplorer].Progress)
	assert.False(t, got[TopicExplorer].Unlocked)
	assert.Equal(t, 3, got[LearningChampion].Progress)
}

func TestEvaluate_ChampionAndExplorer(t *testing.T) {
	store := session.NewStore()
	for _, topic := range []string{"one", "two", "three", "four", "five", "six"} {
		play(t, store, topic, 0, 0, 0, 0)
	}

	got := byID(Evaluate(store.ListByProfile("profile_1")))
	assert.True(t, got[LearningChampion].Unlocked)
	assert.Equal(t, 5, got[LearningChampion].Progress)
	assert.True(t, got[TopicExplorer].Unlocked)
	assert.False(t, got[PerfectScore].Unlocked)
	assert.Equal(t, 0, got[KnowledgeSeeker].Progress)
}

func TestEvaluate_KnowledgeSeeker(t *testing.T) {
	store := session.NewStore()
	for i := 0; i < 13; i++ {
		play(t, store, "facts", 3, 1, 3, 3)
	}

	got := byID(Evaluate(store.ListByProfile("profile_1")))
	assert.True(t, got[KnowledgeSeeker].Unlocked)
	assert.Equal(t, 50, got[KnowledgeSeeker].Progress)
}

func TestDefinitionsMatchRarities(t *testing.T) {
	want := map[ID]Rarity{
		FirstQuiz:        RarityCommon,
		PerfectScore:     RarityEpic,
		StreakMaster:     RarityRare,
		TopicExplorer:    RarityRare,
		LearningChampion: RarityEpic,
		KnowledgeSeeker:  RarityLegendary,
	}
	for _, a := range Evaluate(nil) {
		assert.Equal(t, want[a.ID], a.Rarity, a.ID)
		assert.NotEmpty(t, a.Icon)
	}
}

func TestRarity(t *testing.T) {
	assert.Equal(t, "Legendary", RarityLegendary.DisplayName())
	assert.Equal(t, "mythic", Rarity("mythic").DisplayName())
	assert.Less(t, RarityCommon.Rank(), RarityLegendary.Rank())
	assert.Equal(t, -1, Rarity("mythic").Rank())
}
