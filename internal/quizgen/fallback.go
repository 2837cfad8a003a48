package quizgen

import "fmt"

type template struct {
	question    string
	options     [OptionsPerQuestion]string
	correct     int
	explanation string
}

// fallbackTemplates use %[1]s for the topic.
var fallbackTemplates = [QuestionsPerQuiz]template{
	{
		question:    "What is a fun fact about %[1]s?",
		options:     [4]string{"It's amazing!", "It's interesting!", "It's cool!", "All of the above!"},
		correct:     3,
		explanation: "Great job! %[1]s is indeed amazing, interesting, and cool!",
	},
	{
		question:    "How would you describe %[1]s to a friend?",
		options:     [4]string{"Boring", "Exciting", "Confusing", "Scary"},
		correct:     1,
		explanation: "That's right! %[1]s is exciting and fun to learn about!",
	},
	{
		question:    "What's the best way to learn about %[1]s?",
		options:     [4]string{"Reading books", "Watching videos", "Asking questions", "All of these!"},
		correct:     3,
		explanation: "Excellent! Learning about %[1]s happens in many different ways!",
	},
	{
		question:    "Why is %[1]s important?",
		options:     [4]string{"It helps us understand the world", "It's fun to know", "It makes us smarter", "All of the above"},
		correct:     3,
		explanation: "Perfect! %[1]s helps us in many wonderful ways!",
	},
}

// Fallback returns the deterministic four-question quiz for topic. It is
// pure and always succeeds; the topic is inserted verbatim.
func Fallback(topic string) QuestionSet {
	qs := make(QuestionSet, len(fallbackTemplates))
	for i, t := range fallbackTemplates {
		qs[i] = Question{
			Question:      fmt.Sprintf(t.question, topic),
			Options:       append([]string(nil), t.options[:]...),
			CorrectAnswer: t.correct,
			Explanation:   fmt.Sprintf(t.explanation, topic),
		}
	}
	return qs
}
