package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write short, cheerful multiple-choice quizzes for children.
Always answer with JSON only. Never include frightening, violent or upsetting content.`

const exampleJSON = `{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": 0,
      "explanation": "Brief explanation for kids"
    }
  ]
}`

// buildPrompt renders the instruction for one quiz.
func buildPrompt(topic string, age int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a fun, educational quiz about %q for a %s.\n\n", topic, describeAge(age))

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Exactly %d multiple-choice questions\n", QuestionsPerQuiz)
	fmt.Fprintf(&b, "- Each question has exactly %d options (A, B, C, D)\n", OptionsPerQuestion)
	b.WriteString("- Age-appropriate language and difficulty\n")
	b.WriteString("- Encouraging, positive tone\n")
	b.WriteString("- Nothing scary or upsetting\n")
	b.WriteString("- Educational but fun\n")
	b.WriteString("- correct_answer is the zero-based index of the right option\n\n")

	b.WriteString("Return ONLY valid JSON in exactly this format:\n")
	b.WriteString(exampleJSON)

	return b.String()
}

func describeAge(age int) string {
	if age <= 0 {
		return "young child"
	}
	return fmt.Sprintf("%d-year-old child", age)
}
