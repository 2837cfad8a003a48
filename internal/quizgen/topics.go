package quizgen

// Topic is a suggested quiz topic shown on the topic picker.
type Topic struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var suggestedTopics = []Topic{
	{"Dinosaurs", "🦕"},
	{"Space and Planets", "🚀"},
	{"Ocean Animals", "🐠"},
	{"How Plants Grow", "🌱"},
	{"The Human Body", "🫀"},
	{"Weather and Seasons", "🌦️"},
	{"Ancient Egypt", "🏺"},
	{"Inventions", "💡"},
	{"Musical Instruments", "🎸"},
	{"Different Countries", "🌍"},
	{"Math Fun Facts", "🔢"},
	{"Art and Colors", "🎨"},
}

// SuggestedTopics returns a copy of the built-in topic list.
func SuggestedTopics() []Topic {
	return append([]Topic(nil), suggestedTopics...)
}
