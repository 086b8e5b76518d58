package model

// ================ Config ================

// RouterModelConfig configures the classification model. Low temperature keeps
// the tool choice stable for the same phrasing.
type RouterModelConfig struct {
	Model       string  `envconfig:"ROUTER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ROUTER_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"ROUTER_TEMPERATURE" default:"0.1"`
}

// AnswerModelConfig configures the model used for SQL generation, result
// summarization, search synthesis and open chat.
type AnswerModelConfig struct {
	Model       string  `envconfig:"ANSWER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ANSWER_MAX_TOKENS" default:"2048"`
	Temperature float32 `envconfig:"ANSWER_TEMPERATURE" default:"0.4"`
}

type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"6"`
}

// AnalysisConfig bounds the data each handler touches per turn.
type AnalysisConfig struct {
	SummaryMaxRows   int `envconfig:"SQL_SUMMARY_MAX_ROWS" default:"50"`
	MapPointLimit    int `envconfig:"MAP_POINT_LIMIT" default:"2000"`
	SearchMaxResults int `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
}
