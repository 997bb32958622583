package lessons

var defaultCatalog = Catalog{
	Beginner: []Lesson{
		{ID: "b1", Title: "Basic Greetings", Type: LessonTypeVocabulary},
		{ID: "b2", Title: "Numbers 1-10", Type: LessonTypeVocabulary},
		{ID: "b3", Title: "Common Phrases", Type: LessonTypeConversation},
	},
	Intermediate: []Lesson{
		{ID: "i1", Title: "Past Tense", Type: LessonTypeGrammar},
		{ID: "i2", Title: "Daily Routines", Type: LessonTypeVocabulary},
		{ID: "i3", Title: "Shopping", Type: LessonTypeConversation},
	},
	Advanced: []Lesson{
		{ID: "a1", Title: "Idioms", Type: LessonTypeVocabulary},
		{ID: "a2", Title: "Complex Grammar", Type: LessonTypeGrammar},
		{ID: "a3", Title: "Business Language", Type: LessonTypeConversation},
	},
}

// DefaultCatalog returns a fresh copy of the built-in catalog written for
// languages that have no stored catalog yet
func DefaultCatalog() *Catalog {
	return defaultCatalog.Clone()
}
