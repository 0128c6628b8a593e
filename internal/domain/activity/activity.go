package activity

// Kind tags the category of a subscription or notification.
type Kind string

const (
	// Subscription activities
	KindQuestionAll     Kind = "q_all"     // everything happening on a question
	KindTaxonomyNewQ    Kind = "tax_new_q" // new questions under a category or tag
	KindAnswerAll       Kind = "a_all"     // everything happening on an answer
	KindQuestionComment Kind = "q_comment" // comments on a question

	// Notification activities
	KindNewAnswer         Kind = "new_answer"
	KindQuestionUpdate    Kind = "question_update"
	KindAnswerUpdate      Kind = "answer_update"
	KindCommentOnQuestion Kind = "comment_on_question"
	KindCommentOnAnswer   Kind = "comment_on_answer"
)

// Any is the zero Kind and matches all activities in filter positions.
const Any Kind = ""

// AllKinds returns every known activity kind.
func AllKinds() []Kind {
	return []Kind{
		KindQuestionAll,
		KindTaxonomyNewQ,
		KindAnswerAll,
		KindQuestionComment,
		KindNewAnswer,
		KindQuestionUpdate,
		KindAnswerUpdate,
		KindCommentOnQuestion,
		KindCommentOnAnswer,
	}
}

// Valid reports whether k is a known activity kind.
func (k Kind) Valid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}
